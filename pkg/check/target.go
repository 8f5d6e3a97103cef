// Package check implements the certificate expiry checking pipeline:
// target parsing, the two-tier TLS handshake, expiry extraction,
// severity classification and alert aggregation.
package check

import "strings"

// Target is a single host to check, optionally carrying a remediation
// runbook URL taken from the target specification string.
type Target struct {
	Host    string
	Runbook string
}

// ParseTargets parses a comma-separated target specification into targets.
//
// Each entry is either a bare hostname or "hostname:runbookURL". Only the
// first colon delimits the runbook; everything after it (including further
// colons, e.g. a port inside the URL) is kept verbatim. Whitespace around
// hostnames and runbook URLs is trimmed, empty entries are dropped.
//
//	"a.com,b.com:https://runbook.io:8080/fix" ->
//	  {a.com ""} {b.com "https://runbook.io:8080/fix"}
func ParseTargets(spec string) []Target {
	var targets []Target
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		host, runbook, hasRunbook := strings.Cut(entry, ":")
		t := Target{Host: strings.TrimSpace(host)}
		if hasRunbook {
			t.Runbook = strings.TrimSpace(runbook)
		}
		targets = append(targets, t)
	}
	return targets
}

// Hosts returns just the hostnames, preserving order.
func Hosts(targets []Target) []string {
	hosts := make([]string, 0, len(targets))
	for _, t := range targets {
		hosts = append(hosts, t.Host)
	}
	return hosts
}
