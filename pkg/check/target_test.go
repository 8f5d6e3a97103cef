package check

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTargets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec string
		want []Target
	}{
		{
			name: "simple domains",
			spec: "example.com,test.com",
			want: []Target{{Host: "example.com"}, {Host: "test.com"}},
		},
		{
			name: "domain with runbook",
			spec: "example.com:https://runbook.com/fix,test.com",
			want: []Target{
				{Host: "example.com", Runbook: "https://runbook.com/fix"},
				{Host: "test.com"},
			},
		},
		{
			name: "mixed with and without runbooks",
			spec: "example.com:https://wiki.com/ssl,test.com,another.com:https://runbook.io",
			want: []Target{
				{Host: "example.com", Runbook: "https://wiki.com/ssl"},
				{Host: "test.com"},
				{Host: "another.com", Runbook: "https://runbook.io"},
			},
		},
		{
			name: "empty string",
			spec: "",
			want: nil,
		},
		{
			name: "whitespace trimmed around hosts and runbooks",
			spec: "  example.com  ,  test.com : https://runbook.com  ",
			want: []Target{
				{Host: "example.com"},
				{Host: "test.com", Runbook: "https://runbook.com"},
			},
		},
		{
			name: "runbook keeps embedded colons verbatim",
			spec: "example.com:https://runbook.com:8080/fix",
			want: []Target{{Host: "example.com", Runbook: "https://runbook.com:8080/fix"}},
		},
		{
			name: "runbook keeps query parameters",
			spec: "example.com:https://wiki.com/fix?env=prod&team=ops",
			want: []Target{{Host: "example.com", Runbook: "https://wiki.com/fix?env=prod&team=ops"}},
		},
		{
			name: "subdomains",
			spec: "api.example.com,www.test.com:https://runbook.com",
			want: []Target{
				{Host: "api.example.com"},
				{Host: "www.test.com", Runbook: "https://runbook.com"},
			},
		},
		{
			name: "empty entries dropped",
			spec: ",example.com,,test.com,",
			want: []Target{{Host: "example.com"}, {Host: "test.com"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseTargets(tt.spec))
		})
	}
}

func TestHosts(t *testing.T) {
	t.Parallel()

	targets := ParseTargets("a.com:https://r.io,b.com")
	require.Equal(t, []string{"a.com", "b.com"}, Hosts(targets))
}
