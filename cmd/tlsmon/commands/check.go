package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sciclon2/tls-monitoring/cmd/tlsmon/internal/bind"
	"github.com/sciclon2/tls-monitoring/pkg/check"
	"github.com/sciclon2/tls-monitoring/pkg/checkexec"
	"github.com/sciclon2/tls-monitoring/pkg/config"
	"github.com/sciclon2/tls-monitoring/pkg/gha"
	"github.com/sciclon2/tls-monitoring/pkg/output"
	"github.com/sciclon2/tls-monitoring/pkg/output/subscribers"
)

// NewCheckCommand defines the 'check' command: one full monitoring run over
// the configured target list.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check TLS certificate expiration for the configured domains",
		Long: `Checks every configured domain's TLS certificate, classifies how close it
is to expiry and raises alerts for certificates below the threshold.
Exits 0 when all certificates are healthy and 1 when alerts were raised.`,
		RunE: runCheckCommand,
	}

	cmd.Flags().StringP("domains", "d", "", "Comma-separated domains to check, each 'host' or 'host:runbookURL'")
	cmd.Flags().IntP("threshold", "t", 0, "Days before expiration to trigger an alert (default 30)")
	cmd.Flags().Int("port", 0, "TLS port to connect to (default 443)")
	cmd.Flags().Int("connect-timeout", 0, "Connection/handshake timeout in seconds (default 10)")
	cmd.Flags().Int("decode-timeout", 0, "External x509 decoder timeout in seconds (default 5)")
	cmd.Flags().Int("concurrency", 0, "Number of domains checked in parallel (default 4)")
	cmd.Flags().String("decoder", "", "X509 end-date decoder: openssl or native (default openssl)")
	cmd.Flags().String("github-output", "", "Override the CI output file (default $GITHUB_OUTPUT)")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
	cmd.Flags().Bool("progress", false, "Print live progress updates while checking")

	return cmd
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	out := setupOutputPipeline(cmd)

	cfg, ok := config.FromContext(cmd.Context())
	if !ok {
		return fmt.Errorf("configuration missing from context")
	}

	params, err := bind.BindCheckOptions(cmd, cfg)
	if err != nil {
		out.Error(err)
		return err
	}

	logger := log.With().Str("command", "check").Logger()
	logger.Info().
		Strs("targets", check.Hosts(params.Targets)).
		Int("threshold_days", params.ThresholdDays).
		Msg("initializing check run")

	if params.OutputFormat == "text" {
		out.Info(fmt.Sprintf("Checking %d domain(s), threshold %d days", len(params.Targets), params.ThresholdDays))
	}

	svc := checkexec.NewService()
	if interactive, _ := cmd.Flags().GetBool("progress"); interactive {
		svc = svc.WithProgressSink(&progressLogger{logger: logger, out: out})
	}

	res, runErr := svc.Run(cmd.Context(), params)
	if runErr != nil {
		logger.Error().Err(runErr).Msg("check run failed")
		out.Error(runErr)
		return runErr
	}

	if err := renderCheckOutput(out, params, res); err != nil {
		return err
	}

	if res.Batch != nil {
		sink := &gha.Sink{Path: params.OutputFile}
		if err := sink.WriteAlerts(res.Batch); err != nil {
			logger.Warn().Err(err).Msg("failed to write CI output artifact")
			out.Warning(fmt.Sprintf("Failed to write CI output artifact: %v", err))
		}
		return fmt.Errorf("%d certificate(s) need attention: %w", len(res.Batch.Results), checkexec.ErrAlertsRaised)
	}
	return nil
}

// setupOutputPipeline wires the event stream with the formatter matching
// the requested output format plus the verbosity-gated diagnostics.
func setupOutputPipeline(cmd *cobra.Command) output.Output {
	stream := output.NewEventStream()

	format, _ := cmd.Flags().GetString("output")
	if format == "json" {
		stream.Subscribe(subscribers.NewJSONFormatter(os.Stdout))
	} else {
		stream.Subscribe(subscribers.NewHumanFormatter(os.Stdout, os.Stderr, true))
	}

	verbosityCount, _ := cmd.Flags().GetCount("verbosity")
	diagLevel := output.Level(verbosityCount)
	if diagLevel > output.LevelDebug {
		diagLevel = output.LevelDebug
	}
	stream.Subscribe(subscribers.NewDiagnosticSubscriber(os.Stderr, diagLevel))

	return output.NewDefaultOutput(stream)
}

// runReport is the document rendered for -o json / -o yaml.
type runReport struct {
	RunID   string            `json:"run_id" yaml:"run_id"`
	Results []check.Result    `json:"results" yaml:"results"`
	Alerts  *check.AlertBatch `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

func renderCheckOutput(out output.Output, params checkexec.Params, res *checkexec.Result) error {
	report := runReport{RunID: res.RunID, Results: res.Results, Alerts: res.Batch}

	switch params.OutputFormat {
	case "json":
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results to JSON: %w", err)
		}
		fmt.Println(string(jsonData))
	case "yaml":
		yamlData, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal results to YAML: %w", err)
		}
		fmt.Println(string(yamlData))
	default:
		printResultsTable(out, res.Results)
		printAlertSummary(out, params, res.Batch)
	}
	return nil
}

func printResultsTable(out output.Output, results []check.Result) {
	headers := []string{"Domain", "Status", "Expires", "Days Left"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		expires, days := "-", "-"
		if r.ExpiresAt != nil {
			expires = r.ExpiresAt.Format("2006-01-02")
		}
		if r.DaysRemaining != nil {
			days = strconv.Itoa(*r.DaysRemaining)
		}
		rows = append(rows, []string{r.Domain, string(r.Status), expires, days})
	}
	out.Table(headers, rows)
}

// printAlertSummary mirrors the classic console summary: one block per
// alerting domain, then the threshold that was applied.
func printAlertSummary(out output.Output, params checkexec.Params, batch *check.AlertBatch) {
	if batch == nil {
		out.Info("✓ All certificates are healthy!")
		return
	}

	out.Warning(fmt.Sprintf("%d certificate(s) need attention!", len(batch.Results)))
	for _, r := range batch.Results {
		out.Warning(fmt.Sprintf("  %s [%s]", r.Domain, r.Status))
		if r.Status == check.StatusError {
			out.Warning(fmt.Sprintf("    Error: %s", r.Error))
		} else if r.ExpiresAt != nil && r.DaysRemaining != nil {
			out.Warning(fmt.Sprintf("    Expires: %s (%d days remaining)", r.ExpiresAt.Format("2006-01-02"), *r.DaysRemaining))
		}
		if r.Runbook != "" {
			out.Warning(fmt.Sprintf("    Runbook: %s", r.Runbook))
		}
	}
	out.Info(fmt.Sprintf("Threshold: %d days", batch.ThresholdDays))
}

type progressLogger struct {
	logger zerolog.Logger
	out    output.Output
}

// OnEvent renders per-target progress both as structured logs and as
// user-facing output lines.
func (p *progressLogger) OnEvent(ev checkexec.ProgressEvent) {
	entry := p.logger.Info().
		Str("phase", ev.Phase).
		Str("target", ev.Target).
		Str("status", ev.Status)
	if ev.Message != "" {
		entry = entry.Str("message", ev.Message)
	}
	entry.Msg("check progress")

	if p.out == nil {
		return
	}
	switch ev.Status {
	case "started":
		p.out.Diag(output.LevelVerbose, fmt.Sprintf("Checking %s...", ev.Target), nil)
	case "completed":
		p.out.Info(fmt.Sprintf("%s %s: %s", statusIcon(ev.Message), ev.Target, ev.Message))
	}
}

// statusIcon returns an icon based on result status.
func statusIcon(status string) string {
	switch status {
	case string(check.StatusOK):
		return "✓"
	case string(check.StatusCritical):
		return "⚠"
	case string(check.StatusExpired):
		return "✗"
	case string(check.StatusError):
		return "✗"
	default:
		return "•"
	}
}
