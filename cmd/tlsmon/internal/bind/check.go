// Package bind translates command flags and merged configuration into
// checkexec parameters.
package bind

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sciclon2/tls-monitoring/pkg/check"
	"github.com/sciclon2/tls-monitoring/pkg/checkexec"
	"github.com/sciclon2/tls-monitoring/pkg/config"
	"github.com/sciclon2/tls-monitoring/pkg/gha"
)

// BindCheckOptions builds the run parameters for the check command.
//
// Settings with config keys (domains, threshold, port, timeouts,
// concurrency, decoder, output file) arrive through the merged Config; the
// presentation-only flags (-o, --progress) are read off the command. An
// empty parsed target list is a configuration error surfaced here, before
// any network activity.
func BindCheckOptions(cmd *cobra.Command, cfg config.Config) (checkexec.Params, error) {
	targets := check.ParseTargets(cfg.Check.Domains)
	if len(targets) == 0 {
		return checkexec.Params{}, checkexec.ErrNoTargets
	}
	if cfg.Check.ThresholdDays <= 0 {
		return checkexec.Params{}, checkexec.ErrInvalidThreshold
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	outputFile := cfg.Check.OutputFile
	if outputFile == "" {
		outputFile = gha.DefaultSink().Path
	}

	return checkexec.Params{
		Targets:        targets,
		ThresholdDays:  cfg.Check.ThresholdDays,
		Port:           cfg.Check.Port,
		ConnectTimeout: secondsToDuration(cfg.Check.ConnectTimeoutSeconds, check.DefaultConnectTimeout),
		DecodeTimeout:  secondsToDuration(cfg.Check.DecodeTimeoutSeconds, check.DefaultDecodeTimeout),
		Concurrency:    cfg.Check.Concurrency,
		Decoder:        cfg.Check.Decoder,
		OutputFormat:   outputFormat,
		OutputFile:     outputFile,
	}, nil
}

func secondsToDuration(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
