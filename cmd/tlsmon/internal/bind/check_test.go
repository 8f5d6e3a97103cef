package bind

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/sciclon2/tls-monitoring/pkg/check"
	"github.com/sciclon2/tls-monitoring/pkg/checkexec"
	"github.com/sciclon2/tls-monitoring/pkg/config"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().StringP("output", "o", "text", "")
	return cmd
}

func testConfig(domains string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Check.Domains = domains
	return cfg
}

func TestBindCheckOptions(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")

	t.Run("defaults flow through", func(t *testing.T) {
		cmd := newTestCommand()
		params, err := BindCheckOptions(cmd, testConfig("example.com,test.com:https://r.io"))
		require.NoError(t, err)

		require.Equal(t, []check.Target{
			{Host: "example.com"},
			{Host: "test.com", Runbook: "https://r.io"},
		}, params.Targets)
		require.Equal(t, 30, params.ThresholdDays)
		require.Equal(t, 443, params.Port)
		require.Equal(t, 10*time.Second, params.ConnectTimeout)
		require.Equal(t, 5*time.Second, params.DecodeTimeout)
		require.Equal(t, 4, params.Concurrency)
		require.Equal(t, "openssl", params.Decoder)
		require.Equal(t, "text", params.OutputFormat)
	})

	t.Run("empty domain list fails before any network work", func(t *testing.T) {
		cmd := newTestCommand()
		_, err := BindCheckOptions(cmd, testConfig(""))
		require.ErrorIs(t, err, checkexec.ErrNoTargets)

		_, err = BindCheckOptions(cmd, testConfig(" , ,"))
		require.ErrorIs(t, err, checkexec.ErrNoTargets)
	})

	t.Run("invalid threshold fails", func(t *testing.T) {
		cmd := newTestCommand()
		cfg := testConfig("example.com")
		cfg.Check.ThresholdDays = 0
		_, err := BindCheckOptions(cmd, cfg)
		require.ErrorIs(t, err, checkexec.ErrInvalidThreshold)
	})

	t.Run("zero timeouts fall back to pipeline defaults", func(t *testing.T) {
		cmd := newTestCommand()
		cfg := testConfig("example.com")
		cfg.Check.ConnectTimeoutSeconds = 0
		cfg.Check.DecodeTimeoutSeconds = -1
		params, err := BindCheckOptions(cmd, cfg)
		require.NoError(t, err)
		require.Equal(t, check.DefaultConnectTimeout, params.ConnectTimeout)
		require.Equal(t, check.DefaultDecodeTimeout, params.DecodeTimeout)
	})

	t.Run("output format flag is read off the command", func(t *testing.T) {
		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("output", "json"))
		params, err := BindCheckOptions(cmd, testConfig("example.com"))
		require.NoError(t, err)
		require.Equal(t, "json", params.OutputFormat)
	})

	t.Run("output file falls back to GITHUB_OUTPUT", func(t *testing.T) {
		t.Setenv("GITHUB_OUTPUT", "/tmp/github_output")
		cmd := newTestCommand()
		params, err := BindCheckOptions(cmd, testConfig("example.com"))
		require.NoError(t, err)
		require.Equal(t, "/tmp/github_output", params.OutputFile)
	})

	t.Run("configured output file wins over the environment", func(t *testing.T) {
		t.Setenv("GITHUB_OUTPUT", "/tmp/github_output")
		cmd := newTestCommand()
		cfg := testConfig("example.com")
		cfg.Check.OutputFile = "/tmp/custom_output"
		params, err := BindCheckOptions(cmd, cfg)
		require.NoError(t, err)
		require.Equal(t, "/tmp/custom_output", params.OutputFile)
	})
}
