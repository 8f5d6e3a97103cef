package config

// Config is the merged application configuration. It is built once at
// startup and passed explicitly into the checking pipeline; inner
// components never read configuration ad hoc.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Check CheckConfig `koanf:"check"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CheckConfig controls a certificate check run. Timeouts are whole seconds,
// matching the flag and environment variable surface.
type CheckConfig struct {
	// Domains is the raw target specification string: comma-separated
	// entries of "host" or "host:runbookURL".
	Domains string `koanf:"domains"`

	// ThresholdDays triggers an alert for any certificate with strictly
	// fewer days remaining.
	ThresholdDays int `koanf:"threshold_days"`

	Port                  int `koanf:"port"`
	ConnectTimeoutSeconds int `koanf:"connect_timeout"`
	DecodeTimeoutSeconds  int `koanf:"decode_timeout"`
	Concurrency           int `koanf:"concurrency"`

	// Decoder selects the X.509 end-date decoder: "openssl" or "native".
	Decoder string `koanf:"decoder"`

	// OutputFile overrides the CI output artifact path. Empty means the
	// GITHUB_OUTPUT environment variable.
	OutputFile string `koanf:"output_file"`
}

// DefaultConfig returns a new Config struct populated with hardcoded default
// values. These serve as the baseline configuration if no other sources
// override them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Check: CheckConfig{
			ThresholdDays:         30,
			Port:                  443,
			ConnectTimeoutSeconds: 10,
			DecodeTimeoutSeconds:  5,
			Concurrency:           4,
			Decoder:               "openssl",
		},
	}
}

// DefaultConfigAsMap converts the DefaultConfig struct to a flat map for
// koanf's confmap provider, so koanf knows every key up front.
func DefaultConfigAsMap() map[string]any {
	def := DefaultConfig()
	return map[string]any{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,

		"check.domains":         def.Check.Domains,
		"check.threshold_days":  def.Check.ThresholdDays,
		"check.port":            def.Check.Port,
		"check.connect_timeout": def.Check.ConnectTimeoutSeconds,
		"check.decode_timeout":  def.Check.DecodeTimeoutSeconds,
		"check.concurrency":     def.Check.Concurrency,
		"check.decoder":         def.Check.Decoder,
		"check.output_file":     def.Check.OutputFile,
	}
}
