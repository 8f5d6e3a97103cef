package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// envPrefix namespaces this tool's environment variables.
const envPrefix = "TLSMON_"

// ConfigSource is one layer of the configuration chain. Sources are loaded
// in ascending Priority order; later loads override earlier values.
type ConfigSource interface {
	Name() string
	Priority() int
	Load(k *koanf.Koanf) error
}

// Source priorities, lowest loaded first.
const (
	priorityDefaults  = 10
	priorityFile      = 20
	priorityLegacyEnv = 30
	priorityEnv       = 40
	priorityFlags     = 50
	priorityDebug     = 60
)

// DefaultSources returns the standard source chain: defaults, optional YAML
// config file, legacy environment variables, prefixed environment
// variables, command-line flags, and the debug override.
func DefaultSources(configFilePath string, flags *pflag.FlagSet, debug bool) []ConfigSource {
	sources := []ConfigSource{
		defaultsSource{},
		fileSource{path: configFilePath},
		legacyEnvSource{},
		envSource{},
	}
	if flags != nil {
		sources = append(sources, flagsSource{flags: flags})
	}
	if debug {
		sources = append(sources, debugSource{})
	}
	return sources
}

// defaultsSource loads the hardcoded baseline configuration.
type defaultsSource struct{}

func (defaultsSource) Name() string  { return "defaults" }
func (defaultsSource) Priority() int { return priorityDefaults }

func (defaultsSource) Load(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil)
}

// fileSource loads an optional YAML config file. An empty path is skipped;
// an explicitly named file must exist.
type fileSource struct {
	path string
}

func (s fileSource) Name() string  { return "file:" + s.path }
func (s fileSource) Priority() int { return priorityFile }

func (s fileSource) Load(k *koanf.Koanf) error {
	if s.path == "" {
		return nil
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("config file %s: %w", s.path, err)
	}
	return k.Load(file.Provider(s.path), yaml.Parser())
}

// legacyEnvSource maps the environment variables of the original monitoring
// script, so existing CI configurations keep working unchanged.
type legacyEnvSource struct{}

func (legacyEnvSource) Name() string  { return "legacy-env" }
func (legacyEnvSource) Priority() int { return priorityLegacyEnv }

func (legacyEnvSource) Load(k *koanf.Koanf) error {
	values := map[string]any{}
	if v := os.Getenv("MONITOR_DOMAINS"); v != "" {
		values["check.domains"] = v
	}
	if v := os.Getenv("CERT_EXPIRATION_THRESHOLD_DAYS"); v != "" {
		values["check.threshold_days"] = v
	}
	if strings.EqualFold(os.Getenv("DEBUG"), "true") {
		values["log.level"] = "debug"
	}
	if len(values) == 0 {
		return nil
	}
	return k.Load(confmap.Provider(values, "."), nil)
}

// envSource loads TLSMON_-prefixed variables. The first underscore becomes
// the section delimiter so key names may themselves contain underscores:
// TLSMON_CHECK_THRESHOLD_DAYS -> check.threshold_days.
type envSource struct{}

func (envSource) Name() string  { return "env" }
func (envSource) Priority() int { return priorityEnv }

func (envSource) Load(k *koanf.Koanf) error {
	return k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		section, rest, found := strings.Cut(key, "_")
		if !found {
			return key
		}
		return section + "." + rest
	}), nil)
}

// flagsSource merges explicitly set command-line flags. Flag names are
// mapped onto config keys; unknown flags without a dotted name are ignored.
type flagsSource struct {
	flags *pflag.FlagSet
}

func (flagsSource) Name() string  { return "flags" }
func (flagsSource) Priority() int { return priorityFlags }

func (s flagsSource) Load(k *koanf.Koanf) error {
	provider := posflag.ProviderWithValue(s.flags, ".", k, func(name, value string) (string, any) {
		key := flagConfigKey(name)
		switch key {
		case "check.threshold_days", "check.port", "check.connect_timeout",
			"check.decode_timeout", "check.concurrency":
			return key, cast.ToInt(value)
		}
		return key, value
	})
	return k.Load(provider, nil)
}

// flagConfigKey maps a flag name to its config key. Dotted flag names pass
// through; ergonomic flag names get an explicit mapping; everything else is
// dropped from the config merge.
func flagConfigKey(name string) string {
	switch name {
	case "domains":
		return "check.domains"
	case "threshold":
		return "check.threshold_days"
	case "port":
		return "check.port"
	case "connect-timeout":
		return "check.connect_timeout"
	case "decode-timeout":
		return "check.decode_timeout"
	case "concurrency":
		return "check.concurrency"
	case "decoder":
		return "check.decoder"
	case "github-output":
		return "check.output_file"
	}
	if strings.Contains(name, ".") {
		return name
	}
	return ""
}

// debugSource forces debug logging; loaded last so it wins over everything.
type debugSource struct{}

func (debugSource) Name() string  { return "debug-override" }
func (debugSource) Priority() int { return priorityDebug }

func (debugSource) Load(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(map[string]any{"log.level": "debug"}, "."), nil)
}
