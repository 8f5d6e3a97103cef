// Package config loads and merges application configuration from defaults,
// a YAML config file, environment variables and command-line flags.
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Global Koanf instance, initialized once at startup.
var (
	k    *koanf.Koanf
	once sync.Once
)

// InitGlobalConfig initializes the global Koanf instance. This should be
// called early in the application lifecycle, before Load.
func InitGlobalConfig() {
	once.Do(func() {
		k = koanf.New(".")
	})
}

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a new Manager. It initializes the global Koanf
// instance if not already done.
func NewManager() *Manager {
	InitGlobalConfig()
	return &Manager{
		koanfInstance: k,
	}
}

// Load loads configuration from the default source chain.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags (--check.threshold-days=14)
//  2. Environment variables (TLSMON_CHECK_THRESHOLD_DAYS=14)
//  3. Legacy environment variables (MONITOR_DOMAINS, ...)
//  4. Config file (YAML)
//  5. Default values
//
// Environment variables use the TLSMON_ prefix; the first underscore maps
// to the section delimiter:
//
//	TLSMON_LOG_LEVEL             -> log.level
//	TLSMON_CHECK_THRESHOLD_DAYS  -> check.threshold_days
//
// For custom source ordering, use LoadWithSources() instead.
func (m *Manager) Load(flags *pflag.FlagSet, customConfigFilePath string) error {
	debug := false
	if flags != nil {
		if debugFlag := flags.Lookup("debug"); debugFlag != nil && debugFlag.Value.String() == "true" {
			debug = true
		}
	}

	return m.LoadWithSources(DefaultSources(customConfigFilePath, flags, debug))
}

// LoadWithSources loads configuration from the provided sources in priority
// order. Sources with lower priority values are loaded first; higher
// priority sources override lower priority values.
func (m *Manager) LoadWithSources(sources []ConfigSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	for _, src := range sources {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("error loading config from %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}
	m.currentConfig = newCfg

	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfgCopy := m.currentConfig
	return cfgCopy
}

// GetValue retrieves a configuration value by key path, e.g.
// GetValue("check.threshold_days"). Returns nil if the key doesn't exist.
func (m *Manager) GetValue(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanfInstance.Get(key)
}

// BindFlags defines command-line flags corresponding to configuration
// settings. These flags allow overriding config file / environment variable
// settings; called when setting up the root command.
func BindFlags(flags *pflag.FlagSet) {
	var flagvar bool
	flags.BoolVar(&flagvar, "debug", false, "Enable debug logging")
}
