package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Counter   CounterConfig
	Instances InstancesConfig
	Store     StoreConfig
	UI        UIConfig
	Telemetry TelemetryConfig
	Log       LogConfig
}

// CounterConfig holds the single counter demo settings.
type CounterConfig struct {
	Initial int
	Step    int
}

// InstancesConfig holds the multi counter demo settings. Views lists the
// instance ref of each mounted panel; a ref may appear more than once.
type InstancesConfig struct {
	Initial map[string]int
	Views   []string
}

// StoreConfig holds store behaviour.
type StoreConfig struct {
	SkipUnchanged bool `mapstructure:"skip_unchanged"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled bool
	Output  string
}

// LogConfig holds glog settings.
type LogConfig struct {
	Verbosity int
	Dir       string
}

// Load reads configuration from file and env. Env var overrides use prefix CINNAMON_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("counter.initial", 0)
	v.SetDefault("counter.step", 5)
	v.SetDefault("instances.views", []string{"left", "right", "left"})
	v.SetDefault("store.skip_unchanged", true)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.output", filepath.Join(os.Getenv("HOME"), ".local", "state", "cinnamon", "telemetry.jsonl"))
	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.dir", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CINNAMON_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "cinnamon"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CINNAMON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// viper merges nested maps key by key, so a map default would leak into
	// every configured instance set.
	if len(c.Instances.Initial) == 0 {
		c.Instances.Initial = defaultInstances()
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func defaultInstances() map[string]int {
	return map[string]int{"left": 5, "right": 10}
}

// Validate reports settings the demos cannot run with.
func (c Config) Validate() error {
	if c.Counter.Step == 0 {
		return errors.New("config: counter.step must not be zero")
	}
	for _, ref := range c.Instances.Views {
		if _, ok := c.Instances.Initial[ref]; !ok {
			return fmt.Errorf("config: instances.views references unknown instance %q", ref)
		}
	}
	return nil
}
