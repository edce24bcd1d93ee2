// Package mahjongconfig loads engine/CLI configuration via viper, with
// fsnotify hot-reload of rule toggles between self-play runs.
//
// Ground: lamyinia-GoMahjong's common/config/app_config.go, trimmed to the
// fields a standalone engine/CLI needs; the teacher's etcd/jwt/nats/
// database/domain-routing fields have no engine-side use (see DESIGN.md).
package mahjongconfig

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the root configuration object.
type Config struct {
	Log   LogConf   `mapstructure:"log"`
	Rules RulesConf `mapstructure:"rules"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// RulesConf holds the rule-set toggles spec.md §9 leaves as open
// questions / configuration.
type RulesConf struct {
	// DefaultMode names the GameMode used when not overridden on the CLI:
	// one of "4p-red-half", "4p-red-east", "4p-no-red", "4p-no-red-east".
	DefaultMode string `mapstructure:"defaultMode"`
	// DoubleRonAllowed switches multi-ron resolution from head-bump to
	// honoring every ron claim with split payouts (spec.md §4.4).
	DoubleRonAllowed bool `mapstructure:"doubleRonAllowed"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Log:   LogConf{Level: "info"},
		Rules: RulesConf{DefaultMode: "4p-red-half", DoubleRonAllowed: false},
	}
}

// Load reads configuration from path (if non-empty) via viper, falling
// back to Default() for anything unset. onChange, if non-nil, is invoked
// with the reloaded config whenever the file changes on disk.
func Load(path string, onChange func(*Config)) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("log.level", "info")
	v.SetDefault("rules.defaultMode", "4p-red-half")
	v.SetDefault("rules.doubleRonAllowed", false)

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}

	if onChange != nil {
		v.OnConfigChange(func(_ fsnotify.Event) {
			reloaded := Default()
			if err := v.Unmarshal(reloaded); err == nil {
				onChange(reloaded)
			}
		})
		v.WatchConfig()
	}

	return cfg, nil
}
