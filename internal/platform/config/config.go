// Package config loads server configuration from defaults, an optional
// YAML file, and PAWDER_* environment variables (highest precedence).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the pet server.
type Config struct {
	DBPath     string `mapstructure:"db_path"`
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`

	// SweepSchedule is a cron spec; the default runs the decay/neglect
	// sweep every 45 minutes.
	SweepSchedule string `mapstructure:"sweep_schedule"`

	// VitalityStat names the stat whose collapse removes a pet.
	VitalityStat   string `mapstructure:"vitality_stat"`
	NeglectPenalty int    `mapstructure:"neglect_penalty"`

	PrizeCooldown time.Duration `mapstructure:"prize_cooldown"`
	NotifyTimeout time.Duration `mapstructure:"notify_timeout"`
}

// Load reads configuration. A missing config file is not an error;
// defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", "pawder.db")
	v.SetDefault("listen_addr", ":8087")
	v.SetDefault("log_level", "info")
	v.SetDefault("sweep_schedule", "@every 45m")
	v.SetDefault("vitality_stat", "willpower")
	v.SetDefault("neglect_penalty", 5)
	v.SetDefault("prize_cooldown", 24*time.Hour)
	v.SetDefault("notify_timeout", 5*time.Second)

	v.SetEnvPrefix("PAWDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.NeglectPenalty < 0 {
		return nil, fmt.Errorf("neglect_penalty must be >= 0, got %d", cfg.NeglectPenalty)
	}
	if cfg.VitalityStat == "" {
		return nil, fmt.Errorf("vitality_stat must not be empty")
	}

	return &cfg, nil
}
