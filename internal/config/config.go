// Package config loads tool configuration from an optional YAML file and
// ROUTINE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	User     UserConfig     `mapstructure:"user"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Routines RoutinesConfig `mapstructure:"routines"`
	Log      LogConfig      `mapstructure:"log"`
}

type UserConfig struct {
	Name string `mapstructure:"name"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type RoutinesConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config from configPath if given, otherwise from
// ~/.routine/config.yaml. A missing file is fine; defaults and environment
// variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".routine"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ROUTINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()
	v.SetDefault("user.name", "player")
	v.SetDefault("storage.db_path", filepath.Join(home, ".routine", "routine.db"))
	v.SetDefault("routines.dir", filepath.Join(home, ".routine", "routines"))
	v.SetDefault("log.level", "warn")
}
