package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix prefixes every environment override, e.g. POINTILLISM_LOG_LEVEL.
const envPrefix = "POINTILLISM"

// config is the merged view of flags, environment and pointillism.yaml.
type config struct {
	// Manifests is a directory of preset manifests; empty disables presets.
	Manifests     string    `mapstructure:"manifests"`
	MaxDimension  int       `mapstructure:"max_dimension"`
	MaxPrimitives int       `mapstructure:"max_primitives"`
	Format        string    `mapstructure:"format"`
	Trace         string    `mapstructure:"trace"`
	// Workers bounds the analysis goroutines; 0 means GOMAXPROCS.
	Workers       int       `mapstructure:"workers"`
	Log           logConfig `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("manifests", "")
	v.SetDefault("max_dimension", 0)
	v.SetDefault("max_primitives", 0)
	v.SetDefault("format", "png")
	v.SetDefault("trace", "none")
	v.SetDefault("workers", 0)

	lc := defaultLogConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.file", lc.File)
	v.SetDefault("log.max_size_mb", lc.MaxSizeMB)
	v.SetDefault("log.max_backups", lc.MaxBackups)
	v.SetDefault("log.max_age_days", lc.MaxAgeDays)
	v.SetDefault("log.compress", lc.Compress)
}

// loadConfig reads .env, then the config file, then the environment.
// Flags bound to v win over all of them.
func loadConfig(v *viper.Viper, cfgFile string) (config, error) {
	// .env is optional
	_ = godotenv.Load()

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pointillism")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pointillism"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
