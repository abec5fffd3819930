// Package config holds the settings of the taskpool command and binds them
// to command-line flags and an optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vnykmshr/taskpool/internal/logger"
	"github.com/vnykmshr/taskpool/pkg/common/validation"
	"gopkg.in/yaml.v3"
)

// Config is the effective configuration of a run.
type Config struct {
	Workers     int           `yaml:"workers"`
	Tasks       int           `yaml:"tasks"`
	MinDuration time.Duration `yaml:"min-duration"`
	MaxDuration time.Duration `yaml:"max-duration"`
	MetricsAddr string        `yaml:"metrics-addr"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level     string          `yaml:"level"`
	Format    string          `yaml:"format"`
	FilePath  string          `yaml:"file-path"`
	LogRotate LogRotateConfig `yaml:"log-rotate"`
}

type LogRotateConfig struct {
	MaxFileSizeMB   int  `yaml:"max-file-size-mb"`
	BackupFileCount int  `yaml:"backup-file-count"`
	MaxAgeDays      int  `yaml:"max-age-days"`
	Compress        bool `yaml:"compress"`
}

// Default returns the configuration used when no flag or file overrides it.
func Default() Config {
	return Config{
		Workers:     10,
		Tasks:       100,
		MinDuration: 100 * time.Millisecond,
		MaxDuration: 3 * time.Second,
		Logging: LoggingConfig{
			Level:  logger.Info,
			Format: "text",
			LogRotate: LogRotateConfig{
				MaxFileSizeMB:   512,
				BackupFileCount: 10,
				Compress:        true,
			},
		},
	}
}

// Validate checks the configuration for values a run cannot work with.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("config", "workers", c.Workers); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "tasks", float64(c.Tasks)); err != nil {
		return err
	}
	if err := validation.ValidateDurationRange("config", "min-duration", "max-duration", c.MinDuration, c.MaxDuration); err != nil {
		return err
	}
	if err := validation.ValidateOneOf("config", "logging.level", c.Logging.Level,
		logger.Trace, logger.Debug, logger.Info, logger.Warning, logger.Error, logger.Off); err != nil {
		return err
	}
	if err := validation.ValidateOneOf("config", "logging.format", c.Logging.Format, "text", "json"); err != nil {
		return err
	}
	return nil
}

// LoggerConfig translates the logging section for logger.New.
func (c Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		FilePath:   c.Logging.FilePath,
		MaxSizeMB:  c.Logging.LogRotate.MaxFileSizeMB,
		MaxBackups: c.Logging.LogRotate.BackupFileCount,
		MaxAgeDays: c.Logging.LogRotate.MaxAgeDays,
		Compress:   c.Logging.LogRotate.Compress,
	}
}

// YAML renders the configuration in the format Load reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// BindFlags registers the command-line flags on fs and returns a viper
// instance whose keys mirror the YAML layout, with Default() underneath.
func BindFlags(fs *pflag.FlagSet) (*viper.Viper, error) {
	d := Default()
	v := viper.New()

	fs.Int("workers", d.Workers, "Number of workers in the pool.")
	fs.Int("tasks", d.Tasks, "Number of demo tasks to submit.")
	fs.Duration("min-duration", d.MinDuration, "Shortest simulated task duration.")
	fs.Duration("max-duration", d.MaxDuration, "Longest simulated task duration (exclusive).")
	fs.String("metrics-addr", d.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9090.")
	fs.String("log-level", d.Logging.Level, "Severity: TRACE, DEBUG, INFO, WARNING, ERROR or OFF.")
	fs.String("log-format", d.Logging.Format, "Log encoding: text or json.")
	fs.String("log-file", d.Logging.FilePath, "Write logs to this file, rotated by size.")

	keys := map[string]string{
		"workers":      "workers",
		"tasks":        "tasks",
		"min-duration": "min-duration",
		"max-duration": "max-duration",
		"metrics-addr": "metrics-addr",
		"log-level":    "logging.level",
		"log-format":   "logging.format",
		"log-file":     "logging.file-path",
	}
	for flagName, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flagName, err)
		}
	}

	rotate := d.Logging.LogRotate
	v.SetDefault("logging.log-rotate.max-file-size-mb", rotate.MaxFileSizeMB)
	v.SetDefault("logging.log-rotate.backup-file-count", rotate.BackupFileCount)
	v.SetDefault("logging.log-rotate.max-age-days", rotate.MaxAgeDays)
	v.SetDefault("logging.log-rotate.compress", rotate.Compress)

	return v, nil
}

// Load reads configFile into v when set, then decodes and validates the
// result. Flags changed on the command line win over file values.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	var c Config
	err := v.Unmarshal(&c, viper.DecodeHook(DecodeHook()), func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.ErrorUnused = true
	})
	if err != nil {
		return Config{}, fmt.Errorf("error while unmarshaling the config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DecodeHook converts the string forms used in YAML files.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
