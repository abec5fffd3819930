package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tperrors "github.com/vnykmshr/taskpool/pkg/common/errors"
)

func newFlags(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v, err := BindFlags(fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(args))
	return v
}

func TestDefaults(t *testing.T) {
	c, err := Load(newFlags(t), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), c)
	assert.Equal(t, 10, c.Workers)
	assert.Equal(t, 100, c.Tasks)
	assert.Equal(t, 100*time.Millisecond, c.MinDuration)
	assert.Equal(t, 3*time.Second, c.MaxDuration)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	c, err := Load(newFlags(t, "--workers=3", "--max-duration=1s", "--log-level=ERROR", "--log-file=/tmp/x.log"), "")
	require.NoError(t, err)

	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, time.Second, c.MaxDuration)
	assert.Equal(t, "ERROR", c.Logging.Level)
	assert.Equal(t, "/tmp/x.log", c.Logging.FilePath)
}

func TestConfigFile(t *testing.T) {
	c, err := Load(newFlags(t), "testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, 25, c.Tasks)
	assert.Equal(t, 10*time.Millisecond, c.MinDuration)
	assert.Equal(t, 250*time.Millisecond, c.MaxDuration)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, 64, c.Logging.LogRotate.MaxFileSizeMB)
	assert.False(t, c.Logging.LogRotate.Compress)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, c.Logging.LogRotate.BackupFileCount)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	c, err := Load(newFlags(t, "--workers=7", "--log-format=text"), "testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 7, c.Workers)
	assert.Equal(t, "text", c.Logging.Format)
	assert.Equal(t, 25, c.Tasks)
}

func TestConfigFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(newFlags(t), "testdata/does_not_exist.yaml")
		assert.ErrorContains(t, err, "reading the config file")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(newFlags(t), "testdata/unknown_key.yaml")
		expectedErr := &mapstructure.Error{}
		assert.ErrorAs(t, err, &expectedErr)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := Load(newFlags(t), "testdata/invalid_duration.yaml")
		assert.ErrorContains(t, err, "unmarshaling the config")
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := Load(newFlags(t), "testdata/invalid_range.yaml")
		assert.ErrorIs(t, err, tperrors.ErrInvalidConfiguration)
		assert.ErrorContains(t, err, "max-duration")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"negative tasks", func(c *Config) { c.Tasks = -1 }, "tasks"},
		{"negative min", func(c *Config) { c.MinDuration = -time.Second }, "min-duration"},
		{"bad level", func(c *Config) { c.Logging.Level = "CHATTY" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)

			err := c.Validate()
			var verr *tperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestLoggerConfig(t *testing.T) {
	c := Default()
	c.Logging.FilePath = "/var/log/taskpool.log"

	lc := c.LoggerConfig()
	assert.Equal(t, "INFO", lc.Level)
	assert.Equal(t, "/var/log/taskpool.log", lc.FilePath)
	assert.Equal(t, 512, lc.MaxSizeMB)
	assert.Equal(t, 10, lc.MaxBackups)
	assert.True(t, lc.Compress)
}

func TestYAMLRoundTrip(t *testing.T) {
	want := Default()
	want.Workers = 6
	want.MaxDuration = 750 * time.Millisecond

	out, err := want.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "max-duration: 750ms")

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(out)))

	var got Config
	require.NoError(t, v.Unmarshal(&got, viper.DecodeHook(DecodeHook()), func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}))
	assert.Equal(t, want, got)
}
