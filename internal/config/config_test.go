package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gorecipe/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "gorecipe", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*config.Config) {},
			wantErr: "",
		},
		{
			name:    "invalid environment",
			mutate:  func(c *config.Config) { c.App.Environment = "testing" },
			wantErr: "invalid environment",
		},
		{
			name:    "missing name",
			mutate:  func(c *config.Config) { c.App.Name = "" },
			wantErr: "application name",
		},
		{
			name:    "missing address",
			mutate:  func(c *config.Config) { c.Server.Address = "" },
			wantErr: "server address",
		},
		{
			name:    "zero fetch timeout",
			mutate:  func(c *config.Config) { c.Fetch.Timeout = 0 },
			wantErr: "fetch timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_ViperOverrides(t *testing.T) {
	t.Parallel()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("server.address", ":9999")
	v.Set("fetch.timeout", "45s")
	v.Set("logger.level", "debug")

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, 45*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_OptionsWin(t *testing.T) {
	t.Parallel()

	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.Load(v, config.WithServerAddress(":7070"), config.WithDebug(true))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Parallel()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("app.environment", "nonsense")

	_, err := config.Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}
