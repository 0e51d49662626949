package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/generate", cfg.URL)
	assert.Equal(t, "Hello from smoke test", cfg.Prompt)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyURL, "http://127.0.0.1:9999/generate")
	v.Set(KeyTimeout, "250ms")
	v.Set(KeyLogLevel, "debug")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999/generate", cfg.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestTargetIgnoresEnvironment(t *testing.T) {
	t.Setenv("SMOKE_URL", "http://elsewhere:1/generate")

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	require.NoError(t, v.BindEnv(KeyLogLevel))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "default is valid", mutate: func(c *Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.URL = "/generate" }, wantErr: "only http and https"},
		{name: "ftp scheme", mutate: func(c *Config) { c.URL = "ftp://localhost/generate" }, wantErr: "only http and https"},
		{name: "missing host", mutate: func(c *Config) { c.URL = "http:///generate" }, wantErr: "missing host"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: "timeout must be positive"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
