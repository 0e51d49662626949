package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/mule-ai/smoke/pkg/log"
)

const (
	KeyURL      = "url"
	KeyPrompt   = "prompt"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"

	EnvPrefix = "SMOKE"

	DefaultURL     = "http://localhost:8000/generate"
	DefaultPrompt  = "Hello from smoke test"
	DefaultTimeout = 10 * time.Second
)

// Config is everything a single smoke run needs.
type Config struct {
	URL      string
	Prompt   string
	Timeout  time.Duration
	LogLevel string
	LogFile  string
}

// SetDefaults installs the fixed target. The target keys are never bound to
// flags or the environment; only code holding the *viper.Viper can change them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyURL, DefaultURL)
	v.SetDefault(KeyPrompt, DefaultPrompt)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		URL:      DefaultURL,
		Prompt:   DefaultPrompt,
		Timeout:  DefaultTimeout,
		LogLevel: "info",
	}
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		URL:      v.GetString(KeyURL),
		Prompt:   v.GetString(KeyPrompt),
		Timeout:  v.GetDuration(KeyTimeout),
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: only http and https are allowed", c.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LogOptions returns the logger settings carried by c.
func (c Config) LogOptions() log.Options {
	return log.Options{Level: c.LogLevel, File: c.LogFile}
}
