// Package config loads service configuration from defaults, an optional
// YAML file and SIDENAV_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mchmarny/sidenav/pkg/logger"
)

// EnvPrefix prefixes environment overrides, e.g. SIDENAV_SERVER_PORT.
const EnvPrefix = "SIDENAV"

// Config holds application configuration.
type Config struct {
	Server  ServerConfig
	Content ContentConfig
	Nav     NavConfig
	Log     LogConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TLSCert         string        `mapstructure:"tls_cert"`
	TLSKey          string        `mapstructure:"tls_key"`
	RequestLog      bool          `mapstructure:"request_log"`
}

// ContentConfig selects the content source. An empty Dir uses the embedded sample content.
type ContentConfig struct {
	Dir string
}

// NavConfig holds navigation settings.
type NavConfig struct {
	BasePath     string `mapstructure:"base_path"`
	SessionLimit int    `mapstructure:"session_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", 9876)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.tls_cert", "")
	v.SetDefault("server.tls_key", "")
	v.SetDefault("server.request_log", true)
	v.SetDefault("content.dir", "")
	v.SetDefault("nav.base_path", "/docs")
	v.SetDefault("nav.session_limit", 10000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the unprefixed logger variables still apply, prefixed ones win
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", logger.EnvVarLogLevel)
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT", logger.EnvVarLogFormat)

	return v
}

// Load reads the config file at path, if any, and decodes v into a Config.
// Without a path, sidenav.yaml is looked up in the working directory and
// its absence is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sidenav")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.Nav.BasePath, "/") {
		return fmt.Errorf("nav.base_path must start with /: %q", c.Nav.BasePath)
	}
	if c.Nav.SessionLimit < 1 {
		return fmt.Errorf("nav.session_limit must be positive: %d", c.Nav.SessionLimit)
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return errors.New("server.tls_cert and server.tls_key must be set together")
	}
	return nil
}
