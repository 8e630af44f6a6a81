package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. Values of the form
// ${VAR} in the YAML file are expanded from the environment, so secrets
// stay out of the file itself.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
		// Pool limits are fixed at startup and shared process-wide.
		MaxOpenConns   int           `yaml:"max_open_conns"`
		MaxIdleTime    time.Duration `yaml:"max_idle_time"`
		ConnectTimeout time.Duration `yaml:"connect_timeout"`
	} `yaml:"database"`
	Directory struct {
		URL          string        `yaml:"url"`
		BindDN       string        `yaml:"bind_dn"`
		BindPassword string        `yaml:"bind_password"`
		SearchBase   string        `yaml:"search_base"`
		Timeout      time.Duration `yaml:"timeout"`
		SkipVerify   bool          `yaml:"skip_verify"`
	} `yaml:"directory"`
	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
}

// LoadConfig reads configuration from the specified YAML file and
// validates it. A missing signing key or store/directory address is a
// startup failure, never a per-request one.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":3000"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleTime == 0 {
		c.Database.MaxIdleTime = 30 * time.Second
	}
	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = 2 * time.Second
	}
	if c.Directory.Timeout == 0 {
		c.Directory.Timeout = 5 * time.Second
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 8 * time.Hour
	}
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("config: database.url is required")
	}
	if c.Directory.URL == "" {
		return errors.New("config: directory.url is required")
	}
	if c.Directory.BindDN == "" || c.Directory.BindPassword == "" {
		return errors.New("config: directory.bind_dn and directory.bind_password are required")
	}
	if c.Directory.SearchBase == "" {
		return errors.New("config: directory.search_base is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	return nil
}
