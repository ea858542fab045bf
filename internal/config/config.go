package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds settings that are safe to expose to clients and tests.
type Public struct {
	Port             int           `yaml:"port"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	SecureCookies    bool          `yaml:"secure_cookies"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	JwtTTL           time.Duration `yaml:"jwt_ttl"`
	DefaultPageSize  int           `yaml:"default_page_size"`
	MaxPageSize      int           `yaml:"max_page_size"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
	ApiKeySecretSize int           `yaml:"api_key_secret_size"` // bytes of entropy per issued key
}

type Private struct {
	Pg       Pg     `yaml:"pg"`
	JwtKey   string `yaml:"jwt_key"`
	HashCost int    `yaml:"hash_cost"` // bcrypt cost for passwords and api key secrets
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.Port == 0 {
		c.Public.Port = 8080
	}
	if c.Public.DefaultPageSize == 0 {
		c.Public.DefaultPageSize = 20
	}
	if c.Public.MaxPageSize == 0 {
		c.Public.MaxPageSize = 100
	}
	if c.Public.ShutdownTimeout == 0 {
		c.Public.ShutdownTimeout = 10 * time.Second
	}
	if c.Public.ApiKeySecretSize == 0 {
		c.Public.ApiKeySecretSize = 48
	}
	if c.Private.HashCost == 0 {
		c.Private.HashCost = 10
	}
}
