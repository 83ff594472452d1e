// Package config loads public.yaml and the optional private.yaml, then overlays environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Env       string    `yaml:"env" env:"ENVIRONMENT"`
	Version   string    `yaml:"version"`
	HTTP      HTTP      `yaml:"http"`
	Log       Log       `yaml:"log"`
	Storage   Storage   `yaml:"storage"`
	Cors      Cors      `yaml:"cors"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Seed      Seed      `yaml:"seed"`
}

type HTTP struct {
	Port            int           `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"` // limit for json request bodies
	HTTPS           bool          `yaml:"https" env:"HTTPS"` // enables HSTS header
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	JSON  bool   `yaml:"json" env:"LOG_JSON"`
}

type Storage struct {
	Driver         string        `yaml:"driver" env:"STORAGE_DRIVER"`
	MongoDatabase  string        `yaml:"mongo_database" env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

// RateLimit applies per client IP to everything under /api
type RateLimit struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type Seed struct {
	FixturesDir string `yaml:"fixtures_dir" env:"FIXTURES_DIR"`
}

type Private struct {
	MongoURI string `yaml:"mongodb_uri" env:"MONGODB_URI"`
	Pg       Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host" env:"PG_HOST"`
	Port     int    `yaml:"port" env:"PG_PORT"`
	User     string `yaml:"user" env:"PG_USER"`
	Password string `yaml:"password" env:"PG_PASSWORD"`
	Dbname   string `yaml:"dbname" env:"PG_DATABASE"`
}

func (p Pg) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Dbname)
}

func (h HTTP) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

func Default() Public {
	return Public{
		Env:     "development",
		Version: "1.0.0",
		HTTP: HTTP{
			Port:            3000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    10 << 20,
		},
		Log:       Log{Level: "info"},
		Storage:   Storage{Driver: DriverMongo, MongoDatabase: "topics", ConnectTimeout: 10 * time.Second},
		Cors:      Cors{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: RateLimit{Requests: 100, Window: 15 * time.Minute},
		Seed:      Seed{FixturesDir: "backend/fixtures"},
	}
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml (required) and private.yaml (optional) from configFolder
// on top of Default(), then overlays environment variables.
func Load(configFolder string) (*Config, error) {
	cfg := &Config{Public: Default()}

	publicPath := path.Join(configFolder, "public.yaml")
	if _, err := os.Stat(publicPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", publicPath)
	}
	if err := loadPath(publicPath, &cfg.Public); err != nil {
		return nil, err
	}

	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		if err := loadPath(privatePath, &cfg.Private); err != nil {
			return nil, err
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to overlay env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	p := c.Public
	if p.HTTP.Port <= 0 || p.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be in 1..65535, got %d", p.HTTP.Port)
	}
	switch p.Storage.Driver {
	case DriverMongo:
		if c.Private.MongoURI == "" {
			return errors.New("mongodb_uri is required for the mongo driver (set MONGODB_URI)")
		}
	case DriverPostgres:
		if c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "" {
			return errors.New("pg.host and pg.dbname are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", p.Storage.Driver)
	}
	if p.RateLimit.Requests <= 0 || p.RateLimit.Window <= 0 {
		return errors.New("rate_limit.requests and rate_limit.window must be positive")
	}
	if p.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	return nil
}
