package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Env         string      `yaml:"env" env:"APP_ENV" env-default:"local"`
	Storage     string      `yaml:"storage" env:"STORAGE" env-default:"postgres"`
	HTTPServer  HTTPServer  `yaml:"http_server"`
	Postgres    Postgres    `yaml:"postgres"`
	JWT         JWT         `yaml:"jwt"`
	Perspective Perspective `yaml:"perspective"`
	Moderation  Moderation  `yaml:"moderation"`
	ES          ES          `yaml:"elasticsearch"`
	Redis       Redis       `yaml:"redis"`
	CORS        CORS        `yaml:"cors"`
}

type Perspective struct {
	Endpoint  string        `yaml:"endpoint" env-default:"https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"`
	APIKey    string        `yaml:"api_key" env:"PERSPECTIVE_API_KEY"`
	Languages []string      `yaml:"languages" env-default:"th,en"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

type Moderation struct {
	ToxicityThreshold float64 `yaml:"toxicity_threshold" env-default:"0.7"`
	HideThreshold     int     `yaml:"hide_threshold" env-default:"5"`
	// Average only visible reviews instead of every stored review.
	AggregateVisibleOnly bool `yaml:"aggregate_visible_only"`
}

type ES struct {
	Hosts    []string `yaml:"hosts" env:"ELASTIC_HOSTS"`
	Index    string   `yaml:"index" env-default:"courses"`
	Username string   `yaml:"username" env-default:"elastic"`
	Password string   `yaml:"password" env:"ELASTIC_PASSWORD"`
}

func (e ES) Enabled() bool {
	return len(e.Hosts) > 0
}

type Redis struct {
	Address    string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password   string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB         int           `yaml:"db"`
	VoteLimit  int64         `yaml:"vote_limit" env-default:"1"`
	VoteWindow time.Duration `yaml:"vote_window" env-default:"24h"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}

type CORS struct {
	AllowOrigins []string `yaml:"allow_origins" env-default:"http://localhost:3000"`
}

type JWT struct {
	SecretKey  string        `yaml:"secret_key" env:"JWT_SECRET" env-required:"true"`
	Issuer     string        `yaml:"issuer" env-default:"tu-reviews"`
	AccessTTL  time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_token_ttl" env-default:"720h"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Can not read config file %s", err)
	}
	return cfg
}

// Load reads the YAML at path with environment overrides. A missing JWT
// secret is an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret_key is required, set JWT_SECRET")
	}
	return &cfg, nil
}
