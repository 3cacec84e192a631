package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

const (
	ModeRemote = "remote"
	ModeLocal  = "local"
	ModeStore  = "store"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTP        HTTP        `yaml:"http"`
	APIKeys     []string    `yaml:"api-keys" env:"API_KEYS" env-default:"test,c4game"`
	Store       Store       `yaml:"store"`
	Redis       Redis       `yaml:"redis"`
	Postgres    Postgres    `yaml:"postgres"`
	Kafka       Kafka       `yaml:"kafka"`
	Persistence Persistence `yaml:"persistence"`
}

type HTTP struct {
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
	StaticDir    string        `yaml:"static-dir" env:"HTTP_STATIC_DIR"`
	ReadTimeout  time.Duration `yaml:"read-timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write-timeout" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle-timeout" env-default:"30s"`
}

type Store struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"memory"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_URL"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"game-events"`
}

// Persistence selects where a game session saves and loads its state.
type Persistence struct {
	Mode     string        `yaml:"mode" env:"PERSISTENCE_MODE" env-default:"store"`
	APIURL   string        `yaml:"api-url" env:"PERSISTENCE_API_URL" env-default:"http://localhost:3000"`
	APIKey   string        `yaml:"api-key" env:"PERSISTENCE_API_KEY" env-default:"c4game"`
	DataKey  string        `yaml:"data-key" env:"PERSISTENCE_DATA_KEY" env-default:"c4state"`
	LocalDir string        `yaml:"local-dir" env:"PERSISTENCE_LOCAL_DIR" env-default:".connect4"`
	Timeout  time.Duration `yaml:"timeout" env:"PERSISTENCE_TIMEOUT" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file, environment variables
// take precedence. A missing file falls back to the environment alone.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
