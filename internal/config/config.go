package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App        App
	Database   Database
	Redis      Redis
	JWT        JWT
	Translator Translator
	Push       Push
}

type App struct {
	Port      string `env:"PORT" env-required:"true"`
	DomainURL string `env:"DOMAIN_URL" env-default:"http://localhost:8080"`
}

type JWT struct {
	Secret string `env:"JWT_SECRET" env-required:"true"`
}

type Redis struct {
	Host string `env:"REDIS_HOST" env-required:"true"`
	Port string `env:"REDIS_PORT" env-required:"true"`
}

type Database struct {
	Host     string `env:"POSTGRES_HOST" env-required:"true"`
	Port     string `env:"POSTGRES_PORT" env-required:"true"`
	User     string `env:"POSTGRES_USER" env-required:"true"`
	DBName   string `env:"POSTGRES_DB" env-required:"true"`
	Password string `env:"POSTGRES_PASSWORD" env-required:"true"`
	SSLMode  string `env:"POSTGRES_SSLMODE" env-required:"true"`
}

type Translator struct {
	URL    string `env:"TRANSLATE_URL" env-default:"https://translation.googleapis.com/language/translate/v2"`
	APIKey string `env:"TRANSLATE_API_KEY"`
}

type Push struct {
	URL       string `env:"PUSH_URL" env-default:"https://fcm.googleapis.com/fcm/send"`
	ServerKey string `env:"PUSH_SERVER_KEY"`
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		`host=%s port=%s user=%s password=%s dbname=%s sslmode=%s`,
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment variables: %w", err)
	}
	return cfg, nil
}
