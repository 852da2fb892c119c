package config

import (
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Host string `env:"HOST" env-default:"0.0.0.0"`
	Port string `env:"PORT" env-default:"5000"`

	// DBDriver selects the storage backend: "postgres" or "sqlite3".
	DBDriver    string `env:"DB_DRIVER" env-default:"sqlite3"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" env-default:"eduagri.db"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" env-default:"postgres"`
	DBName     string `env:"DB_NAME" env-default:"eduagri"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"168h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.JWTSecret == "" {
		result = multierror.Append(result, fmt.Errorf("JWT_SECRET environment variable is required"))
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite3" {
		result = multierror.Append(result, fmt.Errorf("DB_DRIVER must be \"postgres\" or \"sqlite3\", got %q", c.DBDriver))
	}
	if c.TokenTTL <= 0 {
		result = multierror.Append(result, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}

	return result.ErrorOrNil()
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite3" {
		return c.SQLitePath
	}

	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
