package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Auth providers
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"PORT"`
		Mode        string   `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Auth struct {
		Provider string `yaml:"provider" env:"AUTH_PROVIDER"`
		// FirebaseServiceKey is the base64 encoded service account JSON.
		FirebaseServiceKey string `yaml:"firebase_service_key" env:"FB_SERVICE_KEY"`
		JWTSecret          string `yaml:"jwt_secret" env:"JWT_SECRET"`
		JWTIssuer          string `yaml:"jwt_issuer" env:"JWT_ISSUER"`
		JWTExpiration      string `yaml:"jwt_expiration" env:"JWT_EXPIRATION"`
	} `yaml:"auth"`

	Payment struct {
		StripeSecretKey string `yaml:"stripe_secret_key" env:"PAYMENT_SK_KEY"`
		Currency        string `yaml:"currency" env:"PAYMENT_CURRENCY"`
	} `yaml:"payment"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		AdminEmail string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminName  string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file and environment
// variables, in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"*"}

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "mentorium"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Auth.Provider = AuthProviderFirebase
	config.Auth.JWTIssuer = "mentorium.app"
	config.Auth.JWTExpiration = "24h"

	config.Payment.Currency = "usd"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Seed.AdminName = "Mentorium Admin"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime: %w", err)
	}

	config.Auth.Provider = strings.ToLower(strings.TrimSpace(config.Auth.Provider))
	switch config.Auth.Provider {
	case AuthProviderFirebase:
		if config.Auth.FirebaseServiceKey == "" {
			return fmt.Errorf("firebase service key (FB_SERVICE_KEY) is required for the firebase auth provider")
		}
	case AuthProviderJWT:
		if config.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT secret is required for the jwt auth provider")
		}
		if _, err := time.ParseDuration(config.Auth.JWTExpiration); err != nil {
			return fmt.Errorf("invalid JWT expiration format: %w", err)
		}
	default:
		return fmt.Errorf("unknown auth provider %q", config.Auth.Provider)
	}

	if config.Payment.StripeSecretKey == "" {
		return fmt.Errorf("stripe secret key (PAYMENT_SK_KEY) is required")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
