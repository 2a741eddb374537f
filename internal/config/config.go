package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Payments PaymentsConfig
	Media    MediaConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// AuthConfig selects the identity providers enabled at startup.
type AuthConfig struct {
	Providers      []string
	GoogleClientID string
	FacebookAppID  string
	FacebookSecret string
}

type PaymentsConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type MediaConfig struct {
	S3Bucket  string
	S3Region  string
	URLExpiry time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("JWT_EXPIRY_HOURS", 168)
	viper.SetDefault("AUTH_PROVIDERS", []string{"local"})
	viper.SetDefault("PAYMENTS_TIMEOUT_SEC", 15)
	viper.SetDefault("MEDIA_URL_EXPIRY_MIN", 15)
	viper.SetDefault("DB_SSL_MODE", "disable")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Auth: AuthConfig{
			Providers:      viper.GetStringSlice("AUTH_PROVIDERS"),
			GoogleClientID: viper.GetString("GOOGLE_CLIENT_ID"),
			FacebookAppID:  viper.GetString("FACEBOOK_APP_ID"),
			FacebookSecret: viper.GetString("FACEBOOK_APP_SECRET"),
		},
		Payments: PaymentsConfig{
			BaseURL: viper.GetString("PAYMENTS_BASE_URL"),
			APIKey:  viper.GetString("PAYMENTS_API_KEY"),
			Timeout: time.Duration(viper.GetInt("PAYMENTS_TIMEOUT_SEC")) * time.Second,
		},
		Media: MediaConfig{
			S3Bucket:  viper.GetString("MEDIA_S3_BUCKET"),
			S3Region:  viper.GetString("MEDIA_S3_REGION"),
			URLExpiry: time.Duration(viper.GetInt("MEDIA_URL_EXPIRY_MIN")) * time.Minute,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if len(c.Auth.Providers) == 0 {
		return fmt.Errorf("at least one auth provider is required")
	}
	for _, p := range c.Auth.Providers {
		switch p {
		case "local":
		case "google":
			if c.Auth.GoogleClientID == "" {
				return fmt.Errorf("google auth requires GOOGLE_CLIENT_ID")
			}
		case "facebook":
			if c.Auth.FacebookAppID == "" || c.Auth.FacebookSecret == "" {
				return fmt.Errorf("facebook auth requires FACEBOOK_APP_ID and FACEBOOK_APP_SECRET")
			}
		default:
			return fmt.Errorf("unknown auth provider: %s", p)
		}
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetURL returns the postgres:// URL form used by the migrator
func (c *DatabaseConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password),
		c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
