package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	FatSecret FatSecretConfig
	DeepSeek  DeepSeekConfig
	S3        S3Settings
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN builds the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds JWT configuration
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// FatSecretConfig holds the food database API credentials
type FatSecretConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	TokenURL     string `mapstructure:"token_url"`
	APIURL       string `mapstructure:"api_url"`
	RateLimit    int    `mapstructure:"rate_limit"`
}

// DeepSeekConfig holds the AI chat API configuration
type DeepSeekConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	APIURL   string        `mapstructure:"api_url"`
	Model    string        `mapstructure:"model"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// S3Settings holds object storage configuration for recipe images
type S3Settings struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/runmacros/")

	v.SetEnvPrefix("RUNMACROS")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "runmacros")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("fatsecret.token_url", "https://oauth.fatsecret.com/connect/token")
	v.SetDefault("fatsecret.api_url", "https://platform.fatsecret.com/rest/server.api")
	v.SetDefault("fatsecret.rate_limit", 5)

	v.SetDefault("deepseek.api_url", "https://api.deepseek.com/chat/completions")
	v.SetDefault("deepseek.model", "deepseek-chat")
	v.SetDefault("deepseek.cache_ttl", "1h")

	v.SetDefault("s3.bucket", "runmacros-recipe-images")
	v.SetDefault("s3.region", "us-east-1")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set RUNMACROS_AUTH_JWT_SECRET)")
	}

	if config.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token TTL must be positive, got: %s", config.Auth.TokenTTL)
	}

	return nil
}
