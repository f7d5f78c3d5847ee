package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Email    EmailConfig
	Flipkart FlipkartConfig
	Shopify  ShopifyConfig
	Ingest   IngestConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for settlement file storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds invoice notification delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// FlipkartConfig holds Flipkart marketplace API credentials.
type FlipkartConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ShopifyConfig holds Shopify storefront API credentials.
type ShopifyConfig struct {
	ShopDomain  string `mapstructure:"shop_domain"`
	AccessToken string `mapstructure:"access_token"`
	APIVersion  string `mapstructure:"api_version"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// IngestConfig holds settlement ingestion settings.
type IngestConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// Load reads configuration from environment variables with the BILLING_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billing")
	v.SetDefault("db.password", "billing_secret")
	v.SetDefault("db.name", "billing_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "billing-settlements")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@example.com")
	v.SetDefault("email.from_name", "Billing")

	// Flipkart defaults
	v.SetDefault("flipkart.base_url", "https://api.flipkart.net")
	v.SetDefault("flipkart.client_id", "")
	v.SetDefault("flipkart.client_secret", "")
	v.SetDefault("flipkart.timeout_secs", 30)

	// Shopify defaults
	v.SetDefault("shopify.shop_domain", "")
	v.SetDefault("shopify.access_token", "")
	v.SetDefault("shopify.api_version", "2024-07")
	v.SetDefault("shopify.timeout_secs", 30)

	// Ingest defaults
	v.SetDefault("ingest.max_rows", 50000)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "BILLING_SERVER_PORT",
		"server.read_timeout":   "BILLING_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "BILLING_SERVER_WRITE_TIMEOUT",
		"server.environment":    "BILLING_SERVER_ENVIRONMENT",
		"db.host":               "BILLING_DB_HOST",
		"db.port":               "BILLING_DB_PORT",
		"db.user":               "BILLING_DB_USER",
		"db.password":           "BILLING_DB_PASSWORD",
		"db.name":               "BILLING_DB_NAME",
		"db.sslmode":            "BILLING_DB_SSLMODE",
		"db.max_open":           "BILLING_DB_MAX_OPEN",
		"db.max_idle":           "BILLING_DB_MAX_IDLE",
		"s3.region":             "BILLING_S3_REGION",
		"s3.bucket":             "BILLING_S3_BUCKET",
		"s3.endpoint":           "BILLING_S3_ENDPOINT",
		"s3.access_key":         "BILLING_S3_ACCESS_KEY",
		"s3.secret_key":         "BILLING_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "BILLING_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":     "BILLING_S3_PRESIGN_EXPIRY",
		"log.level":             "BILLING_LOG_LEVEL",
		"log.format":            "BILLING_LOG_FORMAT",
		"cors.allowed_origins":  "BILLING_CORS_ALLOWED_ORIGINS",
		"email.provider":        "BILLING_EMAIL_PROVIDER",
		"email.region":          "BILLING_EMAIL_REGION",
		"email.from_address":    "BILLING_EMAIL_FROM_ADDRESS",
		"email.from_name":       "BILLING_EMAIL_FROM_NAME",
		"flipkart.base_url":     "BILLING_FLIPKART_BASE_URL",
		"flipkart.client_id":    "BILLING_FLIPKART_CLIENT_ID",
		"flipkart.client_secret": "BILLING_FLIPKART_CLIENT_SECRET",
		"flipkart.timeout_secs": "BILLING_FLIPKART_TIMEOUT_SECS",
		"shopify.shop_domain":   "BILLING_SHOPIFY_SHOP_DOMAIN",
		"shopify.access_token":  "BILLING_SHOPIFY_ACCESS_TOKEN",
		"shopify.api_version":   "BILLING_SHOPIFY_API_VERSION",
		"shopify.timeout_secs":  "BILLING_SHOPIFY_TIMEOUT_SECS",
		"ingest.max_rows":       "BILLING_INGEST_MAX_ROWS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLING_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLING_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Flipkart = FlipkartConfig{
		BaseURL:      v.GetString("flipkart.base_url"),
		ClientID:     v.GetString("flipkart.client_id"),
		ClientSecret: v.GetString("flipkart.client_secret"),
		TimeoutSecs:  v.GetInt("flipkart.timeout_secs"),
	}
	cfg.Shopify = ShopifyConfig{
		ShopDomain:  v.GetString("shopify.shop_domain"),
		AccessToken: v.GetString("shopify.access_token"),
		APIVersion:  v.GetString("shopify.api_version"),
		TimeoutSecs: v.GetInt("shopify.timeout_secs"),
	}
	cfg.Ingest = IngestConfig{
		MaxRows: v.GetInt("ingest.max_rows"),
	}

	return cfg, nil
}
