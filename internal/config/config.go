package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Media providers
const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
	MediaProviderLocal      = "local"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string   `yaml:"port" env:"SERVER_PORT"`
		Mode            string   `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string   `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		AllowedOrigins  []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		MaxUploadSizeMB int      `yaml:"max_upload_size_mb" env:"SERVER_MAX_UPLOAD_SIZE_MB"`
	} `yaml:"server"`

	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER"`
	} `yaml:"storage"`

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
		MigrationsPath  string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH"`
		AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
	} `yaml:"redis"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Media struct {
		Provider string `yaml:"provider" env:"MEDIA_PROVIDER"`
		Folder   string `yaml:"folder" env:"MEDIA_FOLDER"`
	} `yaml:"media"`

	Cloudinary struct {
		CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
		APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
		APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
		BaseURL   string `yaml:"base_url" env:"CLOUDINARY_BASE_URL"`
	} `yaml:"cloudinary"`

	S3 struct {
		Region          string `yaml:"region" env:"S3_REGION"`
		Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
		Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
		AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
		PublicBaseURL   string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
		UsePathStyle    bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE"`
	} `yaml:"s3"`

	LocalStorage struct {
		Path    string `yaml:"path" env:"LOCAL_STORAGE_PATH"`
		BaseURL string `yaml:"base_url" env:"LOCAL_STORAGE_BASE_URL"`
	} `yaml:"local_storage"`

	Twilio struct {
		AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
		AuthToken  string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
		FromNumber string `yaml:"from_number" env:"TWILIO_PHONE_NUMBER"`
	} `yaml:"twilio"`

	Inference struct {
		URL     string `yaml:"url" env:"INFERENCE_URL"`
		Token   string `yaml:"token" env:"INFERENCE_TOKEN"`
		Timeout string `yaml:"timeout" env:"INFERENCE_TIMEOUT"`
	} `yaml:"inference"`

	Admin struct {
		Username    string `yaml:"username" env:"ADMIN_USERNAME"`
		Password    string `yaml:"password" env:"ADMIN_PASSWORD"`
		FullName    string `yaml:"full_name" env:"ADMIN_FULL_NAME"`
		PhoneNumber string `yaml:"phone_number" env:"ADMIN_PHONE_NUMBER"`
	} `yaml:"admin"`

	RateLimit struct {
		Enabled           bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		RequestsPerMinute int  `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE"`
		Burst             int  `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	Jobs struct {
		PurgeCodesSchedule string `yaml:"purge_codes_schedule" env:"JOBS_PURGE_CODES_SCHEDULE"`
	} `yaml:"jobs"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in increasing order of precedence
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
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

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"
	config.Server.ShutdownTimeout = "10s"
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	config.Server.MaxUploadSizeMB = 10

	config.Storage.Driver = StorageDriverPostgres

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "kindergarten"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsPath = "migrations"
	config.Database.AutoMigrate = true

	config.Redis.Addr = "localhost:6379"
	config.Redis.Prefix = "kindergarten:"

	config.JWT.AccessTokenExpiration = "8h"
	config.JWT.Issuer = "kindergarten-admin"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Media.Provider = MediaProviderCloudinary
	config.Media.Folder = "kindergarten"
	config.Cloudinary.BaseURL = "https://api.cloudinary.com"

	config.LocalStorage.Path = "uploads"
	config.LocalStorage.BaseURL = "/uploads"

	config.Inference.Timeout = "30s"

	config.Admin.Username = "admin"
	config.Admin.FullName = "Administrator"

	config.RateLimit.Enabled = true
	config.RateLimit.RequestsPerMinute = 300
	config.RateLimit.Burst = 50

	config.Jobs.PurgeCodesSchedule = "@every 5m"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config), "")
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case StorageDriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	switch config.Media.Provider {
	case MediaProviderCloudinary:
		if config.Cloudinary.CloudName == "" || config.Cloudinary.APIKey == "" || config.Cloudinary.APISecret == "" {
			return fmt.Errorf("cloudinary cloud name, api key and api secret are required")
		}
	case MediaProviderS3:
		if config.S3.Bucket == "" || config.S3.Region == "" {
			return fmt.Errorf("s3 bucket and region are required")
		}
	case MediaProviderLocal:
		if config.LocalStorage.Path == "" {
			return fmt.Errorf("local storage path is required")
		}
	default:
		return fmt.Errorf("unknown media provider %q", config.Media.Provider)
	}

	if config.RateLimit.Enabled && config.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}

	for _, d := range []string{config.Server.ReadTimeout, config.Server.WriteTimeout, config.Server.ShutdownTimeout, config.Inference.Timeout} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid duration %q: %w", d, err)
		}
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

// TwilioEnabled reports whether SMS credentials are configured
func (c *Config) TwilioEnabled() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != "" && c.Twilio.FromNumber != ""
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// Duration parses value, falling back to def when it is empty or malformed
func Duration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
