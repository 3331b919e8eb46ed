package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Redis holds the verification code store settings
	Redis RedisConfig `yaml:"redis"`

	// Mail holds SMTP settings
	Mail MailConfig `yaml:"mail"`

	// Media upload settings
	Media MediaConfig `yaml:"media"`

	// Auth settings
	Auth AuthConfig `yaml:"auth"`

	// Reminder holds the daily activity reminder settings
	Reminder ReminderConfig `yaml:"reminder"`

	// RateLimit applies to public write endpoints
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigin   string        `yaml:"allowed_origin"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Name         string        `yaml:"name"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

// RedisConfig holds the redis connection settings. An empty Addr selects
// the in-memory code store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MailConfig holds SMTP settings
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SiteName string `yaml:"site_name"`
}

// Enabled reports whether outgoing mail is configured
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.User != ""
}

// MediaConfig holds media storage settings
type MediaConfig struct {
	ImageDir      string `yaml:"image_dir"`
	MarkdownDir   string `yaml:"markdown_dir"`
	MaxUploadSize int64  `yaml:"max_upload_size"` // in bytes
	CacheSize     int    `yaml:"cache_size"`
}

// AuthConfig holds verification code settings
type AuthConfig struct {
	CodeTTL time.Duration `yaml:"code_ttl"`
}

// ReminderConfig holds the daily activity reminder settings
type ReminderConfig struct {
	Schedule   string `yaml:"schedule"`
	AdminEmail string `yaml:"admin_email"`
	PublicURL  string `yaml:"public_url"`
	SubmitKey  string `yaml:"submit_key"`
}

// RateLimitConfig holds per-client token bucket settings
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "pretty"
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigin:   "*",
			MigrationsPath:  "./migrations",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "blog",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
		},
		Mail: MailConfig{
			Port:     465,
			SiteName: "Personal Blog",
		},
		Media: MediaConfig{
			ImageDir:      "./data/images",
			MarkdownDir:   "./data/markdown",
			MaxUploadSize: 20 * 1024 * 1024, // 20MB
			CacheSize:     512,
		},
		Auth: AuthConfig{
			CodeTTL: 300 * time.Second,
		},
		Reminder: ReminderConfig{
			Schedule:  "0 21 * * *",
			PublicURL: "http://localhost:8080",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, an optional .env file, an optional
// YAML file named by CONFIG_FILE, and finally environment variables
func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.AllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", c.Server.AllowedOrigin)
	c.Server.MigrationsPath = getEnv("MIGRATIONS_PATH", c.Server.MigrationsPath)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.MaxLifetime = getDurationEnv("DB_MAX_LIFETIME", c.Database.MaxLifetime)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getIntEnv("REDIS_DB", c.Redis.DB)

	c.Mail.Host = getEnv("MAIL_HOST", c.Mail.Host)
	c.Mail.Port = getIntEnv("MAIL_PORT", c.Mail.Port)
	c.Mail.User = getEnv("MAIL_USER", c.Mail.User)
	c.Mail.Password = getEnv("MAIL_PASS", c.Mail.Password)
	c.Mail.SiteName = getEnv("SITE_NAME", c.Mail.SiteName)

	c.Media.ImageDir = getEnv("IMAGE_STORAGE_PATH", c.Media.ImageDir)
	c.Media.MarkdownDir = getEnv("MD_STORAGE_PATH", c.Media.MarkdownDir)
	c.Media.MaxUploadSize = getInt64Env("MAX_UPLOAD_SIZE", c.Media.MaxUploadSize)
	c.Media.CacheSize = getIntEnv("MEDIA_CACHE_SIZE", c.Media.CacheSize)

	c.Auth.CodeTTL = getDurationEnv("VERIFY_CODE_TTL", c.Auth.CodeTTL)

	c.Reminder.Schedule = getEnv("REMINDER_SCHEDULE", c.Reminder.Schedule)
	c.Reminder.AdminEmail = getEnv("REMINDER_ADMIN_EMAIL", c.Reminder.AdminEmail)
	c.Reminder.PublicURL = getEnv("PUBLIC_URL", c.Reminder.PublicURL)
	c.Reminder.SubmitKey = getEnv("REMINDER_SUBMIT_KEY", c.Reminder.SubmitKey)

	c.RateLimit.RequestsPerMinute = getIntEnv("RATE_LIMIT_PER_MINUTE", c.RateLimit.RequestsPerMinute)
	c.RateLimit.Burst = getIntEnv("RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Media.ImageDir == "" || c.Media.MarkdownDir == "" {
		return fmt.Errorf("IMAGE_STORAGE_PATH and MD_STORAGE_PATH are required")
	}
	if c.Media.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	if c.Auth.CodeTTL <= 0 {
		return fmt.Errorf("VERIFY_CODE_TTL must be positive")
	}
	if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
