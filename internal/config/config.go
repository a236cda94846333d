package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort string
	LogLevel   string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	S3BucketName    string
	S3Region        string
	S3PublicBaseURL string

	AdminUser     string
	AdminPassword string

	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
	ContactInbox  string

	CORSOrigins string

	Site Site
}

// Site holds presentation settings that live in the optional YAML file.
type Site struct {
	PredefinedTags  []string `yaml:"predefined_tags"`
	GalleryPageSize int      `yaml:"gallery_page_size"`
	ImportBaseURL   string   `yaml:"import_base_url"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "portfolio"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "data/portfolio.db"),

		S3BucketName:    getEnv("S3_BUCKET_NAME", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		AdminUser:     getEnv("ADMIN_USER", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Portfolio"),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		ContactInbox:  getEnv("CONTACT_INBOX", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		Site: Site{GalleryPageSize: getEnvAsInt("GALLERY_PAGE_SIZE", 9)},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadSiteFile(path); err != nil {
			return nil, err
		}
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func (c *Config) loadSiteFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if len(site.PredefinedTags) > 0 {
		c.Site.PredefinedTags = site.PredefinedTags
	}
	if site.GalleryPageSize != 0 {
		c.Site.GalleryPageSize = site.GalleryPageSize
	}
	if site.ImportBaseURL != "" {
		c.Site.ImportBaseURL = site.ImportBaseURL
	}
	if len(site.CORSOrigins) > 0 {
		c.CORSOrigins = strings.Join(site.CORSOrigins, ",")
	}
	return nil
}

func (c *Config) GetDBDriver() string {
	return c.DBDriver
}

// GetDBConnString returns the DSN for the configured driver.
func (c *Config) GetDBConnString() string {
	if c.DBDriver == "sqlite3" {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// EmailEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFromEmail != "" && c.ContactInbox != ""
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
