package config

import (
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	QC     QCConfig
	Upload UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// QCConfig holds the validation policy knobs.
type QCConfig struct {
	Tolerance  string `mapstructure:"tolerance"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ToleranceDecimal parses the reconciliation tolerance, falling back to the
// stock 0.05 when the configured value is not a decimal literal.
func (q *QCConfig) ToleranceDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(q.Tolerance)
	if err != nil {
		return decimal.RequireFromString("0.05")
	}
	return d
}

// UploadConfig holds limits for the extract-and-validate upload endpoint.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the INVQC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVQC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// QC policy defaults
	v.SetDefault("qc.tolerance", "0.05")
	v.SetDefault("qc.max_age_days", 365)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "INVQC_SERVER_PORT",
		"server.read_timeout":     "INVQC_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "INVQC_SERVER_WRITE_TIMEOUT",
		"server.environment":      "INVQC_SERVER_ENVIRONMENT",
		"log.level":               "INVQC_LOG_LEVEL",
		"log.format":              "INVQC_LOG_FORMAT",
		"cors.allowed_origins":    "INVQC_CORS_ALLOWED_ORIGINS",
		"qc.tolerance":            "INVQC_QC_TOLERANCE",
		"qc.max_age_days":         "INVQC_QC_MAX_AGE_DAYS",
		"upload.max_file_size_mb": "INVQC_UPLOAD_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVQC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVQC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.QC = QCConfig{
		Tolerance:  v.GetString("qc.tolerance"),
		MaxAgeDays: v.GetInt("qc.max_age_days"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	return cfg, nil
}
