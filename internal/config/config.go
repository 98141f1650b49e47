package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port           string
	TrustedProxies []string

	// Remote Data Service
	APIBaseURL     string
	GatewayTimeout time.Duration

	// Preferences
	PrefsDBPath     string
	DefaultLanguage string
	DefaultTheme    string

	// AMQP (optional mutation events)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Google Sheets (optional export mirror)
	ExportSpreadsheetID      string
	ExportSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Confirmation dialogs
	ConfirmTTL           time.Duration
	CacheCleanupInterval time.Duration

	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8090"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),

		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000/api"),
		GatewayTimeout: getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second),

		PrefsDBPath:     getEnv("PREFS_DB_PATH", "./data/preferences.db"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		DefaultTheme:    getEnv("DEFAULT_THEME", "light"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "familyspend"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "mutations"),

		ExportSpreadsheetID:      getEnv("EXPORT_SPREADSHEET_ID", ""),
		ExportSheetName:          getEnv("EXPORT_SHEET_NAME", "Export"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		ConfirmTTL:           getEnvDuration("CONFIRM_TTL", 2*time.Minute),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Addr is the listen address of the local surface.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// EventsEnabled reports whether mutation events are published.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// ExportMirrorEnabled reports whether CSV exports are mirrored to a spreadsheet.
func (c *Config) ExportMirrorEnabled() bool {
	return c.ExportSpreadsheetID != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errors = append(errors, fmt.Sprintf("invalid trusted proxy '%s': must be a CIDR", cidr))
		}
	}

	// Validate Remote Data Service URL
	if c.APIBaseURL == "" {
		errors = append(errors, "API base URL cannot be empty")
	} else if parsedURL, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	}

	if c.GatewayTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid gateway timeout %v: must be at least 100ms", c.GatewayTimeout))
	} else if c.GatewayTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid gateway timeout %v: must be at most 5 minutes", c.GatewayTimeout))
	}

	// Validate preference store
	if c.PrefsDBPath == "" {
		errors = append(errors, "preferences database path cannot be empty")
	} else {
		dir := filepath.Dir(c.PrefsDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create preferences database directory '%s': %v", dir, err))
				}
			}
		}
	}

	validLanguages := []string{"en", "te"}
	if !contains(validLanguages, c.DefaultLanguage) {
		errors = append(errors, fmt.Sprintf("invalid default language '%s': must be one of %v", c.DefaultLanguage, validLanguages))
	}
	validThemes := []string{"light", "dark"}
	if !contains(validThemes, c.DefaultTheme) {
		errors = append(errors, fmt.Sprintf("invalid default theme '%s': must be one of %v", c.DefaultTheme, validThemes))
	}

	// Validate AMQP configuration if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets mirror if enabled
	if c.ExportSpreadsheetID != "" {
		if c.ExportSheetName == "" {
			errors = append(errors, "export sheet name is required when EXPORT_SPREADSHEET_ID is set")
		}
		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for the export mirror")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.ConfirmTTL < 5*time.Second {
		errors = append(errors, fmt.Sprintf("invalid confirm TTL %v: must be at least 5 seconds", c.ConfirmTTL))
	} else if c.ConfirmTTL > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid confirm TTL %v: must be at most 1 hour", c.ConfirmTTL))
	}
	if c.CacheCleanupInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at least 1 second", c.CacheCleanupInterval))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
