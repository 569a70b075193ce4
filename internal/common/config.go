// Package common holds application configuration and shared error helpers.
package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. It is loaded once in main and
// injected into components; nothing reads the environment after startup.
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Sheets   SheetsConfig
	MockMode bool
}

// ServerConfig holds HTTP server configuration. Basic auth is disabled when
// user and password are both empty.
type ServerConfig struct {
	Addr          string
	BasicAuthUser string
	BasicAuthPass string
}

// OCRConfig identifies the Document AI processor.
type OCRConfig struct {
	CredentialsJSON string // service-account key material, not a file path
	Location        string
	ProcessorID     string
	Timeout         time.Duration
}

// LLMConfig selects and configures the structuring backend.
type LLMConfig struct {
	Provider     string // "openai" (default) or "gemini"
	Model        string
	APIKey       string
	BaseURL      string
	GeminiAPIKey string
	Timeout      time.Duration
}

// SheetsConfig holds the spreadsheet-append integration settings.
type SheetsConfig struct {
	SpreadsheetID string
}

// LoadConfig loads configuration from environment variables. Mock mode
// defaults on outside production and off in production; USE_MOCK_DATA
// overrides either way.
func LoadConfig() *Config {
	appEnv := getEnv("APP_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Addr:          ":" + getEnv("PORT", "8080"),
			BasicAuthUser: getEnv("BASIC_AUTH_USER", ""),
			BasicAuthPass: getEnv("BASIC_AUTH_PASS", ""),
		},
		OCR: OCRConfig{
			CredentialsJSON: getEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""),
			Location:        getEnv("DOC_AI_LOCATION", "us"),
			ProcessorID:     getEnv("DOC_AI_PROCESSOR_ID", ""),
			Timeout:         getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
		},
		LLM: LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", "openai"),
			Model:        getEnv("OPENAI_MODEL", ""),
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", ""),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getEnv("GOOGLE_SHEETS_ID", ""),
		},
		MockMode: getEnvAsBool("USE_MOCK_DATA", appEnv != "production"),
	}
}

// Validate checks that live mode has the external services configured.
// Mock mode needs no credentials at all.
func (c *Config) Validate() error {
	if c.MockMode {
		return nil
	}
	if c.OCR.CredentialsJSON == "" {
		return NewConfigError("GOOGLE_APPLICATION_CREDENTIALS_JSON is required in live mode")
	}
	if c.OCR.ProcessorID == "" {
		return NewConfigError("DOC_AI_PROCESSOR_ID is required in live mode")
	}
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.APIKey == "" {
			return NewConfigError("OPENAI_API_KEY is required in live mode")
		}
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return NewConfigError("GEMINI_API_KEY is required in live mode")
		}
	default:
		return NewConfigError("LLM_PROVIDER must be openai or gemini")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
