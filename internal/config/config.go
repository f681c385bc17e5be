package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"erp/internal/importer"
	"erp/internal/logger"
)

type Config struct {
	// Google Sheets Configuration
	GoogleSheetURL string

	// Sheet (tab) names of the import spreadsheet
	SalesSheet     string
	PurchasesSheet string
	ReceiptsSheet  string
	PaymentsSheet  string
	StatementSheet string

	// Date layout used for CLI flags and CSV files
	DateFormat string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		GoogleSheetURL: getEnv("GOOGLE_SHEET_URL", ""),
		SalesSheet:     getEnv("SALES_SHEET", "매출"),
		PurchasesSheet: getEnv("PURCHASES_SHEET", "매입"),
		ReceiptsSheet:  getEnv("RECEIPTS_SHEET", "입금"),
		PaymentsSheet:  getEnv("PAYMENTS_SHEET", "출금"),
		StatementSheet: getEnv("STATEMENT_SHEET", "거래원장"),
		DateFormat:     getEnv("DATE_FORMAT", "2006-01-02"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is invalid: %w", c.LogLevel, err)
	}
	if c.DateFormat == "" {
		return fmt.Errorf("DATE_FORMAT must not be empty")
	}
	return nil
}

// RequireSheets checks the settings needed by commands that talk to
// Google Sheets.
func (c *Config) RequireSheets() error {
	if c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required")
	}
	for env, name := range map[string]string{
		"SALES_SHEET":     c.SalesSheet,
		"PURCHASES_SHEET": c.PurchasesSheet,
		"RECEIPTS_SHEET":  c.ReceiptsSheet,
		"PAYMENTS_SHEET":  c.PaymentsSheet,
		"STATEMENT_SHEET": c.StatementSheet,
	} {
		if name == "" {
			return fmt.Errorf("%s must not be empty", env)
		}
	}
	return nil
}

// SheetNames returns the import sheet names
func (c *Config) SheetNames() importer.SheetNames {
	return importer.SheetNames{
		Sales:     c.SalesSheet,
		Purchases: c.PurchasesSheet,
		Receipts:  c.ReceiptsSheet,
		Payments:  c.PaymentsSheet,
	}
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
