package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"doanhso/internal/core"
)

// Grid source backends.
const (
	SourceUpload = "upload"
	SourceSheets = "sheets"
)

type Config struct {
	// HTTP Server
	Port string

	// Grid source selection
	GridSource string

	// Header labels of the sales export
	DateLabel   string
	TimeLabel   string
	AmountLabel string

	// Upload limits
	MaxUploadBytes int64

	// Google Sheets (used when GridSource == "sheets")
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

func Load() *Config {
	cfg := &Config{
		Port:       getEnv("PORT", "8082"),
		GridSource: getEnv("GRID_SOURCE", SourceUpload),

		DateLabel:   getEnv("DATE_LABEL", core.DefaultLabels.Date),
		TimeLabel:   getEnv("TIME_LABEL", core.DefaultLabels.Time),
		AmountLabel: getEnv("AMOUNT_LABEL", core.DefaultLabels.Amount),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
	}

	return cfg
}

// Labels returns the configured header labels as a core value.
func (c *Config) Labels() core.Labels {
	return core.Labels{
		Date:   c.DateLabel,
		Time:   c.TimeLabel,
		Amount: c.AmountLabel,
	}
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

	// Validate grid source
	validSources := []string{SourceUpload, SourceSheets}
	isValidSource := false
	for _, source := range validSources {
		if c.GridSource == source {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid grid source '%s': must be one of %v", c.GridSource, validSources))
	}

	// Validate header labels
	if err := c.Labels().Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate upload limits
	if c.MaxUploadBytes < 1 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1 byte", c.MaxUploadBytes))
	} else if c.MaxUploadBytes > 100<<20 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at most 100 MB", c.MaxUploadBytes))
	}

	// Validate Google Sheets configuration if the sheets source is selected
	if c.GridSource == SourceSheets {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}

		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != ""
		if !hasJSON && !hasFile && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS must be provided for sheets source")
		}

		// Check if credentials file exists (if specified)
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
