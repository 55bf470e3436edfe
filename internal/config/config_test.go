package config

import (
	"os"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid upload source config",
			config: Config{
				Port:           "8082",
				GridSource:     SourceUpload,
				DateLabel:      "Ngày",
				TimeLabel:      "Giờ",
				AmountLabel:    "Thành tiền (VNĐ)",
				MaxUploadBytes: 10 << 20,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:           "abc",
				GridSource:     SourceUpload,
				DateLabel:      "a",
				TimeLabel:      "b",
				AmountLabel:    "c",
				MaxUploadBytes: 1,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:           "70000",
				GridSource:     SourceUpload,
				DateLabel:      "a",
				TimeLabel:      "b",
				AmountLabel:    "c",
				MaxUploadBytes: 1,
			},
			wantErr:     true,
			errorString: "must be between 1 and 65535",
		},
		{
			name: "invalid grid source",
			config: Config{
				Port:           "8082",
				GridSource:     "csv",
				DateLabel:      "a",
				TimeLabel:      "b",
				AmountLabel:    "c",
				MaxUploadBytes: 1,
			},
			wantErr:     true,
			errorString: "invalid grid source 'csv'",
		},
		{
			name: "missing labels",
			config: Config{
				Port:           "8082",
				GridSource:     SourceUpload,
				DateLabel:      "a",
				MaxUploadBytes: 1,
			},
			wantErr:     true,
			errorString: "labels must all be set",
		},
		{
			name: "upload size too small",
			config: Config{
				Port:           "8082",
				GridSource:     SourceUpload,
				DateLabel:      "a",
				TimeLabel:      "b",
				AmountLabel:    "c",
				MaxUploadBytes: 0,
			},
			wantErr:     true,
			errorString: "must be at least 1 byte",
		},
		{
			name: "upload size too large",
			config: Config{
				Port:           "8082",
				GridSource:     SourceUpload,
				DateLabel:      "a",
				TimeLabel:      "b",
				AmountLabel:    "c",
				MaxUploadBytes: 200 << 20,
			},
			wantErr:     true,
			errorString: "must be at most 100 MB",
		},
		{
			name: "sheets source without spreadsheet id",
			config: Config{
				Port:                     "8082",
				GridSource:               SourceSheets,
				DateLabel:                "a",
				TimeLabel:                "b",
				AmountLabel:              "c",
				MaxUploadBytes:           1,
				GoogleServiceAccountJSON: "{}",
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "sheets source without credentials",
			config: Config{
				Port:                "8082",
				GridSource:          SourceSheets,
				DateLabel:           "a",
				TimeLabel:           "b",
				AmountLabel:         "c",
				MaxUploadBytes:      1,
				GoogleSpreadsheetID: "sheet-id",
			},
			wantErr:     true,
			errorString: "GOOGLE_SERVICE_ACCOUNT_JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr && tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GRID_SOURCE", "DATE_LABEL", "TIME_LABEL", "AMOUNT_LABEL", "MAX_UPLOAD_BYTES",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("default port: got %q", cfg.Port)
	}
	if cfg.GridSource != SourceUpload {
		t.Fatalf("default source: got %q", cfg.GridSource)
	}
	if cfg.DateLabel != "Ngày" || cfg.TimeLabel != "Giờ" || cfg.AmountLabel != "Thành tiền (VNĐ)" {
		t.Fatalf("default labels: got %q %q %q", cfg.DateLabel, cfg.TimeLabel, cfg.AmountLabel)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("default max upload: got %d", cfg.MaxUploadBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATE_LABEL", "Date")
	t.Setenv("TIME_LABEL", "Time")
	t.Setenv("AMOUNT_LABEL", "Amount")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port override: got %q", cfg.Port)
	}
	labels := cfg.Labels()
	if labels.Date != "Date" || labels.Time != "Time" || labels.Amount != "Amount" {
		t.Fatalf("label overrides: got %+v", labels)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Fatalf("upload override: got %d", cfg.MaxUploadBytes)
	}
}
