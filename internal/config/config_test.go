package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DESTINATION_BUCKET", "dst")
	t.Setenv("TABLE_NAME", "image-metadata")
	t.Setenv("TARGET_WIDTH", "")
	t.Setenv("TARGET_HEIGHT", "")
	t.Setenv("OUTPUT_KEY_PREFIX", "")
	t.Setenv("FORMAT_POLICY", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DestinationBucket != "dst" {
		t.Errorf("DestinationBucket = %q, want dst", cfg.DestinationBucket)
	}
	if cfg.TableName != "image-metadata" {
		t.Errorf("TableName = %q, want image-metadata", cfg.TableName)
	}
	if cfg.TargetWidth != 300 || cfg.TargetHeight != 300 {
		t.Errorf("target = %dx%d, want 300x300", cfg.TargetWidth, cfg.TargetHeight)
	}
	if cfg.FormatPolicy != PolicyByExtension {
		t.Errorf("FormatPolicy = %q, want %q", cfg.FormatPolicy, PolicyByExtension)
	}
	if cfg.OutputKeyPrefix != "" {
		t.Errorf("OutputKeyPrefix = %q, want empty", cfg.OutputKeyPrefix)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "missing destination bucket", unset: "DESTINATION_BUCKET"},
		{name: "missing table name", unset: "TABLE_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			if _, err := Load(); err == nil {
				t.Fatalf("Load succeeded without %s", tt.unset)
			} else if !strings.Contains(err.Error(), tt.unset) {
				t.Errorf("error %q does not name %s", err, tt.unset)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TARGET_WIDTH", "800")
	t.Setenv("TARGET_HEIGHT", "800")
	t.Setenv("OUTPUT_KEY_PREFIX", "processed-")
	t.Setenv("FORMAT_POLICY", "force-jpeg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TargetWidth != 800 || cfg.TargetHeight != 800 {
		t.Errorf("target = %dx%d, want 800x800", cfg.TargetWidth, cfg.TargetHeight)
	}
	if cfg.FormatPolicy != PolicyForceJPEG {
		t.Errorf("FormatPolicy = %q, want %q", cfg.FormatPolicy, PolicyForceJPEG)
	}
	if got := cfg.OutputKey("photo.png"); got != "processed-photo.png" {
		t.Errorf("OutputKey = %q, want processed-photo.png", got)
	}
}

func TestLoadBadDimensions(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "abc"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("TARGET_WIDTH", tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load accepted TARGET_WIDTH=%q", tt.value)
			}
		})
	}
}

func TestLoadBadPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("FORMAT_POLICY", "webp-only")

	if _, err := Load(); err == nil {
		t.Error("Load accepted unknown FORMAT_POLICY")
	}
}

func TestOutputKeyIdentity(t *testing.T) {
	cfg := &Config{}
	if got := cfg.OutputKey("uploads/photo.png"); got != "uploads/photo.png" {
		t.Errorf("OutputKey = %q, want identity", got)
	}
}
