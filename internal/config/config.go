package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// FormatPolicy selects how the output encoding is chosen for each image.
type FormatPolicy string

const (
	// PolicyByExtension derives the output format from the source key's
	// file extension, falling back to JPEG when the extension is unknown.
	PolicyByExtension FormatPolicy = "by-extension"
	// PolicyForceJPEG re-encodes every image as JPEG regardless of input.
	PolicyForceJPEG FormatPolicy = "force-jpeg"
)

const (
	defaultTargetWidth  = 300
	defaultTargetHeight = 300
)

// Config holds everything the handler needs. It is loaded once at cold
// start and passed in explicitly; nothing reads the environment afterwards.
type Config struct {
	DestinationBucket string
	TableName         string
	TargetWidth       int
	TargetHeight      int
	OutputKeyPrefix   string
	FormatPolicy      FormatPolicy
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present, so local runs don't
// need to export anything; deployed Lambdas set the variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DestinationBucket: os.Getenv("DESTINATION_BUCKET"),
		TableName:         os.Getenv("TABLE_NAME"),
		OutputKeyPrefix:   os.Getenv("OUTPUT_KEY_PREFIX"),
	}
	if cfg.DestinationBucket == "" {
		return nil, fmt.Errorf("DESTINATION_BUCKET is required")
	}
	if cfg.TableName == "" {
		return nil, fmt.Errorf("TABLE_NAME is required")
	}

	var err error
	if cfg.TargetWidth, err = dimension("TARGET_WIDTH", defaultTargetWidth); err != nil {
		return nil, err
	}
	if cfg.TargetHeight, err = dimension("TARGET_HEIGHT", defaultTargetHeight); err != nil {
		return nil, err
	}

	switch policy := os.Getenv("FORMAT_POLICY"); policy {
	case "", string(PolicyByExtension):
		cfg.FormatPolicy = PolicyByExtension
	case string(PolicyForceJPEG):
		cfg.FormatPolicy = PolicyForceJPEG
	default:
		return nil, fmt.Errorf("FORMAT_POLICY must be %q or %q, got %q", PolicyByExtension, PolicyForceJPEG, policy)
	}

	return cfg, nil
}

func dimension(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return n, nil
}

// OutputKey derives the destination object key from the source key.
func (c *Config) OutputKey(sourceKey string) string {
	return c.OutputKeyPrefix + sourceKey
}
