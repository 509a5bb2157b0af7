package configloader

import (
	"fmt"
	"os"
	"strconv"
)

// envVarPrefix is the prefix for all mdlines environment variables.
const envVarPrefix = "MDLINES_"

// LoadFromEnv applies environment variable overrides to the
// configuration (e.g., MDLINES_WIDTH, MDLINES_THEME).
func LoadFromEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if value := os.Getenv(envVarPrefix + "WIDTH"); value != "" {
		width, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %sWIDTH: %q", envVarPrefix, value)
		}
		cfg.Width = width
	}
	if value := os.Getenv(envVarPrefix + "THEME"); value != "" {
		cfg.Theme = value
	}
	if value := os.Getenv(envVarPrefix + "COLOR"); value != "" {
		cfg.Color = value
	}
	if value := os.Getenv(envVarPrefix + "LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}
	if value := os.Getenv(envVarPrefix + "HIDE_URLS"); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sHIDE_URLS: %q (expected true/false/1/0)", envVarPrefix, value)
		}
		cfg.HideURLs = b
	}
	if value := os.Getenv(envVarPrefix + "DETECT_LANGUAGE"); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sDETECT_LANGUAGE: %q (expected true/false/1/0)", envVarPrefix, value)
		}
		cfg.DetectLanguage = b
	}
	return nil
}
