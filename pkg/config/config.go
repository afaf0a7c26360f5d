package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process-level configuration for the WFS tools
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
//
// Admission tunables (thresholds, capital, lot bounds) are NOT read from the
// environment; they travel as an explicit PortfolioConfig struct per call so
// every invocation is reproducible from its recorded inputs.
type Config struct {
	Env string // development, staging, production

	// Evidence output
	EvidenceRoot string // base directory for job evidence directories

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:          getEnv("ENV", "development"),
		EvidenceRoot: getEnv("WFS_EVIDENCE_ROOT", "./evidence"),
		LogLevel:     getEnv("LOG_LEVEL", "debug"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.EvidenceRoot == "" {
		return fmt.Errorf("WFS_EVIDENCE_ROOT must not be empty")
	}
	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
