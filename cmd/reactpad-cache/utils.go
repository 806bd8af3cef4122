package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// GetKeyDBURL returns KeyDB URL with the following priority:
// 1. KEYDB_URL environment variable
// 2. REACTPAD_KEYDB_URL_FILE file content
// 3. Default value
func GetKeyDBURL(logger *zap.Logger) string {
	if keydbURL := os.Getenv("KEYDB_URL"); keydbURL != "" {
		logger.Debug("Using KeyDB URL from environment variable")
		return keydbURL
	}

	connectionFile := os.Getenv("REACTPAD_KEYDB_URL_FILE")
	if connectionFile == "" {
		connectionFile = "/app/.keydb-url"
	}

	if content, err := os.ReadFile(connectionFile); err == nil {
		keydbURL := strings.TrimSpace(string(content))
		if len(keydbURL) > 0 {
			logger.Debug("Using KeyDB URL from connection file", zap.String("file", connectionFile))
			return keydbURL
		}
	} else {
		logger.Debug("KeyDB connection file not found or empty", zap.String("file", connectionFile))
	}

	logger.Debug("Using default KeyDB URL")
	return "redis://keydb:6379"
}

// envOr returns the environment variable or fallback when unset
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
