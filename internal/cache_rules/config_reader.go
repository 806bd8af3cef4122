package cache_rules

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadCacheRulesConfig loads cache rules from a YAML file. An empty path
// selects DefaultCacheRulesConfig.
func LoadCacheRulesConfig(rulesPath string, logger *zap.Logger) (*CacheConfig, error) {
	if rulesPath == "" {
		logger.Info("No cache rules file configured, using built-in rules")
		return NewCacheConfig(DefaultCacheRulesConfig(), logger), nil
	}

	logger.Info("Loading cache rules config", zap.String("path", rulesPath))

	file, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache rules file: %w", err)
	}
	defer file.Close()

	var config CacheRulesConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML cache rules: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("cache rules validation failed: %w", err)
	}

	logger.Info("Cache rules config loaded successfully", zap.Int("methods", len(config.CacheRules)))

	return NewCacheConfig(&config, logger), nil
}

// validateConfig validates the cache rules configuration structure
func validateConfig(config *CacheRulesConfig) error {
	if len(config.ChainsTTLDefaults) == 0 {
		return fmt.Errorf("missing ttl_defaults section")
	}

	if len(config.CacheRules) == 0 {
		return fmt.Errorf("missing cache_rules section")
	}

	if _, ok := config.ChainsTTLDefaults["default"]; !ok {
		return fmt.Errorf("missing ttl_defaults.default section")
	}

	return nil
}
