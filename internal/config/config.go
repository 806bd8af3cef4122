package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Persistence backends
const (
	BackendFile  = "file"
	BackendKeyDB = "keydb"
	BackendNone  = "none"
)

// Config represents the main configuration structure
type Config struct {
	BigCache    BigCacheConfig    `yaml:"bigcache"`
	KeyDB       KeyDBConfig       `yaml:"keydb"`
	MultiCache  MultiCacheConfig  `yaml:"multi_cache"`
	RPCCache    RPCCacheConfig    `yaml:"rpc_cache"`
	Store       StoreConfig       `yaml:"store"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Chain       ChainConfig       `yaml:"chain"`
	Session     SessionConfig     `yaml:"session"`
	Metadata    MetadataConfig    `yaml:"metadata"`
	Tx          TxConfig          `yaml:"tx"`
}

// BigCacheConfig configures the in-process contract call cache
type BigCacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"` // MB
}

// KeyDBConfig configures the shared KeyDB instance used by the call cache
// and the keydb persistence backend
type KeyDBConfig struct {
	Enabled    bool             `yaml:"enabled"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
}

// ConnectionConfig holds KeyDB timeouts in milliseconds
type ConnectionConfig struct {
	ConnectTimeout int `yaml:"connect_timeout"`
	SendTimeout    int `yaml:"send_timeout"`
	ReadTimeout    int `yaml:"read_timeout"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int `yaml:"pool_size"`
	MaxIdleTimeout int `yaml:"max_idle_timeout"` // ms
}

// MultiCacheConfig controls L2 -> L1 propagation on hits
type MultiCacheConfig struct {
	EnablePropagation bool `yaml:"enable_propagation"`
}

// RPCCacheConfig toggles caching of eth_call responses
type RPCCacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// StoreConfig configures the chain state store
type StoreConfig struct {
	MaxAge int `yaml:"max_age"` // seconds
}

// PersistenceConfig selects where the store snapshot is kept
type PersistenceConfig struct {
	Backend    string `yaml:"backend"`
	Dir        string `yaml:"dir"`
	StorageKey string `yaml:"storage_key"`
	Debounce   int    `yaml:"debounce"` // ms
	TTL        int    `yaml:"ttl"`      // seconds, keydb only, 0 keeps forever
}

// ChainConfig selects the active chain and the contract registry
type ChainConfig struct {
	ChainID      uint64 `yaml:"chain_id"`
	RegistryFile string `yaml:"registry_file"`
	RPCURL       string `yaml:"rpc_url"`      // overrides the registry endpoint
	CallTimeout  int    `yaml:"call_timeout"` // ms
	MaxMarkets   int    `yaml:"max_markets"`  // AMM pairs enumerated per refresh
}

// SessionConfig configures chain ID polling
type SessionConfig struct {
	PollInterval int `yaml:"poll_interval"` // ms
}

// MetadataConfig configures the off-chain presale metadata source
type MetadataConfig struct {
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // ms
}

// TxConfig configures transaction receipt polling and status retention
type TxConfig struct {
	ReceiptPollInterval int `yaml:"receipt_poll_interval"` // ms
	ReceiptTimeout      int `yaml:"receipt_timeout"`       // seconds
	ActionRetention     int `yaml:"action_retention"`      // seconds
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.BigCache.Size == 0 {
		c.BigCache.Size = 100
	}

	if c.KeyDB.Connection.ConnectTimeout == 0 {
		c.KeyDB.Connection.ConnectTimeout = 1000
	}
	if c.KeyDB.Connection.SendTimeout == 0 {
		c.KeyDB.Connection.SendTimeout = 1000
	}
	if c.KeyDB.Connection.ReadTimeout == 0 {
		c.KeyDB.Connection.ReadTimeout = 1000
	}
	if c.KeyDB.Keepalive.PoolSize == 0 {
		c.KeyDB.Keepalive.PoolSize = 10
	}
	if c.KeyDB.Keepalive.MaxIdleTimeout == 0 {
		c.KeyDB.Keepalive.MaxIdleTimeout = 10000
	}

	if c.Store.MaxAge == 0 {
		c.Store.MaxAge = 300
	}

	if c.Persistence.Backend == "" {
		c.Persistence.Backend = BackendFile
	}
	if c.Persistence.Dir == "" {
		c.Persistence.Dir = "/app/data"
	}
	if c.Persistence.StorageKey == "" {
		c.Persistence.StorageKey = "reactpad-cache"
	}
	if c.Persistence.Debounce == 0 {
		c.Persistence.Debounce = 500
	}

	if c.Chain.CallTimeout == 0 {
		c.Chain.CallTimeout = 10000
	}

	if c.Session.PollInterval == 0 {
		c.Session.PollInterval = 4000
	}

	if c.Metadata.Timeout == 0 {
		c.Metadata.Timeout = 5000
	}

	if c.Tx.ReceiptPollInterval == 0 {
		c.Tx.ReceiptPollInterval = 1000
	}
	if c.Tx.ReceiptTimeout == 0 {
		c.Tx.ReceiptTimeout = 300
	}
	if c.Tx.ActionRetention == 0 {
		c.Tx.ActionRetention = 600
	}
}

func (c *Config) validate() error {
	switch c.Persistence.Backend {
	case BackendFile, BackendKeyDB, BackendNone:
	default:
		return fmt.Errorf("unknown persistence backend %q", c.Persistence.Backend)
	}
	if c.Persistence.Backend == BackendKeyDB && !c.KeyDB.Enabled {
		return fmt.Errorf("persistence backend %q requires keydb.enabled", BackendKeyDB)
	}
	return nil
}

// GetConnectTimeout returns the KeyDB connect timeout
func (c *KeyDBConfig) GetConnectTimeout() time.Duration {
	return time.Duration(c.Connection.ConnectTimeout) * time.Millisecond
}

// GetSendTimeout returns the KeyDB write timeout
func (c *KeyDBConfig) GetSendTimeout() time.Duration {
	return time.Duration(c.Connection.SendTimeout) * time.Millisecond
}

// GetReadTimeout returns the KeyDB read timeout
func (c *KeyDBConfig) GetReadTimeout() time.Duration {
	return time.Duration(c.Connection.ReadTimeout) * time.Millisecond
}

// GetMaxIdleTimeout returns how long idle KeyDB connections are kept
func (c *KeyDBConfig) GetMaxIdleTimeout() time.Duration {
	return time.Duration(c.Keepalive.MaxIdleTimeout) * time.Millisecond
}

func (c *Config) GetMaxAge() time.Duration {
	return time.Duration(c.Store.MaxAge) * time.Second
}

func (c *Config) GetPersistDebounce() time.Duration {
	return time.Duration(c.Persistence.Debounce) * time.Millisecond
}

func (c *Config) GetPersistTTL() time.Duration {
	return time.Duration(c.Persistence.TTL) * time.Second
}

func (c *Config) GetCallTimeout() time.Duration {
	return time.Duration(c.Chain.CallTimeout) * time.Millisecond
}

func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Session.PollInterval) * time.Millisecond
}

func (c *Config) GetMetadataTimeout() time.Duration {
	return time.Duration(c.Metadata.Timeout) * time.Millisecond
}

func (c *Config) GetReceiptPollInterval() time.Duration {
	return time.Duration(c.Tx.ReceiptPollInterval) * time.Millisecond
}

func (c *Config) GetReceiptTimeout() time.Duration {
	return time.Duration(c.Tx.ReceiptTimeout) * time.Second
}

func (c *Config) GetActionRetention() time.Duration {
	return time.Duration(c.Tx.ActionRetention) * time.Second
}
