package l2

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/config"
	"go-reactpad-cache/internal/interfaces"
)

// Ensure RedisKeyDbClient implements interfaces.KeyDbClient
var _ interfaces.KeyDbClient = (*RedisKeyDbClient)(nil)

// RedisKeyDbClient wraps redis.Client to implement KeyDbClient interface
type RedisKeyDbClient struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisKeyDbClient connects to keydbURL and verifies the connection
func NewRedisKeyDbClient(keydbCfg *config.KeyDBConfig, keydbURL string, logger *zap.Logger) (*RedisKeyDbClient, error) {
	opts, err := redisOptions(keydbCfg, keydbURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), keydbCfg.GetConnectTimeout())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to KeyDB at %s: %w", opts.Addr, err)
	}

	logger.Info("Connected to KeyDB",
		zap.String("address", opts.Addr),
		zap.Duration("connect_timeout", keydbCfg.GetConnectTimeout()),
		zap.Int("pool_size", keydbCfg.Keepalive.PoolSize))

	return &RedisKeyDbClient{
		client: client,
		logger: logger,
	}, nil
}

func redisOptions(keydbCfg *config.KeyDBConfig, keydbURL string) (*redis.Options, error) {
	parsedURL, err := url.Parse(keydbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse KeyDB URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		return nil, fmt.Errorf("KeyDB URL %q has no host", keydbURL)
	}
	port := parsedURL.Port()
	if port == "" {
		port = "6379"
	}

	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		DialTimeout:  keydbCfg.GetConnectTimeout(),
		ReadTimeout:  keydbCfg.GetReadTimeout(),
		WriteTimeout: keydbCfg.GetSendTimeout(),
		PoolSize:     keydbCfg.Keepalive.PoolSize,
		IdleTimeout:  keydbCfg.GetMaxIdleTimeout(),
	}

	if parsedURL.User != nil {
		if password, ok := parsedURL.User.Password(); ok {
			opts.Password = password
		}
	}

	if len(parsedURL.Path) > 1 {
		if db, err := strconv.Atoi(parsedURL.Path[1:]); err == nil {
			opts.DB = db
		}
	}

	return opts, nil
}

// Get retrieves a value by key
func (r *RedisKeyDbClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

// Set stores a value with expiration
func (r *RedisKeyDbClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

// Del deletes one or more keys
func (r *RedisKeyDbClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}

// Ping tests connectivity
func (r *RedisKeyDbClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

// Close closes the client connection
func (r *RedisKeyDbClient) Close() error {
	return r.client.Close()
}
