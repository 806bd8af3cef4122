package main

import (
	"context"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/cache"
	"go-reactpad-cache/internal/cache/l1"
	"go-reactpad-cache/internal/cache/l2"
	"go-reactpad-cache/internal/cache/multi"
	"go-reactpad-cache/internal/cache/noop"
	"go-reactpad-cache/internal/cache/service"
	"go-reactpad-cache/internal/cache_rules"
	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/config"
	"go-reactpad-cache/internal/hooks"
	"go-reactpad-cache/internal/httpserver"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metadata"
	"go-reactpad-cache/internal/persist"
	"go-reactpad-cache/internal/reader"
	"go-reactpad-cache/internal/session"
	"go-reactpad-cache/internal/store"
	"go-reactpad-cache/internal/txaction"
)

// CompositionRoot holds all application dependencies and wires them in one place
type CompositionRoot struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock

	// Chain access
	Registry  *chain.Registry
	ABIs      *chain.ABIs
	RPCClient *rpc.Client
	EthClient *ethclient.Client

	// Contract call cache
	CacheRules  interfaces.CacheRulesClassifier
	L1Cache     interfaces.Cache
	L2Cache     interfaces.Cache
	KeyDBClient *l2.RedisKeyDbClient
	KeyBuilder  interfaces.KeyBuilder
	CallCache   *multi.MultiCache

	// Services
	CacheService *service.CacheService
	Store        *store.Store
	Persister    interfaces.Persister
	Syncer       *persist.Syncer
	Reader       *reader.Reader
	Hooks        *hooks.Hooks
	Session      *session.Watcher
	Builder      *txaction.Builder
	Actions      *txaction.Manager
	HTTPServer   *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger and configuration
// 2. Chain registry, ABIs and the RPC connection
// 3. Call cache (rules, L1, L2) in front of the RPC connection
// 4. Store with its persistence
// 5. Reader, hooks, session watcher and write actions
// 6. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clock.New()}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := root.initChain(); err != nil {
		return nil, fmt.Errorf("failed to initialize chain access: %w", err)
	}
	if err := root.loadCacheRules(); err != nil {
		return nil, fmt.Errorf("failed to load cache rules: %w", err)
	}
	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}
	if err := root.initStore(); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	configPath := envOr("REACTPAD_CONFIG_FILE", "/app/reactpad_config.yaml")

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

// initChain loads the registry and ABIs and dials the chain's RPC endpoint
func (r *CompositionRoot) initChain() error {
	registryPath := r.Config.Chain.RegistryFile
	if registryPath == "" {
		registryPath = envOr("REACTPAD_REGISTRY_FILE", "/app/chains.yaml")
	}
	registry, err := chain.LoadRegistry(registryPath, r.Logger)
	if err != nil {
		return err
	}
	r.Registry = registry

	abis, err := chain.LoadABIs()
	if err != nil {
		return err
	}
	r.ABIs = abis

	active, err := registry.Chain(r.Config.Chain.ChainID)
	if err != nil {
		return err
	}
	rpcURL := envOr("REACTPAD_RPC_URL", r.Config.Chain.RPCURL)
	if rpcURL == "" {
		rpcURL = active.RPCURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.Config.GetCallTimeout())
	defer cancel()
	client, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	r.RPCClient = client
	r.EthClient = ethclient.NewClient(client)

	r.Logger.Info("Connected to chain",
		zap.Uint64("chain_id", active.ID),
		zap.String("name", active.Name))
	return nil
}

// loadCacheRules loads cache rules configuration
func (r *CompositionRoot) loadCacheRules() error {
	rulesPath := envOr("REACTPAD_CACHE_RULES_FILE", r.Config.RPCCache.RulesFile)

	cacheRules, err := cache_rules.LoadCacheRulesConfig(rulesPath, r.Logger)
	if err != nil {
		return err
	}
	r.CacheRules = cache_rules.NewClassifier(r.Logger, cacheRules)
	r.Logger.Debug("Call cache rules", zap.Strings("methods", cacheRules.GetAllMethods()))
	return nil
}

// initCacheComponents initializes the contract call cache layers
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}
	r.initL2Cache()

	r.KeyBuilder = cache.NewKeyBuilder()
	r.CallCache = multi.NewMultiCache(
		[]interfaces.Cache{r.L1Cache, r.L2Cache},
		r.Logger,
		r.Config.MultiCache.EnablePropagation,
	)
	r.Logger.Info("Call cache initialized",
		zap.Bool("enabled", r.Config.RPCCache.Enabled),
		zap.Int("layers", r.CallCache.GetCacheCount()))
	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if r.Config.BigCache.Enabled {
		l1Cache, err := l1.NewBigCache(&r.Config.BigCache, r.Logger)
		if err != nil {
			return err
		}
		r.L1Cache = l1Cache
		r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.BigCache.Size))
	} else {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
	}
	return nil
}

// initL2Cache initializes the L2 cache (KeyDB). The client is shared with the
// keydb persistence backend.
func (r *CompositionRoot) initL2Cache() {
	r.L2Cache = noop.NewNoOpCache()
	if !r.Config.KeyDB.Enabled {
		r.Logger.Info("KeyDB (L2) disabled")
		return
	}

	keydbURL := GetKeyDBURL(r.Logger)
	keydbClient, err := l2.NewRedisKeyDbClient(&r.Config.KeyDB, keydbURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache",
			zap.String("keydb_url", keydbURL),
			zap.Error(err))
		return
	}
	r.KeyDBClient = keydbClient
	r.L2Cache = l2.NewKeyDBCache(&r.Config.KeyDB, keydbClient, r.Logger)
	r.Logger.Info("KeyDB (L2) initialized", zap.String("keydb_url", keydbURL))
}

// initStore creates the store and restores the persisted snapshot
func (r *CompositionRoot) initStore() error {
	r.Store = store.New(r.Clock, r.Config.GetMaxAge(), r.Logger)

	var persister interfaces.Persister
	switch r.Config.Persistence.Backend {
	case config.BackendNone:
		r.Logger.Info("Store persistence disabled")
		return nil
	case config.BackendKeyDB:
		if r.KeyDBClient != nil {
			persister = persist.NewKeyDBPersister(r.KeyDBClient, r.Config.Persistence.StorageKey,
				r.Config.GetPersistTTL(), r.Config.KeyDB.GetReadTimeout(), r.Config.KeyDB.GetSendTimeout())
			break
		}
		r.Logger.Warn("KeyDB unavailable, persisting store to file instead")
		fallthrough
	default:
		if err := os.MkdirAll(r.Config.Persistence.Dir, 0o700); err != nil {
			return fmt.Errorf("failed to create persistence dir: %w", err)
		}
		persister = persist.NewFilePersister(persist.FilePath(r.Config.Persistence.Dir, r.Config.Persistence.StorageKey))
	}

	r.Persister = persister
	r.Syncer = persist.NewSyncer(r.Store, persister, r.Config.Chain.ChainID, r.Config.GetPersistDebounce(), r.Clock, r.Logger)
	if err := r.Syncer.Restore(context.Background()); err != nil {
		r.Logger.Warn("Failed to restore store snapshot", zap.Error(err))
	}
	return nil
}

// initServices wires the read and write paths
func (r *CompositionRoot) initServices() {
	chainID := r.Config.Chain.ChainID

	var caller interfaces.ContractCaller = r.EthClient
	if r.Config.RPCCache.Enabled {
		r.CacheService = service.NewCacheService(r.EthClient, r.CallCache, r.KeyBuilder, r.CacheRules,
			r.ABIs, chainID, r.Logger)
		caller = r.CacheService
	}
	r.Reader = reader.New(caller, r.Registry, r.ABIs, chainID, r.Logger)
	r.Reader.SetMaxMarkets(r.Config.Chain.MaxMarkets)

	var metadataSource interfaces.MetadataSource
	if r.Config.Metadata.URL != "" {
		metadataSource = metadata.NewClient(r.Config.Metadata.URL, r.Config.Metadata.APIKey,
			r.Config.GetMetadataTimeout(), r.Logger)
	}
	r.Hooks = hooks.New(r.Store, r.Reader, metadataSource, r.Config.GetCallTimeout(), r.Logger)

	r.Builder = txaction.NewBuilder(r.ABIs, r.Registry, chainID)
	r.Actions = txaction.NewManager(txaction.NewRPCBackend(r.RPCClient), r.Hooks, r.ABIs, txaction.Options{
		Clock:          r.Clock,
		PollInterval:   r.Config.GetReceiptPollInterval(),
		ReceiptTimeout: r.Config.GetReceiptTimeout(),
		Retention:      r.Config.GetActionRetention(),
	}, r.Logger)

	bound := []session.ChainBound{r.Reader, r.Builder}
	if r.CacheService != nil {
		bound = append(bound, r.CacheService)
	}
	if r.Syncer != nil {
		bound = append(bound, r.Syncer)
	}
	r.Session = session.NewWatcher(r.EthClient, r.Store, chainID, r.Config.GetPollInterval(),
		r.Config.GetCallTimeout(), r.Clock, r.Logger, bound...)
	r.Session.OnChainSwitch(func(previous, current uint64) {
		if bc, ok := r.L1Cache.(*l1.BigCache); ok {
			if err := bc.Reset(); err != nil {
				r.Logger.Warn("Failed to reset L1 cache", zap.Error(err))
			}
		}
	})
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(r.Store, r.Hooks, r.Session, r.CacheService, r.Builder, r.Actions, r.Logger)
}

// Start launches the background loops
func (r *CompositionRoot) Start() {
	if r.Syncer != nil {
		r.Syncer.Start(context.Background())
	}
	r.Session.Start()
}

// Stop ends the background loops and writes the final snapshot
func (r *CompositionRoot) Stop(ctx context.Context) {
	r.Session.Stop()
	r.Actions.Close()
	r.Hooks.Close()
	if r.Syncer != nil {
		r.Syncer.Stop()
		if err := r.Syncer.Flush(ctx); err != nil {
			r.Logger.Error("Failed to flush store snapshot", zap.Error(err))
		}
		if err := r.Persister.Close(); err != nil {
			r.Logger.Warn("Failed to close persister", zap.Error(err))
		}
	}
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errors []error

	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errors = append(errors, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	if l1BigCache, ok := r.L1Cache.(*l1.BigCache); ok {
		if err := l1BigCache.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}

	if r.KeyDBClient != nil {
		if err := r.KeyDBClient.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close KeyDB client: %w", err))
		}
	}

	if r.RPCClient != nil {
		r.RPCClient.Close()
	}

	// Return first error if any
	if len(errors) > 0 {
		return errors[0]
	}
	return nil
}

// GetSocketPath returns the Unix socket path for the server
func (r *CompositionRoot) GetSocketPath() string {
	return envOr("REACTPAD_SOCKET_PATH", "/tmp/reactpad-cache.sock")
}
