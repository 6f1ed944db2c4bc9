package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"go-rpc-cache/internal/cache/l1"
	"go-rpc-cache/internal/cache/l2"
	"go-rpc-cache/internal/cache/multi"
	"go-rpc-cache/internal/cache/noop"
	"go-rpc-cache/internal/cache/service"
	"go-rpc-cache/internal/cache_rules"
	"go-rpc-cache/internal/config"
	"go-rpc-cache/internal/httpserver"
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/services/users"
)

// CompositionRoot holds all application dependencies and provides a centralized
// place for dependency injection and service initialization.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Cache components
	L1Cache    interfaces.Cache
	L2Cache    interfaces.Cache
	MultiCache *multi.MultiCache

	// Services
	CacheService *service.CacheService
	UserService  *users.Service
	HTTPServer   *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration (defines how components should be configured)
// 3. Cache components (L1, L2, multi-level composite)
// 4. Services (readthrough engine, RPC services with their declared policies)
// 5. Cache rules (override declared policies)
// 6. HTTP Server (uses all above components)
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	if err := root.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := root.loadCacheRules(); err != nil {
		_ = root.Cleanup()
		return nil, fmt.Errorf("failed to load cache rules: %w", err)
	}

	if err := root.initHTTPServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	if r.Logger != nil {
		return nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration, falling back to defaults when
// the file does not exist
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("CACHE_CONFIG_FILE")
	if configPath == "" {
		configPath = "/app/cache_config.yaml"
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if errors.Is(err, fs.ErrNotExist) {
		r.Logger.Warn("Configuration file not found, using defaults", zap.String("path", configPath))
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// loadCacheRules applies the rules file on top of the policies declared in code.
// A missing rules file is not an error.
func (r *CompositionRoot) loadCacheRules() error {
	rulesPath := os.Getenv("CACHE_RULES_FILE")
	if rulesPath == "" {
		rulesPath = "/app/cache_rules.yaml"
	}

	if _, err := os.Stat(rulesPath); errors.Is(err, fs.ErrNotExist) {
		r.Logger.Info("No cache rules file, keeping declared policies", zap.String("path", rulesPath))
		return nil
	}

	rules, err := cache_rules.LoadPolicyRules(rulesPath, r.Logger)
	if err != nil {
		return err
	}

	return rules.Apply(r.UserService.Binding())
}

// initCacheComponents initializes all cache-related components
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}

	if err := r.initL2Cache(); err != nil {
		return fmt.Errorf("failed to initialize L2 cache: %w", err)
	}

	r.MultiCache = multi.NewMultiCache(
		[]interfaces.Cache{r.L1Cache, r.L2Cache},
		r.Logger,
		r.Config.MultiCache.EnablePropagation,
	)
	r.Logger.Info("Multi-level cache initialized",
		zap.Int("levels", r.MultiCache.GetCacheCount()),
		zap.Bool("propagation", r.Config.MultiCache.EnablePropagation))

	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if r.Config.L1.Enabled {
		l1Cache, err := l1.NewBigCache(r.Config, r.Logger)
		if err != nil {
			return err
		}
		r.L1Cache = l1Cache
		r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.L1.Size))
	} else {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
	}
	return nil
}

// initL2Cache initializes the L2 cache (KeyDB)
func (r *CompositionRoot) initL2Cache() error {
	if r.Config.L2.Enabled {
		keydbURL := GetKeyDBURL(r.Logger)

		keydbClient, err := l2.NewRedisKeyDbClient(r.Config, keydbURL, r.Logger)
		if err != nil {
			r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache",
				zap.String("keydb_url", keydbURL),
				zap.Error(err))
			r.L2Cache = noop.NewNoOpCache()
			return nil
		}

		r.L2Cache = l2.NewKeyDBCache(r.Config, keydbClient, r.Logger)
		r.Logger.Info("KeyDB (L2) initialized", zap.String("keydb_url", keydbURL))
	} else {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("KeyDB (L2) disabled")
	}
	return nil
}

// initServices initializes the readthrough engine and the RPC services using it
func (r *CompositionRoot) initServices() error {
	r.CacheService = service.NewCacheService(r.MultiCache, r.Config, r.Logger)

	r.UserService = users.NewService(
		users.NewRegistry(r.Logger),
		users.NewMemoryStore(),
		r.CacheService,
		r.Logger,
	)

	return nil
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() error {
	r.HTTPServer = httpserver.NewServer(r.Logger, r.UserService)
	return nil
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.L1Cache != nil {
		if l1BigCache, ok := r.L1Cache.(*l1.BigCache); ok {
			if err := l1BigCache.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
			}
		}
	}

	if r.L2Cache != nil {
		if l2KeyDBCache, ok := r.L2Cache.(*l2.KeyDBCache); ok {
			if err := l2KeyDBCache.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
			}
		}
	}

	// Sync logger last so close errors above are flushed
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}

	return errors.Join(errs...)
}

// GetSocketPath returns the Unix socket path for the server
func (r *CompositionRoot) GetSocketPath() string {
	socketPath := os.Getenv("CACHE_SOCKET_PATH")
	if socketPath == "" {
		socketPath = "/tmp/cache.sock"
	}
	return socketPath
}
