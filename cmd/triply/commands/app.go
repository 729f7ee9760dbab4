package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/triply/triply-go/internal/client"
	"github.com/triply/triply-go/internal/config"
	"github.com/triply/triply-go/internal/logger"
	"github.com/triply/triply-go/internal/session"
	"github.com/triply/triply-go/internal/telemetry"
	"github.com/triply/triply-go/internal/token"
)

// App carries the wired client stack every command runs against.
type App struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Store  token.Store
	Guard  *session.Guard
	Client *client.Client

	closers []func()
}

// cliNavigator adapts the session guard's browser-shaped Navigator to a
// terminal: there is no page to be on, and a "redirect" is advice to log in
// again.
type cliNavigator struct{}

func (cliNavigator) CurrentPath() string { return "/" }

func (cliNavigator) Replace(url string) {
	fmt.Fprintln(os.Stderr, "Session expired. Run 'triply login' to sign in again.")
}

// configFilePath returns the CLI's YAML config location, overridable with
// TRIPLY_CONFIG.
func configFilePath() string {
	if path := os.Getenv("TRIPLY_CONFIG"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "triply", "config.yaml")
}

// NewApp loads configuration and wires the token store, session guard, and
// HTTP client. Call Close when done.
func NewApp() (*App, error) {
	cfg, err := config.LoadWithFile(configFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewDevelopment(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &App{Cfg: cfg, Logger: log}
	app.closers = append(app.closers, func() { _ = logger.Sync(log) })

	if cfg.OTELEnabled && cfg.OTELEndpoint != "" {
		shutdown, err := telemetry.Init(context.Background(), "triply-cli", cfg.OTELEndpoint)
		if err != nil {
			log.Warn("failed_to_initialize_tracer", zap.Error(err))
		} else {
			app.closers = append(app.closers, func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			})
		}
	}

	store, err := app.newTokenStore()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	app.Guard = session.NewGuard(store, cliNavigator{})
	app.Client = client.New(cfg.APIBase, cfg.RequestTimeout, store, app.Guard, log)
	app.Client.SetScratch(token.NewScratch(10 * time.Minute))
	return app, nil
}

// newTokenStore prefers Redis when configured, so several terminals share
// one session the way browser tabs do; otherwise the credential lives in a
// file under the user config dir.
func (a *App) newTokenStore() (token.Store, error) {
	if a.Cfg.RedisURL != "" {
		opts, err := redis.ParseURL(a.Cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		redisClient := redis.NewClient(opts)
		store, err := token.NewRedisStore(context.Background(), redisClient)
		if err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("failed to connect token store: %w", err)
		}
		a.closers = append(a.closers, func() {
			_ = store.Close()
			_ = redisClient.Close()
		})
		return store, nil
	}

	path := a.Cfg.TokenPath
	if path == "" {
		var err error
		path, err = token.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("cannot determine token path: %w", err)
		}
	}
	return token.NewFileStore(path), nil
}

// Close releases everything NewApp acquired, most recent first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
