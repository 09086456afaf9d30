package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/amolina-dev/lectio/internal/cache"
	"github.com/amolina-dev/lectio/internal/config"
	"github.com/amolina-dev/lectio/internal/connectivity"
	"github.com/amolina-dev/lectio/internal/progress"
	"github.com/amolina-dev/lectio/internal/provider"
	"github.com/amolina-dev/lectio/internal/retention"
	"github.com/amolina-dev/lectio/internal/store"
	"github.com/amolina-dev/lectio/internal/syncer"
)

func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}

// core bundles the wired cache/sync subsystem for the CLI commands.
type core struct {
	cfg       *config.Config
	store     *store.Store // nil when local storage could not be opened
	client    *provider.Client
	prober    *connectivity.Prober
	fetcher   *provider.Fetcher
	cache     *cache.Service
	scheduler *syncer.Scheduler
}

func buildCore(cfg *config.Config) (*core, error) {
	corrections, err := config.LoadCorrections(cfg.Provider.CorrectionsFile)
	if err != nil {
		return nil, fmt.Errorf("config.LoadCorrections > %w", err)
	}

	// A store that fails to open degrades the session to network-only
	// operation instead of failing the command.
	cacheStore, err := store.Open(cfg.Cache.Directory)
	if err != nil {
		slog.Default().Warn("local cache unavailable, running network-only", "directory", cfg.Cache.Directory, "error", err)
		cacheStore = nil
	}

	client := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.RetryAttempts)
	prober := connectivity.New(cfg.Provider.BaseURL)
	fetcher := provider.NewFetcher(client, cfg.Languages, corrections)
	cacheService := cache.NewService(cacheStore, fetcher, prober)

	deps := syncer.Deps{
		Cache:   cacheService,
		Fetcher: fetcher,
		Prober:  prober,
	}
	if cacheStore != nil {
		deps.Meta = cacheStore
		progressReader := progress.NewReader(cacheStore.DB())
		deps.Sweeper = retention.NewSweeper(
			cacheStore,
			progressReader,
			cfg.Paths.Active,
			time.Duration(cfg.Cache.MaxAgeDays)*24*time.Hour,
			cfg.Sync.RetentionDays,
		)
	}
	scheduler := syncer.New(syncer.Config{
		Paths:         cfg.Paths.Active,
		Interval:      time.Duration(cfg.Sync.IntervalMinutes) * time.Minute,
		LookAheadDays: cfg.Sync.LookAheadDays,
		WarmDays:      cfg.Sync.WarmDays,
	}, deps)

	return &core{
		cfg:       cfg,
		store:     cacheStore,
		client:    client,
		prober:    prober,
		fetcher:   fetcher,
		cache:     cacheService,
		scheduler: scheduler,
	}, nil
}

func (c *core) Close() {
	if c.store != nil {
		_ = c.store.Close()
	}
	_ = c.client.Close()
	_ = c.prober.Close()
}
