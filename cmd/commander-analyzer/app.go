package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/analysis"
	"github.com/ramonehamilton/commander-analyzer/internal/cardlookup"
	"github.com/ramonehamilton/commander-analyzer/internal/cards/scryfall"
	"github.com/ramonehamilton/commander-analyzer/internal/combo"
	"github.com/ramonehamilton/commander-analyzer/internal/config"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/logging"
	"github.com/ramonehamilton/commander-analyzer/internal/metrics"
	"github.com/ramonehamilton/commander-analyzer/internal/storage"
)

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	verbose    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Config file (default: ~/.commander-analyzer/config.toml)")
	fs.BoolVar(&c.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&c.verbose, "verbose", false, "Verbose logging")
}

// app holds the services shared by the commands.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	store    *storage.Service
	scryfall *scryfall.Client
	lookup   *cardlookup.Service
	combos   *combo.Service
	analyzer *analysis.Analyzer
	metrics  *metrics.Collector
}

func newApp(flags commonFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	dbConfig := storage.DefaultConfig(cfg.Database.Path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	dbConfig.Logger = log
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := storage.NewService(db)

	rateLimit, _ := cfg.GetRateLimit()
	client := scryfall.NewClientWithOptions(scryfall.Options{
		BaseURL:   cfg.Scryfall.BaseURL,
		UserAgent: cfg.Scryfall.UserAgent,
		RateLimit: rateLimit,
	})

	collector := metrics.New()
	lookup := cardlookup.NewService(store, client, cardlookup.ServiceOptions{
		FuzzyFallback: cfg.Scryfall.FuzzyFallback,
		Logger:        log,
		Metrics:       collector,
	})

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		scryfall: client,
		lookup:   lookup,
		metrics:  collector,
	}

	var combos analysis.ComboLoader
	if cfg.Combos.Enabled {
		interval, _ := cfg.GetComboRefreshInterval()
		a.combos = combo.NewService(store, combo.NewFetcher(cfg.Combos.SourceURL),
			combo.WithRefreshInterval(interval),
			combo.WithLogger(log),
		)
		combos = a.combos
	}

	builder := deck.NewBuilder(lookup, deck.WithWorkers(cfg.Build.Workers), deck.WithLogger(log))
	a.analyzer = analysis.NewAnalyzer(builder, combos, store, log).WithMetrics(collector)

	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("Error closing database")
	}
}

func (a *app) loadCombos(ctx context.Context, refresh bool) ([]combo.Combo, error) {
	if a.combos == nil {
		return nil, fmt.Errorf("combo table is disabled; set [combos] source_url or %s", config.EnvComboURL)
	}
	if refresh {
		return a.combos.Refresh(ctx)
	}
	return a.combos.Load(ctx)
}

func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
