// Command commander-analyzer builds Commander decklists and reports what
// their cards do.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/analysis"
	"github.com/ramonehamilton/commander-analyzer/internal/api"
	"github.com/ramonehamilton/commander-analyzer/internal/api/handlers"
	"github.com/ramonehamilton/commander-analyzer/internal/cards/importer"
	"github.com/ramonehamilton/commander-analyzer/internal/config"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/logging"
	"github.com/ramonehamilton/commander-analyzer/internal/storage"
	"github.com/ramonehamilton/commander-analyzer/internal/version"
	"github.com/ramonehamilton/commander-analyzer/internal/watch"
)

const usage = `Usage: commander-analyzer <command> [flags] [args]

Commands:
  analyze [-r] <decklist|dir>   Build and classify a decklist (or every decklist in dir with -r)
  import [-kind oracle_cards]   Download the Scryfall bulk database into the local database
  combos [-refresh]             Load the combo table and print its size
  serve [-port 8080]            Serve the HTTP API
  watch [dir]                   Re-analyze decklists in dir whenever they change
  migrate up|down|status        Manage the database schema
  version                       Print the version

Common flags:
  -config <path>   Config file
  -v, -verbose     Debug logging
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:], os.Stdout)
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "combos":
		err = runCombos(ctx, os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "watch":
		err = runWatch(ctx, os.Args[2:], os.Stdout)
	case "migrate":
		err = runMigrate(os.Args[2:], os.Stdout)
	case "version":
		fmt.Println(version.Version)
		return
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAnalyze(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	register := fs.Bool("r", false, "Register mode: analyze every decklist in the folder")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(common)
	if err != nil {
		return err
	}
	defer a.Close()

	target := fs.Arg(0)
	if target == "" && *register {
		target = a.cfg.Build.DefaultDecksDir
	}
	if target == "" {
		return errors.New("analyze needs a decklist file or, with -r, a folder")
	}

	if !*register {
		report, err := a.analyzer.AnalyzeFile(ctx, target)
		if err != nil {
			return err
		}
		return writeJSON(out, report)
	}

	paths, err := deck.FindFiles(target)
	if err != nil {
		return err
	}

	reports := make([]*analysis.Report, 0, len(paths))
	for _, path := range paths {
		report, err := a.analyzer.AnalyzeFile(ctx, path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			a.log.WithError(err).WithField("file", path).Warn("Skipping decklist")
			continue
		}
		reports = append(reports, report)
	}

	snap := a.metrics.Snapshot()
	a.log.WithFields(logrus.Fields{
		"decks":       snap.DecksAnalyzed,
		"failed":      snap.AnalyzeErrors,
		"local_hits":  snap.LocalHits,
		"remote_hits": snap.RemoteHits,
		"build_p95":   snap.BuildLatency.P95,
	}).Info("Register complete")

	return writeJSON(out, reports)
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	kind := fs.String("kind", importer.OracleCards, "Scryfall bulk data type")
	force := fs.Bool("force", false, "Download even when a recent bulk file exists")
	dataDir := fs.String("data-dir", "", "Directory for downloaded bulk files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(common)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := importer.DefaultBulkImportOptions()
	opts.Kind = *kind
	opts.ForceDownload = *force
	if *dataDir != "" {
		opts.DataDir = *dataDir
	}
	opts.Progress = func(n int) {
		a.log.WithField("cards", n).Debug("Import progress")
	}

	stats, err := importer.NewBulkImporter(a.scryfall, a.store, opts, a.log).Import(ctx)
	if err != nil {
		return err
	}

	total, err := a.store.CountCardRecords(ctx)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"imported": stats.ImportedCards,
		"skipped":  stats.SkippedCards,
		"errors":   stats.ErrorCards,
		"stored":   total,
		"duration": stats.Duration.String(),
	}).Info("Import complete")
	return nil
}

func runCombos(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("combos", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	refresh := fs.Bool("refresh", false, "Refetch the table even if the cache is fresh")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(common)
	if err != nil {
		return err
	}
	defer a.Close()

	combos, err := a.loadCombos(ctx, *refresh)
	if err != nil {
		return err
	}
	return writeJSON(out, map[string]any{"combos": len(combos)})
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	port := fs.Int("port", 0, "API server port (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(common)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := api.DefaultConfig()
	cfg.Port = a.cfg.API.Port
	if *port > 0 {
		cfg.Port = *port
	}
	cfg.Logger = a.log

	deps := api.Dependencies{
		Analyzer: a.analyzer,
		Decks:    a.store,
		Cards:    a.lookup,
		Metrics:  a.metrics,
	}
	if a.combos != nil {
		var refresher handlers.ComboRefresher = a.combos
		deps.Combos = refresher
	}

	server := api.NewServer(cfg, deps)
	if err := server.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	shutdownCtx, cancel := shutdownContext()
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runWatch(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(common)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := fs.Arg(0)
	if dir == "" {
		dir = a.cfg.Watch.Dir
	}
	debounce, _ := a.cfg.GetWatchDebounce()

	w := watch.New(watch.Config{
		Dir:         dir,
		Debounce:    debounce,
		InitialScan: true,
		Logger:      a.log,
	}, func(ctx context.Context, path string, list *deck.Decklist) error {
		report, err := a.analyzer.Analyze(ctx, list, path)
		if err != nil {
			return err
		}
		return writeJSON(out, report)
	})

	return w.Start(ctx)
}

func runMigrate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(common.configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	mm, err := storage.NewMigrationManager(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = mm.Close() }()
	if common.verbose {
		log, err := logging.New("debug", cfg.Log.Format)
		if err != nil {
			return err
		}
		mm.SetLogger(log)
	}

	switch fs.Arg(0) {
	case "up":
		err = mm.Up()
	case "down":
		err = mm.Down()
	case "status", "version", "":
	default:
		return fmt.Errorf("unknown migrate command %q", fs.Arg(0))
	}
	if err != nil {
		return err
	}

	status, err := mm.Status()
	if err != nil {
		return err
	}
	return writeJSON(out, status)
}
