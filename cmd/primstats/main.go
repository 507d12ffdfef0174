package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/primstats/internal/accumulator"
	corecfg "github.com/aevon-lab/primstats/internal/core/config"
	"github.com/aevon-lab/primstats/internal/core/storage"
	"github.com/aevon-lab/primstats/internal/core/storage/postgres"
	"github.com/aevon-lab/primstats/internal/core/summary"
	"github.com/aevon-lab/primstats/internal/migrations"
	"github.com/aevon-lab/primstats/internal/reduce"
	"github.com/aevon-lab/primstats/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	kind := flag.String("kind", "", "Summarize -input offline as this kind (byte, short, char, int, long, float, double, boolean)")
	input := flag.String("input", "-", "File of whitespace-separated values for -kind; - reads stdin")
	flag.Parse()

	// 0. Initialize Logger (stderr, so offline reports on stdout stay clean)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	opts := reduce.Options{
		Workers:      cfg.Reduce.WorkerCount,
		MinChunkSize: cfg.Reduce.MinChunkSize,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	if *kind != "" {
		if err := runOffline(ctx, summary.Kind(*kind), *input, opts, os.Stdout); err != nil {
			slog.Error("Offline summary failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, opts); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

// serve builds the configured store and runs the HTTP API until ctx ends.
func serve(ctx context.Context, cfg *corecfg.Config, opts reduce.Options) error {
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Storage
	store, health, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStore()

	// 3. Initialize Accumulator API
	accSvc := accumulator.NewService(store, opts, cfg.Server.MaxBodySizeMB)

	// 4. Initialize Server
	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, health)
	accSvc.RegisterRoutes(srv.Engine)

	// HTTP server blocks until ctx is cancelled.
	return srv.Run(ctx)
}

// openStore returns the snapshot store for cfg plus an optional health
// checker and a close function that is always safe to call.
func openStore(ctx context.Context, cfg corecfg.StorageConfig) (storage.SnapshotStore, server.HealthChecker, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Type {
	case corecfg.StorageMemory:
		slog.Warn("Using in-memory storage; accumulators are lost on restart")
		return storage.NewMemoryStore(), nil, noop, nil

	case corecfg.StorageFileSystem:
		store, err := storage.NewFileSystemStore(cfg.Path)
		if err != nil {
			return nil, nil, noop, err
		}
		slog.Info("Using filesystem storage", "path", cfg.Path)
		return store, nil, noop, nil

	case corecfg.StoragePostgres:
		db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, nil, noop, err
		}
		adapter := postgres.NewAdapter(db)

		if err := migrations.Run(adapter.DB(), cfg.AutoMigrate); err != nil {
			adapter.Close()
			return nil, nil, noop, fmt.Errorf("failed to run database migrations: %w", err)
		}
		if err := adapter.ValidateSchema(ctx); err != nil {
			adapter.Close()
			return nil, nil, noop, err
		}
		return adapter, adapter, adapter.Close, nil
	}

	return nil, nil, noop, fmt.Errorf("unsupported storage type %q", cfg.Type)
}

// runOffline summarizes the values in path (or stdin for "-") and writes the
// report as indented JSON to w.
func runOffline(ctx context.Context, kind summary.Kind, path string, opts reduce.Options, w io.Writer) error {
	in := io.Reader(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	tokens, err := readTokens(in)
	if err != nil {
		return err
	}

	acc, err := reduce.ReduceTokens(ctx, kind, tokens, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(acc.Report())
}

// readTokens splits r on whitespace.
func readTokens(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	var tokens []string
	for sc.Scan() {
		tokens = append(tokens, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return tokens, nil
}
