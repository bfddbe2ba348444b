package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"budgetable/internal/config"
	"budgetable/internal/httpapi"
	"budgetable/internal/obs"
	"budgetable/internal/pocketbase"
	"budgetable/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr    string
	flagServeBackend string
	flagServeDBPath  string
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the budgetable HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagServeBackend, "backend", "", "Record store backend: pocketbase or sqlite (overrides config)")
	serveCmd.Flags().StringVar(&flagServeDBPath, "db", "", "SQLite database path for the sqlite backend")

	rootCmd.AddCommand(serveCmd)
}

// buildStore assembles the record store from config and flags.
func buildStore(cfg config.Config) (store.Store, func() error, error) {
	backend := cfg.Store.Backend
	if flagServeBackend != "" {
		backend = flagServeBackend
	}

	switch backend {
	case "", "pocketbase":
		url := config.GetPocketBaseURL(cfg)
		if url == "" {
			return nil, nil, fmt.Errorf("pocketbase backend requires a store URL (set BUDGETABLE_URL or [pocketbase].url)")
		}
		c := pocketbase.New(url, config.GetCollection(cfg), config.GetEmail(cfg), config.GetPassword(cfg))
		return c, func() error { return nil }, nil

	case "sqlite":
		path := cfg.Store.DBPath
		if flagServeDBPath != "" {
			path = flagServeDBPath
		}
		if path == "" {
			path = filepath.Join(config.Dir(), "budgetable.db")
		}
		s, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	obs.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, closeStore, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewRouter(httpapi.NewApp(st)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		obs.Logger.Info("server_listening", "addr", addr, "collection", config.GetCollection(cfg))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		obs.Logger.Info("server_shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
