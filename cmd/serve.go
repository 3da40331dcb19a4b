package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/tacit/internal/corpus"
	"github.com/abhisek/tacit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference sentence service",
	Long: "Serve random annotated sentences from a SQLite corpus. With --data, the\n" +
		"corpus is replaced by the rows of a CSV file with sentence and cct_labels columns.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("data", "", "CSV file to import before serving")
	serveCmd.Flags().String("db", "", "Path to SQLite corpus (overrides TACIT_DB)")
	serveCmd.Flags().String("addr", "", "Listen address host:port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	dbPath, err := resolveDBPath(cmd, cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	store, err := corpus.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dataFile, _ := cmd.Flags().GetString("data")
	if dataFile == "" {
		dataFile = cfg.Server.DataFile
	}
	if dataFile != "" {
		rows, err := corpus.ParseCSVFile(dataFile)
		if err != nil {
			return err
		}
		if err := store.Replace(ctx, rows); err != nil {
			return fmt.Errorf("import %s: %w", dataFile, err)
		}
		logger.Info().Str("file", dataFile).Int("rows", len(rows)).Msg("corpus imported")
	}

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count sentences: %w", err)
	}
	if count == 0 {
		logger.Warn().Str("database", dbPath).Msg("corpus is empty; /get-sentence will fail until data is imported")
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr()
	}
	srv := server.New(store, server.Options{
		Addr:           addr,
		RateLimit:      cfg.Server.RateLimit,
		AllowedOrigins: cfg.Server.CORS,
		Logger:         logger,
	})

	server.PrintBanner(cmd.OutOrStdout(), server.BannerInfo{
		Version:   version,
		Addr:      addr,
		Database:  dbPath,
		Sentences: count,
	}, logger)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// resolveDBPath returns the database path using --db (highest priority),
// then the config file, then TACIT_DB or the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, corpus.EnsureDir(p)
	}
	if configured != "" {
		return configured, corpus.EnsureDir(configured)
	}
	return corpus.DefaultDBPath()
}
