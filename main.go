package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bwwq/fate-roulette/api"
	"github.com/bwwq/fate-roulette/auth"
	"github.com/bwwq/fate-roulette/config"
	"github.com/bwwq/fate-roulette/console"
	"github.com/bwwq/fate-roulette/lobby"
	"github.com/bwwq/fate-roulette/loghandler"
	"github.com/bwwq/fate-roulette/spirit"
	"github.com/bwwq/fate-roulette/storage"
	"github.com/bwwq/fate-roulette/ws"
)

func main() {
	cli := flag.Bool("cli", false, "play in the terminal instead of serving WebSocket clients")
	flag.Parse()

	envErr := godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, cfg.SlogLevel())))
	if envErr != nil {
		slog.Debug("no .env file found; using environment variables", "tag", "main")
	}

	registry := spirit.NewRegistry()
	spirit.RegisterAll(registry)
	if missing := registry.Missing(); len(missing) > 0 {
		slog.Warn("spirits without an effect", "tag", "main", "spirits", fmt.Sprint(missing))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, cfg)
	if store != nil {
		defer store.Close()
	}
	l := lobby.New(cfg, registry, store)

	if *cli {
		if err := console.New(l, registry, os.Stdin, os.Stdout).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("console stopped", "tag", "main", "err", err)
			os.Exit(1)
		}
		return
	}
	serve(ctx, cfg, l, store)
}

// openStore picks Postgres when DATABASE_URL is set and the local SQLite
// file otherwise. It returns nil when neither can be opened.
func openStore(ctx context.Context, cfg *config.Config) storage.StatsStore {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database; stats will not be persisted", "tag", "main", "err", err)
			return nil
		}
		slog.Info("storage: postgres", "tag", "main")
		return pg
	}
	if cfg.SQLitePath == "" {
		slog.Info("storage: disabled", "tag", "main")
		return nil
	}
	db, err := storage.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open sqlite; stats will not be persisted", "tag", "main", "path", cfg.SQLitePath, "err", err)
		return nil
	}
	slog.Info("storage: sqlite", "tag", "main", "path", cfg.SQLitePath)
	return db
}

func serve(ctx context.Context, cfg *config.Config, l *lobby.Lobby, store storage.StatsStore) {
	validator := auth.NewValidator(cfg.AuthBaseURL)
	var authenticate ws.Authenticator
	if validator == nil {
		slog.Info("auth: AUTH_BASE_URL is not set; clients play as the local profile", "tag", "main")
	} else {
		authenticate = validator.Identify
		slog.Info("auth: configured", "tag", "main", "baseURL", cfg.AuthBaseURL)
	}

	hub := ws.NewHub(cfg, l, authenticate)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	api.NewHandler(store, validator).Routes(mux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WSPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "tag", "main", "err", err)
		}
	}()

	slog.Info("Fate Roulette server listening", "tag", "main", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "tag", "main", "err", err)
		os.Exit(1)
	}
}
