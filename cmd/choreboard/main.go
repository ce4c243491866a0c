package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umputun/go-flags"

	"github.com/dukerupert/choreboard/internal/config"
	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/logging"
	"github.com/dukerupert/choreboard/internal/server"
)

func main() {
	opts, err := config.Load(".env", os.Args[1:])
	if err != nil {
		os.Exit(reportConfigError(err, os.Stderr))
	}

	logger := logging.Setup(opts.LogLevel, logging.Output(logging.FileConfig{
		Path:       opts.LogFile.Path,
		MaxSizeMB:  opts.LogFile.MaxSizeMB,
		MaxBackups: opts.LogFile.MaxBackups,
		MaxAgeDays: opts.LogFile.MaxAgeDays,
		Compress:   opts.LogFile.Compress,
	}))

	db, err := database.Open(opts.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", opts.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv, err := server.New(db, server.Config{
		AdminPasswordHash: opts.AdminPasswordHash,
		BoardRate:         opts.BoardRate,
	}, logger)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	if opts.AdminPasswordHash != "" {
		slog.Info("admin routes enabled")
	}

	httpServer := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("choreboard starting", "addr", ":"+opts.Port, "db", opts.DBPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// reportConfigError prints err unless go-flags already did and returns the
// exit code: 0 for --help, 2 otherwise.
func reportConfigError(err error, stderr io.Writer) int {
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) {
		if flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}
	fmt.Fprintf(stderr, "config: %v\n", err)
	return 2
}
