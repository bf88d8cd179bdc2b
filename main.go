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

	"github.com/nconklindev/zempic/internal/config"
	"github.com/nconklindev/zempic/internal/logging"
	"github.com/nconklindev/zempic/internal/slimmer"
	"github.com/nconklindev/zempic/internal/ui"
	"github.com/nconklindev/zempic/internal/web"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("zempic %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
			os.Exit(0)
		case "serve":
			os.Exit(serve())
		default:
			fmt.Fprintf(os.Stderr, "usage: zempic [serve | --version]\n")
			os.Exit(2)
		}
	}

	os.Exit(runTUI())
}

func runTUI() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	// The TUI owns stdout, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}

	logger, closeLogs := logging.New(cfg.Logging, logOut)
	defer closeLogs()

	// Validated by config.Load
	format, _ := slimmer.ParseFormat(cfg.Export.DefaultFormat)

	p := tea.NewProgram(ui.InitialModel(ui.Options{
		ExportDir:     cfg.Export.Dir,
		DefaultName:   cfg.Export.DefaultName,
		DefaultFormat: format,
		PreviewRows:   cfg.Export.PreviewRows,
		Logger:        logger,
	}), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}

func serve() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	closeLogs := logging.Setup(cfg.Logging, os.Stdout)
	defer closeLogs()

	slog.Info("configuration loaded", "config", cfg.String())

	server := web.NewServer(cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return 1
	}

	slog.Info("server stopped")
	return 0
}
