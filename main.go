package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/a-h/textsync/config"
	"github.com/a-h/textsync/lsp"
	"github.com/a-h/textsync/registry"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

func main() {
	configPath := flag.String("config", "textsync.toml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	lf, err := os.Create(cfg.LogFile)
	if err != nil {
		slog.Error("failed to create log output file", slog.Any("error", err))
		os.Exit(1)
	}
	defer lf.Close()
	log := slog.New(slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: level})).
		With(slog.String("session", uuid.NewString()))

	documents := registry.New(
		registry.WithLogger(log),
		registry.WithAtomicChanges(cfg.AtomicChanges),
	)

	m := lsp.NewMux(log, os.Stdin, os.Stdout)
	m.SetConcurrencyLimit(cfg.ConcurrencyLimit)
	newServer(log, documents, m.Notify).register(m)

	if err := m.Process(); err != nil {
		log.Error("processing stopped", slog.Any("error", err))
	}
}
