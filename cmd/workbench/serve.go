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

	"github.com/rflorenc/jenkins-workbench/internal/api"
	"github.com/rflorenc/jenkins-workbench/internal/config"
	"github.com/rflorenc/jenkins-workbench/internal/models"
	"github.com/spf13/pflag"
)

func runServe(args []string, stderr io.Writer) error {
	cfg, err := config.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	server := &api.Server{
		Instances:   models.NewInstanceStore(),
		Jobs:        models.NewJobStore(),
		Logger:      logger,
		CapturesDir: cfg.CapturesDir,
	}
	if cfg.CapturesDir == "" {
		logger.Warn("no captures directory configured, scans are disabled")
	}

	// Load pre-configured instances from config file
	for _, ic := range cfg.Instances {
		inst := &models.Instance{Name: ic.Name, URL: ic.URL, Description: ic.Description}
		if inst.Name == "" {
			inst.Name = inst.BaseURL()
		}
		if err := inst.Validate(); err != nil {
			return fmt.Errorf("instance %s: %w", inst.Name, err)
		}
		server.Instances.Create(inst)
		logger.Info("loaded instance", "name", inst.Name, "url", inst.BaseURL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("jenkins workbench starting", "version", version, "listen", cfg.Listen)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
