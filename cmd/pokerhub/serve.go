package main

import (
	"context"
	"net/http"
	"time"

	"github.com/lox/pokerhub/cmd/pokerhub/shared"
	"github.com/lox/pokerhub/internal/statsapi"
)

// ServeCmd runs the stats API, optionally with the collector watch loop
// alongside so a single process covers the whole pipeline.
type ServeCmd struct {
	Config  string `kong:"default='pokerhub.hcl',help='Config file path'"`
	Port    int    `kong:"help='API port (overrides config)'"`
	DB      string `kong:"help='Database path (overrides config)'"`
	Watch   bool   `kong:"help='Also watch the hand history directory'"`
	LogJSON bool   `kong:"name='log-json',help='Log structured JSON instead of console output'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.CommandLogger(c.LogJSON, c.Debug)

	col, store, cfg, err := buildCollector(c.Config, "", c.DB, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	port := cfg.API.Port
	if c.Port > 0 {
		port = c.Port
	}

	srv := statsapi.New(store, port, logger)
	ctx := shared.SetupSignalHandler(logger)

	watchDone := make(chan error, 1)
	if c.Watch {
		go func() {
			interval := time.Duration(cfg.Collector.PollSeconds) * time.Second
			watchDone <- col.Watch(ctx, interval)
		}()
	} else {
		watchDone <- nil
	}

	serveDone := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serveDone <- err
			return
		}
		serveDone <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-serveDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-watchDone; err != nil {
		return err
	}
	return <-serveDone
}
