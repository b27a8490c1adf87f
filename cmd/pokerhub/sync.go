package main

import (
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokerhub/cmd/pokerhub/shared"
	"github.com/lox/pokerhub/internal/collector"
	"github.com/lox/pokerhub/internal/config"
	"github.com/lox/pokerhub/internal/parser"
	"github.com/lox/pokerhub/internal/storage"
)

// SyncCmd runs one pass over the hand-history directory.
type SyncCmd struct {
	Config string `kong:"default='pokerhub.hcl',help='Config file path'"`
	Dir    string `kong:"help='Hand history directory (overrides config)'"`
	DB     string `kong:"help='Database path (overrides config)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *SyncCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	col, store, _, err := buildCollector(c.Config, c.Dir, c.DB, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := shared.SetupSignalHandler(logger)
	res, err := col.Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("files: %d seen, %d processed\n", res.FilesSeen, res.FilesProcessed)
	fmt.Printf("hands: %d stored, %d duplicates, %d unparseable\n",
		res.HandsStored, res.Duplicates, res.HandsSkipped)
	if res.Failures > 0 {
		fmt.Printf("failures: %d\n", res.Failures)
	}
	return nil
}

// WatchCmd syncs on an interval until interrupted.
type WatchCmd struct {
	Config   string `kong:"default='pokerhub.hcl',help='Config file path'"`
	Dir      string `kong:"help='Hand history directory (overrides config)'"`
	DB       string `kong:"help='Database path (overrides config)'"`
	Interval int    `kong:"help='Poll interval in seconds (overrides config)'"`
	LogJSON  bool   `kong:"name='log-json',help='Log structured JSON instead of console output'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *WatchCmd) Run() error {
	logger := shared.CommandLogger(c.LogJSON, c.Debug)

	col, store, cfg, err := buildCollector(c.Config, c.Dir, c.DB, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	interval := time.Duration(cfg.Collector.PollSeconds) * time.Second
	if c.Interval > 0 {
		interval = time.Duration(c.Interval) * time.Second
	}

	logger.Info().
		Str("dir", cfg.Collector.HandHistoryDir).
		Dur("interval", interval).
		Msg("watching for hand history files")

	ctx := shared.SetupSignalHandler(logger)
	return col.Watch(ctx, interval)
}

// buildCollector wires config, storage, parser and collector together,
// applying CLI overrides on top of the config file.
func buildCollector(configPath, dirOverride, dbOverride string, logger zerolog.Logger) (*collector.Collector, *storage.Store, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if dirOverride != "" {
		cfg.Collector.HandHistoryDir = dirOverride
	}
	if dbOverride != "" {
		cfg.Storage.DatabasePath = dbOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	store, err := storage.Open(cfg.Storage.DatabasePath, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	p := parser.New(logger)
	col := collector.New(cfg.Collector.HandHistoryDir, p, store, quartz.NewReal(), logger)
	return col, store, cfg, nil
}
