// Package collector finds hand-history files on disk, runs them through
// the parser and lands the results in storage. It keeps a per-file
// ledger so a directory can be synced repeatedly without re-importing.
package collector

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokerhub/internal/hand"
	"github.com/lox/pokerhub/internal/parser"
	"github.com/lox/pokerhub/internal/storage"
)

// Store is the subset of storage the collector needs.
type Store interface {
	SaveHand(ctx context.Context, rec *hand.Record) (bool, error)
	ShouldProcess(ctx context.Context, path string) (bool, error)
	MarkFile(ctx context.Context, path string, status storage.FileStatus, handsCount int, errMsg string) error
}

// Collector syncs a hand-history directory into the store.
type Collector struct {
	dir    string
	parser *parser.Parser
	store  Store
	clock  quartz.Clock
	logger zerolog.Logger
}

// New creates a collector for the given directory.
func New(dir string, p *parser.Parser, store Store, clock quartz.Clock, logger zerolog.Logger) *Collector {
	return &Collector{
		dir:    dir,
		parser: p,
		store:  store,
		clock:  clock,
		logger: logger.With().Str("component", "collector").Logger(),
	}
}

// SyncResult summarizes one pass over the directory.
type SyncResult struct {
	FilesSeen      int
	FilesProcessed int
	HandsStored    int
	HandsSkipped   int
	Duplicates     int
	Failures       int
}

// Sync walks the directory once, in lexical order, and processes every
// eligible .txt file. Individual file failures are counted, not fatal.
func (c *Collector) Sync(ctx context.Context) (*SyncResult, error) {
	res := &SyncResult{}

	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		res.FilesSeen++

		eligible, err := c.store.ShouldProcess(ctx, path)
		if err != nil {
			return err
		}
		if !eligible {
			return nil
		}

		c.processFile(ctx, path, res)
		return nil
	})
	if err != nil {
		return res, err
	}

	c.logger.Info().
		Int("files_seen", res.FilesSeen).
		Int("files_processed", res.FilesProcessed).
		Int("hands_stored", res.HandsStored).
		Int("duplicates", res.Duplicates).
		Int("failures", res.Failures).
		Msg("sync complete")
	return res, nil
}

// ProcessFile imports a single file regardless of ledger state.
func (c *Collector) ProcessFile(ctx context.Context, path string) (*SyncResult, error) {
	res := &SyncResult{FilesSeen: 1}
	c.processFile(ctx, path, res)
	if res.Failures > 0 {
		return res, errors.New("collector: file failed to import")
	}
	return res, nil
}

func (c *Collector) processFile(ctx context.Context, path string, res *SyncResult) {
	res.FilesProcessed++
	log := c.logger.With().Str("path", path).Logger()

	content, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Msg("reading hand file")
		res.Failures++
		c.mark(ctx, path, storage.FileError, 0, err.Error())
		return
	}

	fileRes, err := c.parser.ParseFile(string(content))
	if err != nil {
		// Includes the every-hand-failed case; the file stays eligible
		// so a later, complete version of it gets another pass.
		log.Warn().Err(err).Msg("no hands parsed from file")
		res.Failures++
		c.mark(ctx, path, storage.FileNoHands, 0, err.Error())
		return
	}
	res.HandsSkipped += len(fileRes.Skipped)

	if len(fileRes.Hands) == 0 {
		c.mark(ctx, path, storage.FileNoHands, 0, "")
		return
	}

	stored := 0
	for _, rec := range fileRes.Hands {
		inserted, err := c.store.SaveHand(ctx, rec)
		if err != nil {
			log.Error().Err(err).Str("hand_id", rec.HandID).Msg("storing hand")
			res.Failures++
			c.mark(ctx, path, storage.FileError, stored, err.Error())
			return
		}
		if inserted {
			stored++
		} else {
			res.Duplicates++
		}
	}

	res.HandsStored += stored
	c.mark(ctx, path, storage.FileProcessed, len(fileRes.Hands), "")
	log.Debug().Int("hands", stored).Int("skipped", len(fileRes.Skipped)).Msg("file imported")
}

func (c *Collector) mark(ctx context.Context, path string, status storage.FileStatus, count int, errMsg string) {
	if err := c.store.MarkFile(ctx, path, status, count, errMsg); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("updating file ledger")
	}
}

// Watch syncs immediately and then on every tick until the context is
// cancelled. Cancellation is a clean exit.
func (c *Collector) Watch(ctx context.Context, interval time.Duration) error {
	if _, err := c.Sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error().Err(err).Msg("initial sync failed")
	}

	waiter := c.clock.TickerFunc(ctx, interval, func() error {
		if _, err := c.Sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error().Err(err).Msg("sync failed")
		}
		return nil
	}, "collector-watch")

	if err := waiter.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
