package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/pokerhub/cmd/pokerhub/shared"
	"github.com/lox/pokerhub/internal/config"
	"github.com/lox/pokerhub/internal/notes"
	"github.com/lox/pokerhub/internal/storage"
)

// NotesCmd groups the notes import/export subcommands.
type NotesCmd struct {
	Import NotesImportCmd `cmd:"" help:"Import a notes XML file into the database"`
	Export NotesExportCmd `cmd:"" help:"Export stored notes to a notes XML file"`
}

// NotesImportCmd imports the client's notes.<user>.xml into the store.
type NotesImportCmd struct {
	Path   string `kong:"arg,required,help='Notes XML file to import'"`
	Config string `kong:"default='pokerhub.hcl',help='Config file path'"`
	DB     string `kong:"help='Database path (overrides config)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *NotesImportCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	svc, store, err := buildNotesService(c.Config, c.DB, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := shared.SetupSignalHandler(logger)
	n, err := svc.Import(ctx, c.Path)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d notes from %s\n", n, c.Path)
	return nil
}

// NotesExportCmd writes stored notes back out in the client's format.
type NotesExportCmd struct {
	Path   string `kong:"arg,required,help='Destination notes XML file'"`
	Config string `kong:"default='pokerhub.hcl',help='Config file path'"`
	DB     string `kong:"help='Database path (overrides config)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *NotesExportCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	svc, store, err := buildNotesService(c.Config, c.DB, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := shared.SetupSignalHandler(logger)
	if err := svc.Export(ctx, c.Path); err != nil {
		return err
	}
	fmt.Printf("exported notes to %s\n", c.Path)
	return nil
}

func buildNotesService(configPath, dbOverride string, logger zerolog.Logger) (*notes.Service, *storage.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if dbOverride != "" {
		cfg.Storage.DatabasePath = dbOverride
	}

	store, err := storage.Open(cfg.Storage.DatabasePath, logger)
	if err != nil {
		return nil, nil, err
	}
	return notes.NewService(store, logger), store, nil
}
