// Package notes imports and exports player notes in the XML format the
// poker client reads and writes (notes.<user>.xml). Notes round-trip
// through the database so they can be edited from either side.
package notes

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/pokerhub/internal/fileutil"
	"github.com/lox/pokerhub/internal/storage"
)

// Store is the subset of storage the notes service needs.
type Store interface {
	SaveNote(ctx context.Context, n storage.Note) error
	SaveLabel(ctx context.Context, l storage.NoteLabel) error
	Notes(ctx context.Context) ([]storage.Note, error)
	Labels(ctx context.Context) ([]storage.NoteLabel, error)
}

// Service moves notes between XML files and the store.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService creates a notes service.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "notes").Logger(),
	}
}

// The client's file schema. The update attribute is a Unix timestamp;
// label "-1" means unlabeled and is normalized to empty.
type xmlNotes struct {
	XMLName xml.Name   `xml:"notes"`
	Version string     `xml:"version,attr"`
	Labels  []xmlLabel `xml:"labels>label"`
	Notes   []xmlNote  `xml:"note"`
}

type xmlLabel struct {
	ID    string `xml:"id,attr"`
	Color string `xml:"color,attr"`
	Name  string `xml:",chardata"`
}

type xmlNote struct {
	Player string `xml:"player,attr"`
	Label  string `xml:"label,attr,omitempty"`
	Update int64  `xml:"update,attr,omitempty"`
	Text   string `xml:",chardata"`
}

const noLabel = "-1"

// Import reads a notes XML file into the store, upserting per player.
// Returns the number of notes imported.
func (s *Service) Import(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening notes file: %w", err)
	}
	defer f.Close()
	return s.ImportReader(ctx, f)
}

// ImportReader reads notes XML from r into the store.
func (s *Service) ImportReader(ctx context.Context, r io.Reader) (int, error) {
	var doc xmlNotes
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decoding notes xml: %w", err)
	}

	for _, l := range doc.Labels {
		err := s.store.SaveLabel(ctx, storage.NoteLabel{ID: l.ID, Color: l.Color, Name: l.Name})
		if err != nil {
			return 0, err
		}
	}

	imported := 0
	for _, n := range doc.Notes {
		if n.Player == "" {
			s.logger.Warn().Msg("skipping note with empty player name")
			continue
		}
		label := n.Label
		if label == noLabel {
			label = ""
		}
		note := storage.Note{PlayerName: n.Player, LabelID: label, Text: n.Text}
		if n.Update > 0 {
			note.UpdatedAt = time.Unix(n.Update, 0).UTC()
		}
		if err := s.store.SaveNote(ctx, note); err != nil {
			return imported, err
		}
		imported++
	}

	s.logger.Info().Int("notes", imported).Int("labels", len(doc.Labels)).Msg("imported notes")
	return imported, nil
}

// Export writes every stored note to path in the client's XML format.
// The write is atomic so the client never reads a half-written file.
func (s *Service) Export(ctx context.Context, path string) error {
	data, err := s.marshal(ctx)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing notes file: %w", err)
	}
	return nil
}

// ExportWriter writes the notes XML document to w.
func (s *Service) ExportWriter(ctx context.Context, w io.Writer) error {
	data, err := s.marshal(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (s *Service) marshal(ctx context.Context) ([]byte, error) {
	labels, err := s.store.Labels(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	doc := xmlNotes{Version: "1"}
	for _, l := range labels {
		doc.Labels = append(doc.Labels, xmlLabel{ID: l.ID, Color: l.Color, Name: l.Name})
	}
	for _, n := range stored {
		xn := xmlNote{Player: n.PlayerName, Label: n.LabelID, Text: n.Text}
		if xn.Label == "" {
			xn.Label = noLabel
		}
		if !n.UpdatedAt.IsZero() {
			xn.Update = n.UpdatedAt.Unix()
		}
		doc.Notes = append(doc.Notes, xn)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding notes xml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
