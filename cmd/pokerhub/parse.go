package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lox/pokerhub/cmd/pokerhub/shared"
	"github.com/lox/pokerhub/internal/parser"
	"github.com/lox/pokerhub/internal/stats"
)

// ParseCmd parses files and prints the results without touching the
// database. Useful for inspecting a hand or debugging a weird file.
type ParseCmd struct {
	Paths []string `kong:"arg,required,help='Hand history files to parse'"`
	JSON  bool     `kong:"help='Print full hand records as JSON'"`
	Debug bool     `kong:"help='Enable debug logging'"`
}

func (c *ParseCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	p := parser.New(logger)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	tracker := stats.NewTracker()
	for _, path := range c.Paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		res, err := p.ParseFile(string(content))
		if err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("no hands parsed")
			continue
		}

		if c.JSON {
			for _, rec := range res.Hands {
				if err := enc.Encode(rec); err != nil {
					return err
				}
			}
			continue
		}

		fmt.Printf("%s: %d hands, %d skipped\n", path, len(res.Hands), len(res.Skipped))
		for _, rec := range res.Hands {
			tracker.Observe(rec)
			fmt.Printf("  hand %s  pot %.2f  rake %.2f\n", rec.HandID, rec.Pot, rec.Rake)
			for _, part := range rec.Participants {
				fmt.Printf("    %-24s seat %d  net %+.2f\n", part.Name, part.Seat, part.NetProfit)
			}
		}
		for _, skip := range res.Skipped {
			fmt.Printf("  skipped hand %d: %s\n", skip.Index, skip.Reason)
		}
	}

	if !c.JSON {
		printPlayerSummary(os.Stdout, tracker)
	}
	return nil
}

// printPlayerSummary renders the per-player aggregate across every
// parsed hand: net result in big blinds and the VPIP/PFR/AF profile.
func printPlayerSummary(w io.Writer, tracker *stats.Tracker) {
	names := tracker.Players()
	if len(names) == 0 {
		return
	}

	fmt.Fprintln(w, "player summary:")
	for _, name := range names {
		ps := tracker.Player(name)
		fmt.Fprintf(w, "  %-24s %4d hands  %+8.1f bb (%+.2f bb/hand)  vpip %3.0f%%  pfr %3.0f%%  af %.2f\n",
			name, ps.Hands, ps.SumBB, ps.Mean(), ps.VPIP(), ps.PFR(), ps.AggressionFactor())
	}
}
