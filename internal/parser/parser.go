// Package parser converts plain-text poker hand-history records into
// fully reconciled hand.Record structures.
//
// Parsing runs as a pipeline with residue: each stage consumes the
// lines it understands and hands the rest to the next stage
// (header -> participants -> actions -> pots), so a later grammar can
// never misfire on an already-understood line. Assembly then merges the
// stage outputs and computes per-participant net profit, checking that
// money in equals money out.
package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/pokerhub/internal/hand"
)

// amountTolerance is the epsilon for all monetary reconciliation
// checks; the source format's own rounding means exact equality cannot
// be demanded.
const amountTolerance = 0.01

// ErrNoHands is returned by ParseFile when every hand in a file failed
// structurally. The caller should retry the file later rather than mark
// it permanently done.
var ErrNoHands = errors.New("parser: no hands parsed from file")

// Soft failures for a single hand. These are ordinary results, not
// faults: a hand that cannot be parsed is skipped with a reason.
var (
	ErrHeaderMismatch = errors.New("parser: header did not match hand grammar")
	ErrNoParticipants = errors.New("parser: no seat lines found")
)

var handSeparatorRe = regexp.MustCompile(`\n{2,}`)

// Parser turns hand-history text into hand records. It is stateless
// between hands and safe to reuse across files.
type Parser struct {
	logger zerolog.Logger
}

// New creates a parser logging through the given logger.
func New(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger.With().Str("component", "parser").Logger()}
}

// Skip describes a hand that could not be parsed.
type Skip struct {
	Index  int
	Reason string
}

// FileResult is the outcome of parsing one file's content.
type FileResult struct {
	Hands   []*hand.Record
	Skipped []Skip
}

// SplitHands splits file content into individual hand texts. Hands are
// separated by one or more blank lines.
func SplitHands(content string) []string {
	parts := handSeparatorRe.Split(content, -1)
	hands := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			hands = append(hands, part)
		}
	}
	return hands
}

// ParseFile parses every hand in the given file content, in file order.
// Unparseable hands are skipped and reported, never fatal. ErrNoHands
// is returned when at least one hand was present but none parsed.
func (p *Parser) ParseFile(content string) (*FileResult, error) {
	res := &FileResult{}
	for i, text := range SplitHands(content) {
		rec, err := p.ParseHand(text)
		if err != nil {
			p.logger.Warn().Int("hand_index", i).Err(err).Msg("skipping unparseable hand")
			res.Skipped = append(res.Skipped, Skip{Index: i, Reason: err.Error()})
			continue
		}
		res.Hands = append(res.Hands, rec)
	}
	if len(res.Hands) == 0 && len(res.Skipped) > 0 {
		return res, fmt.Errorf("%w: %d hands skipped", ErrNoHands, len(res.Skipped))
	}
	return res, nil
}

// ParseHand parses a single hand history text. A returned error means
// the hand is structurally unparseable and should be skipped; it is
// never a crash.
func (p *Parser) ParseHand(text string) (*hand.Record, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	header, rest, ok := parseHeader(lines)
	if !ok {
		return nil, ErrHeaderMismatch
	}

	participants, rest, ok := parseParticipants(rest)
	if !ok {
		return nil, ErrNoParticipants
	}

	actions, rest := parseActions(rest)
	pots := p.parsePots(rest)

	rec := &hand.Record{
		HandID:         header.HandID,
		TournamentID:   header.TournamentID,
		GameType:       header.GameType,
		DateTime:       header.DateTime,
		SmallBlind:     header.SmallBlind,
		BigBlind:       header.BigBlind,
		TableName:      header.TableName,
		MaxSeats:       header.MaxSeats,
		ButtonSeat:     header.ButtonSeat,
		Participants:   participants,
		Actions:        actions,
		Pot:            pots.Pot,
		Rake:           pots.Rake,
		Board:          pots.Board,
		Pots:           pots.Pots,
		Winners:        pots.Winners,
		ReturnedBets:   pots.ReturnedBets,
		PotCollections: pots.PotCollections,
	}

	for _, act := range rec.Actions {
		if act.Kind == hand.ActionAnte && act.Amount > rec.Ante {
			rec.Ante = act.Amount
		}
	}

	p.markPositions(rec)
	p.computeNetProfit(rec)
	return rec, nil
}

// markPositions sets the button flag from the header's button seat and
// the blind flags from the blind actions.
func (p *Parser) markPositions(rec *hand.Record) {
	if rec.ButtonSeat != 0 {
		for _, part := range rec.Participants {
			if part.Seat == rec.ButtonSeat {
				part.IsButton = true
				break
			}
		}
	}

	idx := rec.ParticipantIndex()
	for _, act := range rec.Actions {
		i, ok := idx[act.PlayerName]
		if !ok {
			continue
		}
		switch act.Kind {
		case hand.ActionSmallBlind:
			rec.Participants[i].IsSmallBlind = true
		case hand.ActionBigBlind:
			rec.Participants[i].IsBigBlind = true
		}
	}
}

// computeNetProfit fills in each participant's net profit, choosing
// between the walk-over closed form and the general
// investment/winnings formula.
func (p *Parser) computeNetProfit(rec *hand.Record) {
	if isPreflopWalk(rec) {
		p.walkOverProfits(rec)
		return
	}
	p.standardProfits(rec)
}

// isPreflopWalk reports whether everyone folded to the big blind: a pot
// collection exists, nothing was returned uncalled, and no action goes
// beyond antes, blinds and folds.
func isPreflopWalk(rec *hand.Record) bool {
	if len(rec.PotCollections) == 0 || len(rec.ReturnedBets) > 0 {
		return false
	}
	for _, act := range rec.Actions {
		switch act.Kind {
		case hand.ActionAnte, hand.ActionSmallBlind, hand.ActionBigBlind, hand.ActionFold:
		default:
			return false
		}
	}
	return true
}

// walkOverProfits applies the closed form for a walk: the only monetary
// flow is the blinds and antes collapsing into the pot, so there are no
// call/bet/raise actions to sum.
func (p *Parser) walkOverProfits(rec *hand.Record) {
	ante := 0.0
	for _, act := range rec.Actions {
		if act.Kind == hand.ActionAnte {
			ante = act.Amount
			break
		}
	}

	total := 0.0
	for _, part := range rec.Participants {
		switch {
		case part.IsSmallBlind:
			part.NetProfit = -(ante + rec.SmallBlind)
		case part.IsBigBlind:
			part.NetProfit = rec.Pot - (ante + rec.BigBlind)
		default:
			part.NetProfit = -ante
		}
		total += part.NetProfit
	}

	if math.Abs(total) > amountTolerance {
		p.logger.Warn().
			Str("hand_id", rec.HandID).
			Float64("total_profit", total).
			Float64("expected", 0).
			Msg("walk-over profits do not conserve")
	}
}

// standardProfits computes profit = winnings - investment per
// participant. A returned bet reduces investment: it is money that was
// never truly wagered.
func (p *Parser) standardProfits(rec *hand.Record) {
	investments := make(map[string]float64, len(rec.Participants))
	winnings := make(map[string]float64, len(rec.Participants))
	for _, part := range rec.Participants {
		investments[part.Name] = 0
		winnings[part.Name] = 0
	}

	for _, act := range rec.Actions {
		if !act.HasAmount {
			continue
		}
		switch act.Kind {
		case hand.ActionAnte, hand.ActionSmallBlind, hand.ActionBigBlind,
			hand.ActionCall, hand.ActionBet, hand.ActionRaise, hand.ActionAllIn:
			investments[act.PlayerName] += act.Amount
		}
	}
	for _, w := range rec.Winners {
		winnings[w.PlayerName] += w.Amount
	}
	for _, rb := range rec.ReturnedBets {
		investments[rb.PlayerName] -= rb.Amount
	}

	total := 0.0
	for _, part := range rec.Participants {
		part.NetProfit = winnings[part.Name] - investments[part.Name]
		total += part.NetProfit
	}

	if expected := -rec.Rake; math.Abs(total-expected) > amountTolerance {
		p.logger.Warn().
			Str("hand_id", rec.HandID).
			Float64("total_profit", total).
			Float64("expected", expected).
			Float64("drift", total-expected).
			Msg("net profits do not conserve")
	}
}
