// Package stats aggregates per-player performance statistics from
// parsed hand records: winnings in chips and big blinds, the classic
// VPIP/PFR/AF profile numbers, and distribution summaries.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/pokerhub/internal/hand"
)

// HandOutcome is one player's view of one finished hand.
type HandOutcome struct {
	HandID         string
	NetChips       float64
	NetBB          float64 // Net big blinds won/lost
	VoluntaryPut   bool    // Put money in preflop beyond the blinds
	PreflopRaise   bool
	WentToShowdown bool
	AggressiveActs int // bets and raises, all streets
	PassiveActs    int // calls, all streets
	PotBB          float64
}

// PlayerStats accumulates outcomes for a single player.
type PlayerStats struct {
	Name   string
	Hands  int
	SumBB  float64
	SumBB2 float64 // Sum of squares for variance calculation
	Values []float64

	NetChips       float64
	VPIPHands      int
	PFRHands       int
	AggressiveActs int
	PassiveActs    int

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64
	AllBB           float64

	MaxPotBB  float64
	BigPots   int // Pots >= 50bb
	BigPotsBB float64
}

// Add incorporates a new hand outcome into the player's statistics.
func (s *PlayerStats) Add(o HandOutcome) {
	netBB := o.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)
	s.NetChips += o.NetChips

	if o.VoluntaryPut {
		s.VPIPHands++
	}
	if o.PreflopRaise {
		s.PFRHands++
	}
	s.AggressiveActs += o.AggressiveActs
	s.PassiveActs += o.PassiveActs

	if netBB > 0 {
		if o.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if o.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if o.PotBB > s.MaxPotBB {
		s.MaxPotBB = o.PotBB
	}
	if o.PotBB >= 50 {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Mean returns the arithmetic mean result in big blinds per hand.
func (s *PlayerStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results.
func (s *PlayerStats) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results.
func (s *PlayerStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *PlayerStats) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *PlayerStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median result.
func (s *PlayerStats) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (s *PlayerStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// VPIP returns the voluntarily-put-money-in-pot percentage (0-100).
func (s *PlayerStats) VPIP() float64 {
	if s.Hands == 0 {
		return 0
	}
	return 100 * float64(s.VPIPHands) / float64(s.Hands)
}

// PFR returns the preflop-raise percentage (0-100).
func (s *PlayerStats) PFR() float64 {
	if s.Hands == 0 {
		return 0
	}
	return 100 * float64(s.PFRHands) / float64(s.Hands)
}

// AggressionFactor returns bets-and-raises over calls. With no calls on
// record the raw aggressive count is returned, so a player who has only
// ever bet still profiles as aggressive.
func (s *PlayerStats) AggressionFactor() float64 {
	if s.PassiveActs == 0 {
		return float64(s.AggressiveActs)
	}
	return float64(s.AggressiveActs) / float64(s.PassiveActs)
}

// IsLedgerBalanced checks that the showdown/non-showdown split accounts
// for every big blind tracked.
func (s *PlayerStats) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate performs consistency checks on the accumulated data.
func (s *PlayerStats) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if totalWins := s.ShowdownWins + s.NonShowdownWins; totalWins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", totalWins, s.Hands)
	}
	if s.VPIPHands > s.Hands {
		return fmt.Errorf("VPIP hands (%d) exceeds total hands (%d)", s.VPIPHands, s.Hands)
	}
	if s.PFRHands > s.VPIPHands {
		return fmt.Errorf("PFR hands (%d) exceeds VPIP hands (%d)", s.PFRHands, s.VPIPHands)
	}
	return nil
}

// Tracker aggregates statistics per player across many hands.
type Tracker struct {
	players map[string]*PlayerStats
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{players: make(map[string]*PlayerStats)}
}

// Observe folds one parsed hand into the tracker, one outcome per
// participant.
func (t *Tracker) Observe(rec *hand.Record) {
	for name, o := range Outcomes(rec) {
		ps, ok := t.players[name]
		if !ok {
			ps = &PlayerStats{Name: name}
			t.players[name] = ps
		}
		ps.Add(o)
	}
}

// Player returns the stats for a player, or nil if never seen.
func (t *Tracker) Player(name string) *PlayerStats {
	return t.players[name]
}

// Players returns all tracked player names, sorted.
func (t *Tracker) Players() []string {
	names := make([]string, 0, len(t.players))
	for name := range t.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Outcomes derives each participant's HandOutcome from a parsed record.
func Outcomes(rec *hand.Record) map[string]HandOutcome {
	showdown := false
	for _, p := range rec.Participants {
		if p.ShowedCards {
			showdown = true
			break
		}
	}

	outcomes := make(map[string]HandOutcome, len(rec.Participants))
	for _, p := range rec.Participants {
		o := HandOutcome{
			HandID:         rec.HandID,
			NetChips:       p.NetProfit,
			WentToShowdown: showdown && p.ShowedCards,
		}
		if rec.BigBlind > 0 {
			o.NetBB = p.NetProfit / rec.BigBlind
			o.PotBB = rec.Pot / rec.BigBlind
		}
		outcomes[p.Name] = o
	}

	for _, act := range rec.Actions {
		o, ok := outcomes[act.PlayerName]
		if !ok {
			continue
		}
		switch act.Kind {
		case hand.ActionCall:
			o.PassiveActs++
			if act.Street == hand.StreetPreflop {
				o.VoluntaryPut = true
			}
		case hand.ActionBet:
			o.AggressiveActs++
			if act.Street == hand.StreetPreflop {
				o.VoluntaryPut = true
			}
		case hand.ActionRaise, hand.ActionAllIn:
			o.AggressiveActs++
			if act.Street == hand.StreetPreflop {
				o.VoluntaryPut = true
				o.PreflopRaise = true
			}
		}
		outcomes[act.PlayerName] = o
	}
	return outcomes
}
