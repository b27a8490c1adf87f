// Package hand defines the structured representation of a single parsed
// poker hand: players, chronological actions, pots and winners.
package hand

import "time"

// Street identifies a betting round or the showdown phase.
type Street string

const (
	StreetPreflop  Street = "preflop"
	StreetFlop     Street = "flop"
	StreetTurn     Street = "turn"
	StreetRiver    Street = "river"
	StreetShowdown Street = "showdown"
)

// ActionKind identifies what a player did.
type ActionKind string

const (
	ActionAnte       ActionKind = "ante"
	ActionSmallBlind ActionKind = "small_blind"
	ActionBigBlind   ActionKind = "big_blind"
	ActionFold       ActionKind = "fold"
	ActionCheck      ActionKind = "check"
	ActionCall       ActionKind = "call"
	ActionBet        ActionKind = "bet"
	ActionRaise      ActionKind = "raise"
	ActionAllIn      ActionKind = "all-in"
)

// MainPot is the pot type of the primary pot. Side pots are labeled
// "side-1" .. "side-N" in order of appearance.
const MainPot = "main"

// Record is one fully parsed hand.
type Record struct {
	HandID       string    `json:"hand_id"`
	TournamentID string    `json:"tournament_id,omitempty"`
	GameType     string    `json:"game_type"`
	DateTime     time.Time `json:"date_time"` // zero when the timestamp failed to parse
	SmallBlind   float64   `json:"small_blind"`
	BigBlind     float64   `json:"big_blind"`
	Ante         float64   `json:"ante,omitempty"` // largest ante seen in the hand
	Pot          float64   `json:"pot"`
	Rake         float64   `json:"rake"`
	Board        []string  `json:"board,omitempty"`
	TableName    string    `json:"table_name,omitempty"`
	MaxSeats     int       `json:"max_seats,omitempty"`
	ButtonSeat   int       `json:"button_seat,omitempty"`

	Participants   []*Participant  `json:"participants"`
	Actions        []Action        `json:"actions"`
	Pots           []*Pot          `json:"pots,omitempty"`
	Winners        []Winner        `json:"winners,omitempty"`
	ReturnedBets   []ReturnedBet   `json:"returned_bets,omitempty"`
	PotCollections []PotCollection `json:"pot_collections,omitempty"`
}

// Participant is one seated player in one hand.
type Participant struct {
	Name         string   `json:"name"`
	Seat         int      `json:"seat"`
	Stack        float64  `json:"stack"`
	Bounty       float64  `json:"bounty,omitempty"` // 0 when the seat line carried no bounty
	Cards        []string `json:"cards,omitempty"`
	ShowedCards  bool     `json:"showed_cards,omitempty"`
	IsButton     bool     `json:"is_button,omitempty"`
	IsSmallBlind bool     `json:"is_small_blind,omitempty"`
	IsBigBlind   bool     `json:"is_big_blind,omitempty"`
	NetProfit    float64  `json:"net_profit"`
}

// Action is one discrete event in a hand's timeline. Sequence numbers
// are global across the whole hand and strictly increasing.
type Action struct {
	Sequence   int        `json:"sequence"`
	PlayerName string     `json:"player_name"`
	Kind       ActionKind `json:"kind"`
	Street     Street     `json:"street"`
	Amount     float64    `json:"amount"`
	HasAmount  bool       `json:"has_amount,omitempty"`
	AllIn      bool       `json:"all_in,omitempty"`
}

// Pot is one of potentially several pots for a hand.
type Pot struct {
	Type    string   `json:"type"` // MainPot or "side-N"
	Amount  float64  `json:"amount"`
	Winners []Winner `json:"winners,omitempty"`
}

// Winner is a (player, amount) entry, used both per-pot and as the
// flat pot-independent winners view on Record.
type Winner struct {
	PlayerName string  `json:"player_name"`
	Amount     float64 `json:"amount"`
}

// ReturnedBet is an uncalled wager returned to a single player.
type ReturnedBet struct {
	PlayerName string  `json:"player_name"`
	Amount     float64 `json:"amount"`
}

// PotCollection is a "collected ... from pot" event from the hand body.
type PotCollection struct {
	PlayerName string  `json:"player_name"`
	Amount     float64 `json:"amount"`
}

// ParticipantIndex builds a name -> index lookup for the hand's
// participants, built once so later stages avoid repeated linear scans.
func (r *Record) ParticipantIndex() map[string]int {
	idx := make(map[string]int, len(r.Participants))
	for i, p := range r.Participants {
		if _, ok := idx[p.Name]; !ok {
			idx[p.Name] = i
		}
	}
	return idx
}

// Participant returns the participant with the given name, or nil.
func (r *Record) Participant(name string) *Participant {
	for _, p := range r.Participants {
		if p.Name == name {
			return p
		}
	}
	return nil
}
