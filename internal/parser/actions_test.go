package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhub/internal/hand"
)

func TestParseActionLineKinds(t *testing.T) {
	tests := []struct {
		line      string
		kind      hand.ActionKind
		amount    float64
		hasAmount bool
		allIn     bool
	}{
		{"Player1: folds", hand.ActionFold, 0, false, false},
		{"Player1: checks", hand.ActionCheck, 0, false, false},
		{"Player1: calls 60", hand.ActionCall, 60, true, false},
		{"Player1: calls $1.50", hand.ActionCall, 1.5, true, false},
		{"Player1: bets 120", hand.ActionBet, 120, true, false},
		{"Player1: raises 60 to 80", hand.ActionRaise, 80, true, false},
		{"Player1: raises $2,000 to $5,500", hand.ActionRaise, 5500, true, false},
		{"Player1: calls 300 and is all-in", hand.ActionCall, 300, true, true},
		{"Player1: bets 450 and is all-in", hand.ActionBet, 450, true, true},
		{"Player1: raises 120 to 160 and is all-in", hand.ActionRaise, 160, true, true},
	}

	for _, tt := range tests {
		act, ok := parseActionLine(tt.line, hand.StreetFlop, 7)
		require.True(t, ok, tt.line)
		assert.Equal(t, "Player1", act.PlayerName, tt.line)
		assert.Equal(t, tt.kind, act.Kind, tt.line)
		assert.Equal(t, tt.allIn, act.AllIn, tt.line)
		assert.Equal(t, tt.hasAmount, act.HasAmount, tt.line)
		if tt.hasAmount {
			assert.InDelta(t, tt.amount, act.Amount, 0.001, tt.line)
		}
		assert.Equal(t, 7, act.Sequence, tt.line)
		assert.Equal(t, hand.StreetFlop, act.Street, tt.line)
	}
}

func TestParseActionLineRejectsNonActions(t *testing.T) {
	for _, line := range []string{
		"Uncalled bet (50) returned to Player4",
		"Player4 collected 150 from pot",
		"Player2: doesn't show hand",
		"Dealt to Player1 [Kc Kd]",
	} {
		_, ok := parseActionLine(line, hand.StreetPreflop, 0)
		assert.False(t, ok, line)
	}
}

func TestParseActionsBlindsConsumedOnce(t *testing.T) {
	lines := []string{
		"Player1: posts the ante 10",
		"Player2: posts the ante 10",
		"Player1: posts small blind 25",
		"Player2: posts big blind 50",
		"*** HOLE CARDS ***",
		"Player1: calls 25",
		"Player2: checks",
		"*** SUMMARY ***",
		"Total pot 100 | Rake 0",
	}

	actions, leftover := parseActions(lines)
	require.Len(t, actions, 6)

	assert.Equal(t, hand.ActionAnte, actions[0].Kind)
	assert.Equal(t, hand.ActionAnte, actions[1].Kind)
	assert.Equal(t, hand.ActionSmallBlind, actions[2].Kind)
	assert.Equal(t, 25.0, actions[2].Amount)
	assert.Equal(t, hand.ActionBigBlind, actions[3].Kind)
	assert.Equal(t, hand.ActionCall, actions[4].Kind)
	assert.Equal(t, hand.ActionCheck, actions[5].Kind)

	// Summary onward is residue for the pot stage.
	require.Len(t, leftover, 2)
	assert.Equal(t, "*** SUMMARY ***", leftover[0])
}

func TestParseActionsStreetTracking(t *testing.T) {
	lines := []string{
		"Player1: posts small blind 25",
		"Player2: posts big blind 50",
		"*** HOLE CARDS ***",
		"Player1: calls 25",
		"*** FLOP *** [2h 7c Jd]",
		"Player1: bets 50",
		"*** TURN *** [2h 7c Jd] [5s]",
		"Player1: checks",
		"*** RIVER *** [2h 7c Jd 5s] [9h]",
		"Player1: bets 100",
		"*** SHOW DOWN ***",
	}

	actions, _ := parseActions(lines)
	require.Len(t, actions, 6)
	assert.Equal(t, hand.StreetPreflop, actions[2].Street)
	assert.Equal(t, hand.StreetFlop, actions[3].Street)
	assert.Equal(t, hand.StreetTurn, actions[4].Street)
	assert.Equal(t, hand.StreetRiver, actions[5].Street)
}

func TestParseActionsUnclaimedBodyLinesAreResidue(t *testing.T) {
	lines := []string{
		"Player1: posts small blind 25",
		"Player2: posts big blind 50",
		"*** HOLE CARDS ***",
		"Player1: folds",
		"Uncalled bet (25) returned to Player2",
		"Player2 collected 100 from pot",
	}

	actions, leftover := parseActions(lines)
	assert.Len(t, actions, 3)
	assert.Equal(t, []string{
		"Uncalled bet (25) returned to Player2",
		"Player2 collected 100 from pot",
	}, leftover)
}
