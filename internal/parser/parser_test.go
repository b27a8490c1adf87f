package parser

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhub/internal/hand"
)

// Walk-over: everyone folds to the big blind preflop.
const walkHand = `PokerStars Hand #255510109389: Tournament #3872576931, $0.98+$0.12 USD Hold'em No Limit - Level XI (1500/3000) - 2024/12/29 18:57:34 ET
Table '3872576931 18' 8-max Seat #8 is the button
Seat 1: Player1 (45000 in chips)
Seat 2: Player2 (52000 in chips)
Seat 3: Player3 (38000 in chips)
Seat 4: Player4 (61000 in chips)
Seat 5: Player5 (29000 in chips)
Seat 6: Player6 (33000 in chips)
Seat 7: Player7 (47000 in chips)
Seat 8: Player8 (55000 in chips)
Player1: posts the ante 500
Player2: posts the ante 500
Player3: posts the ante 500
Player4: posts the ante 500
Player5: posts the ante 500
Player6: posts the ante 500
Player7: posts the ante 500
Player8: posts the ante 500
Player1: posts small blind 1500
Player2: posts big blind 3000
*** HOLE CARDS ***
Dealt to Player4 [8d 6h]
Player3: folds
Player4: folds
Player5: folds
Player6: folds
Player7: folds
Player8: folds
Player1: folds
Player2 collected 8500 from pot
Player2: doesn't show hand
*** SUMMARY ***
Total pot 8500 | Rake 0
Seat 1: Player1 (small blind) folded before Flop
Seat 2: Player2 (big blind) collected (8500)
Seat 3: Player3 folded before Flop (didn't bet)
Seat 4: Player4 folded before Flop (didn't bet)
Seat 5: Player5 folded before Flop (didn't bet)
Seat 6: Player6 folded before Flop (didn't bet)
Seat 7: Player7 folded before Flop (didn't bet)
Seat 8: Player8 (button) folded before Flop (didn't bet)`

// Same situation as recorded by the site when the small blind's unmatched
// chips come back as an uncalled bet, which forces the general formula.
const walkHandUncalled = `PokerStars Hand #255510109390: Tournament #3872576931, $0.98+$0.12 USD Hold'em No Limit - Level XI (1500/3000) - 2024/12/29 18:58:02 ET
Table '3872576931 18' 8-max Seat #8 is the button
Seat 1: Player1 (45000 in chips)
Seat 2: Player2 (52000 in chips)
Seat 3: Player3 (38000 in chips)
Seat 4: Player4 (61000 in chips)
Seat 5: Player5 (29000 in chips)
Seat 6: Player6 (33000 in chips)
Seat 7: Player7 (47000 in chips)
Seat 8: Player8 (55000 in chips)
Player1: posts the ante 500
Player2: posts the ante 500
Player3: posts the ante 500
Player4: posts the ante 500
Player5: posts the ante 500
Player6: posts the ante 500
Player7: posts the ante 500
Player8: posts the ante 500
Player1: posts small blind 1500
Player2: posts big blind 3000
*** HOLE CARDS ***
Dealt to Player4 [8d 6h]
Player3: folds
Player4: folds
Player5: folds
Player6: folds
Player7: folds
Player8: folds
Player1: folds
Uncalled bet (1500) returned to Player2
Player2 collected 7000 from pot
Player2: doesn't show hand
*** SUMMARY ***
Total pot 7000 | Rake 0
Seat 1: Player1 (small blind) folded before Flop
Seat 2: Player2 (big blind) collected (7000)
Seat 3: Player3 folded before Flop (didn't bet)
Seat 4: Player4 folded before Flop (didn't bet)
Seat 5: Player5 folded before Flop (didn't bet)
Seat 6: Player6 folded before Flop (didn't bet)
Seat 7: Player7 folded before Flop (didn't bet)
Seat 8: Player8 (button) folded before Flop (didn't bet)`

const uncalledRiverHand = `PokerStars Hand #224162543100: Tournament #3333333333, $0.25+$0.00 USD Hold'em No Limit - Level II (25/50) - 2025/01/01 12:05:00 ET
Table '3333333333 1' 9-max Seat #1 is the button
Seat 1: Player1 (1500 in chips)
Seat 2: Player2 (1500 in chips)
Seat 3: Player3 (1500 in chips)
Seat 4: Player4 (1500 in chips)
Player2: posts small blind 25
Player3: posts big blind 50
*** HOLE CARDS ***
Dealt to Player1 [Kc Kd]
Player4: calls 50
Player1: folds
Player2: calls 25
Player3: checks
*** FLOP *** [2h 7c Jd]
Player2: checks
Player3: checks
Player4: checks
*** TURN *** [2h 7c Jd] [5s]
Player2: checks
Player3: checks
Player4: checks
*** RIVER *** [2h 7c Jd 5s] [9h]
Player2: checks
Player3: checks
Player4: bets 50
Player2: folds
Player3: folds
Uncalled bet (50) returned to Player4
Player4 collected 150 from pot
*** SUMMARY ***
Total pot 150 | Rake 0
Board [2h 7c Jd 5s 9h]
Seat 1: Player1 (button) folded before Flop (didn't bet)
Seat 2: Player2 (small blind) folded on the River
Seat 3: Player3 (big blind) folded on the River
Seat 4: Player4 collected (150)`

func testParser(t *testing.T) *Parser {
	t.Helper()
	return New(zerolog.Nop())
}

func TestParseHandWalkOver(t *testing.T) {
	rec, err := testParser(t).ParseHand(walkHand)
	require.NoError(t, err)

	assert.Equal(t, "255510109389", rec.HandID)
	assert.Equal(t, 1500.0, rec.SmallBlind)
	assert.Equal(t, 3000.0, rec.BigBlind)
	assert.Equal(t, 500.0, rec.Ante)
	assert.Equal(t, 8500.0, rec.Pot)
	require.Len(t, rec.Participants, 8)

	sb := rec.Participant("Player1")
	bb := rec.Participant("Player2")
	require.NotNil(t, sb)
	require.NotNil(t, bb)
	assert.True(t, sb.IsSmallBlind)
	assert.True(t, bb.IsBigBlind)
	assert.True(t, rec.Participant("Player8").IsButton)

	// Closed form: blinds and antes collapse straight into the pot.
	assert.InDelta(t, -2000.0, sb.NetProfit, amountTolerance)
	assert.InDelta(t, 5000.0, bb.NetProfit, amountTolerance)
	total := 0.0
	for _, p := range rec.Participants {
		if !p.IsSmallBlind && !p.IsBigBlind {
			assert.InDelta(t, -500.0, p.NetProfit, amountTolerance, p.Name)
		}
		total += p.NetProfit
	}
	assert.InDelta(t, 0.0, total, amountTolerance, "profits must conserve")
}

func TestParseHandWalkOverWithUncalledBlind(t *testing.T) {
	rec, err := testParser(t).ParseHand(walkHandUncalled)
	require.NoError(t, err)

	require.Len(t, rec.ReturnedBets, 1)
	assert.Equal(t, "Player2", rec.ReturnedBets[0].PlayerName)
	assert.Equal(t, 1500.0, rec.ReturnedBets[0].Amount)

	// The returned bet disqualifies the closed form; the general
	// investment/winnings formula must land on the same truth.
	assert.InDelta(t, -2000.0, rec.Participant("Player1").NetProfit, amountTolerance)
	assert.InDelta(t, 5000.0, rec.Participant("Player2").NetProfit, amountTolerance)
	assert.InDelta(t, -500.0, rec.Participant("Player5").NetProfit, amountTolerance)

	total := 0.0
	for _, p := range rec.Participants {
		total += p.NetProfit
	}
	assert.InDelta(t, 0.0, total, amountTolerance)
}

func TestParseHandUncalledBetReducesInvestment(t *testing.T) {
	rec, err := testParser(t).ParseHand(uncalledRiverHand)
	require.NoError(t, err)

	assert.Equal(t, 150.0, rec.Pot)
	assert.Equal(t, []string{"2h", "7c", "Jd", "5s", "9h"}, rec.Board)
	require.Len(t, rec.ReturnedBets, 1)
	assert.Equal(t, "Player4", rec.ReturnedBets[0].PlayerName)

	// Player4 put in 100 (call 50, bet 50), got 50 back and won 150.
	// Without the returned-bet credit this would read +50.
	assert.InDelta(t, 100.0, rec.Participant("Player4").NetProfit, amountTolerance)
	assert.InDelta(t, -50.0, rec.Participant("Player2").NetProfit, amountTolerance)
	assert.InDelta(t, -50.0, rec.Participant("Player3").NetProfit, amountTolerance)
	assert.InDelta(t, 0.0, rec.Participant("Player1").NetProfit, amountTolerance)
}

func TestParseHandActionStreets(t *testing.T) {
	rec, err := testParser(t).ParseHand(uncalledRiverHand)
	require.NoError(t, err)

	streets := make(map[hand.Street]int)
	for i, act := range rec.Actions {
		assert.Equal(t, i, act.Sequence, "sequence numbers must be gapless")
		streets[act.Street]++
	}
	assert.Equal(t, 6, streets[hand.StreetPreflop], "blinds plus four preflop actions")
	assert.Equal(t, 3, streets[hand.StreetFlop])
	assert.Equal(t, 3, streets[hand.StreetTurn])
	assert.Equal(t, 5, streets[hand.StreetRiver])
}

func TestParseHandHeaderMismatch(t *testing.T) {
	_, err := testParser(t).ParseHand("garbage\nmore garbage")
	assert.ErrorIs(t, err, ErrHeaderMismatch)
}

func TestSplitHands(t *testing.T) {
	content := "hand one line a\nhand one line b\n\n\nhand two\n\n\n\n"
	hands := SplitHands(content)
	require.Len(t, hands, 2)
	assert.Equal(t, "hand one line a\nhand one line b", hands[0])
}

func TestParseFileSkipsBadHands(t *testing.T) {
	content := walkHand + "\n\n" + "this is not a hand\nat all" + "\n\n" + uncalledRiverHand

	res, err := testParser(t).ParseFile(content)
	require.NoError(t, err)
	require.Len(t, res.Hands, 2)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.Skipped[0].Index)
	assert.Equal(t, "255510109389", res.Hands[0].HandID)
	assert.Equal(t, "224162543100", res.Hands[1].HandID)
}

func TestParseFileAllBadIsNoHands(t *testing.T) {
	res, err := testParser(t).ParseFile("junk\njunk\n\nmore junk\njunk")
	assert.ErrorIs(t, err, ErrNoHands)
	assert.Empty(t, res.Hands)
	assert.Len(t, res.Skipped, 2)
}

func TestParseFileEmptyContent(t *testing.T) {
	res, err := testParser(t).ParseFile("   \n\n  ")
	require.NoError(t, err)
	assert.Empty(t, res.Hands)
	assert.Empty(t, res.Skipped)
}
