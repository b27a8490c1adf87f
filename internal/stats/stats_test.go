package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/lox/pokerhub/internal/hand"
)

func TestPlayerStats_Empty(t *testing.T) {
	ps := &PlayerStats{}

	if ps.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", ps.Mean())
	}
	if ps.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", ps.Variance())
	}
	if ps.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", ps.StdDev())
	}
	if ps.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", ps.Median())
	}
	if ps.VPIP() != 0 || ps.PFR() != 0 {
		t.Errorf("Expected zero VPIP/PFR for empty stats, got %f/%f", ps.VPIP(), ps.PFR())
	}
}

func TestPlayerStats_MultipleValues(t *testing.T) {
	ps := &PlayerStats{Name: "Player1"}

	outcomes := []HandOutcome{
		{NetBB: 1.0, VoluntaryPut: true, WentToShowdown: false},
		{NetBB: -2.0, VoluntaryPut: true, PreflopRaise: true, WentToShowdown: true},
		{NetBB: 3.0, VoluntaryPut: true, PreflopRaise: true, WentToShowdown: true},
		{NetBB: 0.0},
		{NetBB: -1.0},
	}
	for _, o := range outcomes {
		ps.Add(o)
	}

	expectedMean := (1.0 - 2.0 + 3.0 + 0.0 - 1.0) / 5.0
	if math.Abs(ps.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, ps.Mean())
	}
	if ps.Median() != 0.0 {
		t.Errorf("Expected median of 0.0, got %f", ps.Median())
	}
	if ps.ShowdownWins != 1 {
		t.Errorf("Expected 1 showdown win, got %d", ps.ShowdownWins)
	}
	if ps.NonShowdownWins != 1 {
		t.Errorf("Expected 1 non-showdown win, got %d", ps.NonShowdownWins)
	}
	if math.Abs(ps.VPIP()-60.0) > 1e-9 {
		t.Errorf("Expected VPIP of 60, got %f", ps.VPIP())
	}
	if math.Abs(ps.PFR()-40.0) > 1e-9 {
		t.Errorf("Expected PFR of 40, got %f", ps.PFR())
	}
	if !ps.IsLedgerBalanced() {
		t.Error("Expected ledger to be balanced")
	}
	if err := ps.Validate(); err != nil {
		t.Errorf("Expected valid stats, got error: %v", err)
	}
}

func TestPlayerStats_Variance(t *testing.T) {
	ps := &PlayerStats{}
	for _, v := range []float64{1, 3, 5} {
		ps.Add(HandOutcome{NetBB: v})
	}

	if math.Abs(ps.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4.0, got %f", ps.Variance())
	}
	if math.Abs(ps.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2.0, got %f", ps.StdDev())
	}
}

func TestPlayerStats_Percentiles(t *testing.T) {
	ps := &PlayerStats{}
	for i := 1; i <= 5; i++ {
		ps.Add(HandOutcome{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, test := range tests {
		if got := ps.Percentile(test.percentile); math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, got)
		}
	}
}

func TestPlayerStats_ConfidenceInterval(t *testing.T) {
	ps := &PlayerStats{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		ps.Add(HandOutcome{NetBB: v})
	}

	low, high := ps.ConfidenceInterval95()
	if math.Abs((low+high)/2-ps.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f",
			low, high, ps.Mean())
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestPlayerStats_AggressionFactor(t *testing.T) {
	ps := &PlayerStats{}
	ps.Add(HandOutcome{AggressiveActs: 3, PassiveActs: 2})

	if math.Abs(ps.AggressionFactor()-1.5) > 1e-9 {
		t.Errorf("Expected AF of 1.5, got %f", ps.AggressionFactor())
	}

	noCalls := &PlayerStats{}
	noCalls.Add(HandOutcome{AggressiveActs: 2})
	if noCalls.AggressionFactor() != 2.0 {
		t.Errorf("Expected AF of 2.0 with no calls, got %f", noCalls.AggressionFactor())
	}
}

func TestPlayerStats_BigPotTracking(t *testing.T) {
	ps := &PlayerStats{}
	ps.Add(HandOutcome{NetBB: 1.0, PotBB: 10})
	ps.Add(HandOutcome{NetBB: 5.0, PotBB: 100})
	ps.Add(HandOutcome{NetBB: -1.0, PotBB: 2})

	if math.Abs(ps.MaxPotBB-100.0) > 1e-9 {
		t.Errorf("Expected max pot of 100bb, got %f", ps.MaxPotBB)
	}
	if ps.BigPots != 1 {
		t.Errorf("Expected 1 big pot (>=50bb), got %d", ps.BigPots)
	}
	if math.Abs(ps.BigPotsBB-5.0) > 1e-9 {
		t.Errorf("Expected big pot BB of 5.0, got %f", ps.BigPotsBB)
	}
}

func TestPlayerStats_Validate_LedgerMismatch(t *testing.T) {
	ps := &PlayerStats{}
	ps.Hands = 1
	ps.Values = []float64{1.0}
	ps.AllBB = 1.0
	ps.ShowdownBB = 0.5
	ps.NonShowdownBB = 0.6

	err := ps.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail with ledger mismatch")
	}
	if !strings.Contains(err.Error(), "ledger mismatch") {
		t.Errorf("Expected ledger mismatch error, got: %v", err)
	}
}

func TestPlayerStats_Validate_PFRExceedsVPIP(t *testing.T) {
	ps := &PlayerStats{}
	ps.Hands = 2
	ps.Values = []float64{1.0, 1.0}
	ps.AllBB = 2.0
	ps.NonShowdownBB = 2.0
	ps.VPIPHands = 1
	ps.PFRHands = 2

	err := ps.Validate()
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(err.Error(), "PFR hands") {
		t.Errorf("Expected PFR error, got: %v", err)
	}
}

func testRecord() *hand.Record {
	return &hand.Record{
		HandID:   "1",
		BigBlind: 50,
		Pot:      150,
		Participants: []*hand.Participant{
			{Name: "Player1", Seat: 1, NetProfit: 100},
			{Name: "Player2", Seat: 2, NetProfit: -50, ShowedCards: true},
			{Name: "Player3", Seat: 3, NetProfit: -50},
		},
		Actions: []hand.Action{
			{PlayerName: "Player2", Kind: hand.ActionSmallBlind, Street: hand.StreetPreflop, Amount: 25, HasAmount: true},
			{PlayerName: "Player3", Kind: hand.ActionBigBlind, Street: hand.StreetPreflop, Amount: 50, HasAmount: true},
			{PlayerName: "Player1", Kind: hand.ActionRaise, Street: hand.StreetPreflop, Amount: 150, HasAmount: true},
			{PlayerName: "Player2", Kind: hand.ActionCall, Street: hand.StreetPreflop, Amount: 125, HasAmount: true},
			{PlayerName: "Player3", Kind: hand.ActionFold, Street: hand.StreetPreflop},
			{PlayerName: "Player2", Kind: hand.ActionCheck, Street: hand.StreetFlop},
			{PlayerName: "Player1", Kind: hand.ActionBet, Street: hand.StreetFlop, Amount: 100, HasAmount: true},
			{PlayerName: "Player2", Kind: hand.ActionFold, Street: hand.StreetFlop},
		},
	}
}

func TestOutcomes(t *testing.T) {
	outcomes := Outcomes(testRecord())

	p1 := outcomes["Player1"]
	if !p1.VoluntaryPut || !p1.PreflopRaise {
		t.Errorf("Expected Player1 to be VPIP and PFR, got %+v", p1)
	}
	if p1.AggressiveActs != 2 {
		t.Errorf("Expected 2 aggressive acts for Player1, got %d", p1.AggressiveActs)
	}
	if math.Abs(p1.NetBB-2.0) > 1e-9 {
		t.Errorf("Expected Player1 net of 2bb, got %f", p1.NetBB)
	}

	p2 := outcomes["Player2"]
	if !p2.VoluntaryPut {
		t.Error("Expected Player2 to be VPIP (called a raise)")
	}
	if p2.PreflopRaise {
		t.Error("Player2 never raised preflop")
	}
	if p2.PassiveActs != 1 {
		t.Errorf("Expected 1 passive act for Player2, got %d", p2.PassiveActs)
	}

	// Blinds alone are not voluntary.
	p3 := outcomes["Player3"]
	if p3.VoluntaryPut {
		t.Error("Expected Player3 to not be VPIP (posted blind, then folded)")
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	tr.Observe(testRecord())
	tr.Observe(testRecord())

	names := tr.Players()
	if len(names) != 3 {
		t.Fatalf("Expected 3 tracked players, got %d", len(names))
	}
	if names[0] != "Player1" {
		t.Errorf("Expected sorted names starting with Player1, got %v", names)
	}

	p1 := tr.Player("Player1")
	if p1 == nil {
		t.Fatal("Expected Player1 stats")
	}
	if p1.Hands != 2 {
		t.Errorf("Expected 2 hands, got %d", p1.Hands)
	}
	if math.Abs(p1.VPIP()-100.0) > 1e-9 {
		t.Errorf("Expected 100%% VPIP, got %f", p1.VPIP())
	}
	if math.Abs(p1.NetChips-200.0) > 1e-9 {
		t.Errorf("Expected 200 net chips, got %f", p1.NetChips)
	}

	if tr.Player("nobody") != nil {
		t.Error("Expected nil for unknown player")
	}
}
