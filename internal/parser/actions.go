package parser

import (
	"strings"

	"github.com/lox/pokerhub/internal/hand"
)

// actionState is the fold state threaded through the street phase:
// (state, line) -> state'.
type actionState struct {
	street  hand.Street
	actions []hand.Action
	seq     int
}

// parseActions extracts the ordered action sequence. Blinds and antes
// are consumed first (they always precede street actions), then the
// remaining lines are folded over with the current street tracked via
// marker lines. Returns the actions and the unclaimed lines: any
// non-action body lines plus the summary section onward.
func parseActions(lines []string) ([]hand.Action, []string) {
	st := actionState{street: hand.StreetPreflop}

	lines = parseBlindsAntes(lines, &st)

	summaryIdx := -1
	for i, line := range lines {
		if strings.Contains(line, summaryMarker) {
			summaryIdx = i
			break
		}
	}
	body := lines
	if summaryIdx >= 0 {
		body = lines[:summaryIdx]
	}

	var leftover []string
	for _, line := range body {
		if street, ok := streetForMarker(line); ok {
			st.street = street
			continue
		}
		if act, ok := parseActionLine(line, st.street, st.seq); ok {
			st.actions = append(st.actions, act)
			st.seq++
			continue
		}
		// Unclaimed body lines (pot collections, uncalled bets) flow
		// through to the pot stage.
		leftover = append(leftover, line)
	}
	if summaryIdx >= 0 {
		leftover = append(leftover, lines[summaryIdx:]...)
	}
	return st.actions, leftover
}

// parseBlindsAntes scans from the top until the hole-cards marker or the
// big blind, whichever comes first; the format guarantees the
// ante -> small blind -> big blind ordering, so nothing after the big
// blind can be a blind line. Matched lines are consumed exactly once.
func parseBlindsAntes(lines []string, st *actionState) []string {
	consumed := make(map[int]struct{})

scan:
	for i, line := range lines {
		if strings.Contains(line, holeCardsMarker) {
			break
		}
		if m := anteRe.FindStringSubmatch(line); m != nil {
			appendBlind(st, m[1], hand.ActionAnte, m[2])
			consumed[i] = struct{}{}
			continue
		}
		if m := smallBlindRe.FindStringSubmatch(line); m != nil {
			appendBlind(st, m[1], hand.ActionSmallBlind, m[2])
			consumed[i] = struct{}{}
			continue
		}
		if m := bigBlindRe.FindStringSubmatch(line); m != nil {
			appendBlind(st, m[1], hand.ActionBigBlind, m[2])
			consumed[i] = struct{}{}
			break scan
		}
	}

	if len(consumed) == 0 {
		return lines
	}
	rest := make([]string, 0, len(lines)-len(consumed))
	for i, line := range lines {
		if _, ok := consumed[i]; !ok {
			rest = append(rest, line)
		}
	}
	return rest
}

func appendBlind(st *actionState, player string, kind hand.ActionKind, amount string) {
	amt, _ := parseAmount(amount)
	st.actions = append(st.actions, hand.Action{
		Sequence:   st.seq,
		PlayerName: player,
		Kind:       kind,
		Street:     hand.StreetPreflop,
		Amount:     amt,
		HasAmount:  true,
	})
	st.seq++
}

func streetForMarker(line string) (hand.Street, bool) {
	switch {
	case strings.Contains(line, holeCardsMarker):
		return hand.StreetPreflop, true
	case strings.Contains(line, flopMarker):
		return hand.StreetFlop, true
	case strings.Contains(line, turnMarker):
		return hand.StreetTurn, true
	case strings.Contains(line, riverMarker):
		return hand.StreetRiver, true
	case strings.Contains(line, showdownMarker):
		return hand.StreetShowdown, true
	}
	return "", false
}

// parseActionLine tests a line against the action grammars in fixed
// priority order; a line satisfies at most one kind, so the first match
// wins. All-in is a suffix check on top of the call/bet/raise match,
// not a separate mutually exclusive kind.
func parseActionLine(line string, street hand.Street, seq int) (hand.Action, bool) {
	allIn := strings.Contains(line, allInSuffix)

	act := hand.Action{Sequence: seq, Street: street, AllIn: allIn}

	if m := foldRe.FindStringSubmatch(line); m != nil {
		act.PlayerName, act.Kind = m[1], hand.ActionFold
		return act, true
	}
	if m := checkRe.FindStringSubmatch(line); m != nil {
		act.PlayerName, act.Kind = m[1], hand.ActionCheck
		return act, true
	}
	if m := callRe.FindStringSubmatch(line); m != nil {
		act.PlayerName, act.Kind = m[1], hand.ActionCall
		act.Amount, _ = parseAmount(m[2])
		act.HasAmount = true
		return act, true
	}
	if m := betRe.FindStringSubmatch(line); m != nil {
		act.PlayerName, act.Kind = m[1], hand.ActionBet
		act.Amount, _ = parseAmount(m[2])
		act.HasAmount = true
		return act, true
	}
	if m := raiseRe.FindStringSubmatch(line); m != nil {
		act.PlayerName, act.Kind = m[1], hand.ActionRaise
		// Always the to-amount, never the increment.
		act.Amount, _ = parseAmount(m[3])
		act.HasAmount = true
		return act, true
	}
	if m := allInRe.FindStringSubmatch(line); m != nil {
		act.PlayerName, act.Kind = m[1], hand.ActionAllIn
		act.AllIn = true
		if m[4] != "" {
			act.Amount, _ = parseAmount(m[4])
		} else {
			act.Amount, _ = parseAmount(m[3])
		}
		act.HasAmount = true
		return act, true
	}
	return hand.Action{}, false
}
