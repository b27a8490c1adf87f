package parser

import (
	"strconv"
	"strings"

	"github.com/lox/pokerhub/internal/hand"
)

// parseParticipants scans every line for seat, dealt-cards and showdown
// grammars. The first seat line per name wins, so re-running the stage
// over the same lines yields identical output. Returns the participants
// and the lines that matched none of the three grammars.
func parseParticipants(lines []string) ([]*hand.Participant, []string, bool) {
	if len(lines) == 0 {
		return nil, nil, false
	}

	var participants []*hand.Participant
	seen := make(map[string]struct{})

	for _, line := range lines {
		m := seatRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		seat, _ := strconv.Atoi(m[1])
		name := m[2]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		stack, _ := parseAmount(m[3])
		p := &hand.Participant{Name: name, Seat: seat, Stack: stack}
		if m[4] != "" {
			p.Bounty, _ = parseAmount(m[4])
		}
		participants = append(participants, p)
	}

	if len(participants) == 0 {
		return nil, nil, false
	}

	byName := make(map[string]*hand.Participant, len(participants))
	for _, p := range participants {
		byName[p.Name] = p
	}

	// Hole cards first, then shows: a player who shows at showdown
	// supersedes any private "dealt to" record.
	for _, line := range lines {
		if m := dealtRe.FindStringSubmatch(line); m != nil {
			if p, ok := byName[m[1]]; ok {
				p.Cards = strings.Fields(m[2])
			}
		}
	}
	for _, line := range lines {
		if m := showsRe.FindStringSubmatch(line); m != nil {
			if p, ok := byName[m[1]]; ok {
				p.Cards = strings.Fields(m[2])
				p.ShowedCards = true
			}
		}
	}

	var leftover []string
	for _, line := range lines {
		if seatRe.MatchString(line) || dealtRe.MatchString(line) || showsRe.MatchString(line) {
			continue
		}
		leftover = append(leftover, line)
	}
	return participants, leftover, true
}
