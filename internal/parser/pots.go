package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/pokerhub/internal/hand"
)

// potResult is everything the pot/winner stage extracts.
type potResult struct {
	Pot            float64
	Rake           float64
	Pots           []*hand.Pot
	Winners        []hand.Winner
	Board          []string
	ReturnedBets   []hand.ReturnedBet
	PotCollections []hand.PotCollection
}

// parsePots runs two passes: a whole-input pass for pot collections and
// uncalled-bet returns (they occur both in the body and the summary),
// then a summary pass for the pot structure, winner phrasings and the
// board.
func (p *Parser) parsePots(lines []string) potResult {
	var res potResult

	for _, line := range lines {
		if m := potCollectionRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			amount, err := parseAmount(m[2])
			if err != nil {
				p.logger.Warn().Str("line", line).Err(err).Msg("unparseable pot collection")
				continue
			}
			res.PotCollections = append(res.PotCollections, hand.PotCollection{PlayerName: name, Amount: amount})
			res.addWinner(name, amount, "", "")
		}
		if m := uncalledBetRe.FindStringSubmatch(line); m != nil {
			amount, err := parseAmount(m[1])
			if err != nil {
				p.logger.Warn().Str("line", line).Err(err).Msg("unparseable uncalled bet")
				continue
			}
			res.recordReturnedBet(strings.TrimSpace(m[2]), amount)
		}
	}

	summaryIdx := -1
	for i, line := range lines {
		if strings.Contains(line, summaryMarker) {
			summaryIdx = i
			break
		}
	}
	if summaryIdx < 0 {
		p.logger.Warn().Msg("no summary section found in hand")
		return res
	}

	p.parseSummary(lines[summaryIdx:], &res)
	return res
}

func (p *Parser) parseSummary(lines []string, res *potResult) {
	structureLine := ""
	for _, line := range lines {
		if strings.Contains(line, "Total pot") && !strings.Contains(line, summaryMarker) {
			structureLine = line
			break
		}
	}
	if structureLine != "" {
		p.parsePotStructure(structureLine, res)
	}
	// No explicit structure but a known total still means one pot.
	if len(res.Pots) == 0 && res.Pot > 0 {
		res.Pots = append(res.Pots, &hand.Pot{Type: hand.MainPot, Amount: res.Pot})
	}

	for _, line := range lines {
		if strings.Contains(line, summaryMarker) || (structureLine != "" && line == structureLine) {
			continue
		}

		if m := uncalledBetRe.FindStringSubmatch(line); m != nil {
			if amount, err := parseAmount(m[1]); err == nil {
				res.recordReturnedBet(strings.TrimSpace(m[2]), amount)
			}
			continue
		}
		if m := seatWonRe.FindStringSubmatch(line); m != nil {
			if amount, err := parseAmount(m[2]); err == nil {
				res.addWinner(strings.TrimSpace(m[1]), amount, m[3], m[4])
			}
			continue
		}
		if m := seatWonNoShowRe.FindStringSubmatch(line); m != nil {
			if amount, err := parseAmount(m[2]); err == nil {
				res.addWinner(strings.TrimSpace(m[1]), amount, m[3], m[4])
			}
			continue
		}
		if m := seatCollectedRe.FindStringSubmatch(line); m != nil {
			// By convention a bare "collected (amt)" goes to the main
			// pot. Not recorded as a pot collection: the body-text pass
			// already has it and double-counting would skew the walk
			// detector.
			if amount, err := parseAmount(m[2]); err == nil {
				res.addWinner(strings.TrimSpace(m[1]), amount, "main", "")
			}
			continue
		}
		if m := boardRe.FindStringSubmatch(line); m != nil {
			res.Board = strings.Fields(m[1])
			continue
		}
	}

	if len(res.Pots) > 1 {
		sum := 0.0
		for _, pot := range res.Pots {
			sum += pot.Amount
		}
		if drift := sum - res.Pot; math.Abs(drift) > amountTolerance {
			p.logger.Warn().
				Float64("total_pot", res.Pot).
				Float64("pot_sum", sum).
				Float64("drift", drift).
				Msg("pot amounts do not sum to total pot")
		}
	}
}

// parsePotStructure reads "Total pot T [Main pot M. Side pot S. ...] | Rake R".
// Absence of an explicit main-pot token means exactly one pot exists,
// equal to the total.
func (p *Parser) parsePotStructure(line string, res *potResult) {
	if m := totalPotRe.FindStringSubmatch(line); m != nil {
		res.Pot, _ = parseAmount(m[1])
	} else {
		p.logger.Warn().Str("line", line).Msg("total pot missing from structure line")
	}
	if m := rakeRe.FindStringSubmatch(line); m != nil {
		res.Rake, _ = parseAmount(m[1])
	}

	res.Pots = nil
	if m := mainPotRe.FindStringSubmatch(line); m != nil {
		amount, _ := parseAmount(m[1])
		res.Pots = append(res.Pots, &hand.Pot{Type: hand.MainPot, Amount: amount})
		for i, sm := range sidePotRe.FindAllStringSubmatch(line, -1) {
			amount, _ := parseAmount(sm[1])
			res.Pots = append(res.Pots, &hand.Pot{
				Type:   fmt.Sprintf("side-%d", i+1),
				Amount: amount,
			})
		}
		return
	}
	if res.Pot > 0 {
		res.Pots = append(res.Pots, &hand.Pot{Type: hand.MainPot, Amount: res.Pot})
	}
}

// recordReturnedBet appends a returned bet, deduplicated by
// player+amount since the same line can appear in both passes.
func (res *potResult) recordReturnedBet(name string, amount float64) {
	for _, rb := range res.ReturnedBets {
		if rb.PlayerName == name && math.Abs(rb.Amount-amount) < amountTolerance {
			return
		}
	}
	res.ReturnedBets = append(res.ReturnedBets, hand.ReturnedBet{PlayerName: name, Amount: amount})
}

// addWinner records a winner in the flat list and routes it to a pot.
// Routing: explicit pot token when present; otherwise the sole existing
// pot; otherwise a main pot materialized on the spot. Insertion is
// idempotent per (player, amount) per list.
func (res *potResult) addWinner(name string, amount float64, potKind, potNumber string) {
	if !containsWinner(res.Winners, name, amount) {
		res.Winners = append(res.Winners, hand.Winner{PlayerName: name, Amount: amount})
	}

	potType := ""
	switch {
	case potKind == "main":
		potType = hand.MainPot
	case potKind == "side" && potNumber != "":
		potType = "side-" + potNumber
	case len(res.Pots) == 1:
		potType = res.Pots[0].Type
	default:
		potType = hand.MainPot
	}

	var target *hand.Pot
	for _, pot := range res.Pots {
		if pot.Type == potType {
			target = pot
			break
		}
	}
	if target == nil {
		switch {
		case len(res.Pots) == 0:
			amt := res.Pot
			if amt == 0 {
				amt = amount
			}
			target = &hand.Pot{Type: hand.MainPot, Amount: amt}
		case strings.HasPrefix(potType, "side-"):
			// Winner referenced a side pot the structure line never
			// declared; the winner's amount is the best guess.
			target = &hand.Pot{Type: potType, Amount: amount}
		default:
			target = &hand.Pot{Type: hand.MainPot, Amount: amount}
		}
		res.Pots = append(res.Pots, target)
	}

	if !containsWinner(target.Winners, name, amount) {
		target.Winners = append(target.Winners, hand.Winner{PlayerName: name, Amount: amount})
	}
}

func containsWinner(winners []hand.Winner, name string, amount float64) bool {
	for _, w := range winners {
		if w.PlayerName == name && w.Amount == amount {
			return true
		}
	}
	return false
}
