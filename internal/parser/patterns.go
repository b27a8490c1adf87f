package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// The vendor's line grammars. These are the stable interface of the
// format and must be preserved bit-exact across releases.
var (
	// Header for tournament hands. Blinds live in the Level token, not
	// the header clause; the buy-in clause is optional.
	tournamentHeaderRe = regexp.MustCompile(
		`PokerStars (?:Game|Hand) #(\d+): ` +
			`Tournament #(\d+), ` +
			`(?:\$[\d.]+\+\$[\d.]+(?:\+\$[\d.]+)? [A-Z]{3} )?` +
			`(.*?) - ` +
			`Level [XVI]+ \((\d+)/(\d+)\) - ` +
			`(\d{4}/\d{2}/\d{2}) (\d{1,2}:\d{2}:\d{2}) (?:ET|UTC|WET)`)

	// Header for cash-game hands. Blinds are embedded directly.
	cashHeaderRe = regexp.MustCompile(
		`PokerStars (?:Game|Hand) #(\d+): ` +
			`(.*?) \(\$?([\d.]+)/\$?([\d.]+)(?: [A-Z]{3})?\) - ` +
			`(\d{4}/\d{2}/\d{2}) (\d{1,2}:\d{2}:\d{2}) (?:ET|UTC|WET)`)

	tableRe = regexp.MustCompile(`Table '([^']+)' (\d+)-max Seat #(\d+) is the button`)

	seatRe  = regexp.MustCompile(`Seat (\d+): (.*?) \(\$?([\d,]+(?:\.\d+)?) in chips(?:, \$?([\d.]+) bounty)?\)`)
	dealtRe = regexp.MustCompile(`Dealt to (.*?) \[(.*?)\]`)
	showsRe = regexp.MustCompile(`(.*?): shows \[(.*?)\]`)

	anteRe       = regexp.MustCompile(`(.*?): posts the ante (\d+)`)
	smallBlindRe = regexp.MustCompile(`(.*?): posts small blind (\d+)`)
	bigBlindRe   = regexp.MustCompile(`(.*?): posts big blind (\d+)`)

	foldRe  = regexp.MustCompile(`(.*?): folds`)
	checkRe = regexp.MustCompile(`(.*?): checks`)
	callRe  = regexp.MustCompile(`(.*?): calls \$?([\d,]+(?:\.\d+)?)`)
	betRe   = regexp.MustCompile(`(.*?): bets \$?([\d,]+(?:\.\d+)?)`)
	raiseRe = regexp.MustCompile(`(.*?): raises \$?([\d,]+(?:\.\d+)?) to \$?([\d,]+(?:\.\d+)?)`)
	allInRe = regexp.MustCompile(`(.*?): (calls|bets|raises) \$?([\d,]+(?:\.\d+)?)(?:.* to \$?([\d,]+(?:\.\d+)?))?.*and is all-in`)

	totalPotRe = regexp.MustCompile(`Total pot \$?([\d,]+(?:\.\d+)?)`)
	rakeRe     = regexp.MustCompile(`\|\s*Rake \$?([\d,]+(?:\.\d+)?)`)
	mainPotRe  = regexp.MustCompile(`Main pot \$?([\d,]+(?:\.\d+)?)\.?`)
	sidePotRe  = regexp.MustCompile(`Side pot(?:-\d+)? \$?([\d,]+(?:\.\d+)?)\.?`)

	potCollectionRe = regexp.MustCompile(`(.*?) collected \(?\$?([\d,]+(?:\.\d+)?)\)? from pot`)
	uncalledBetRe   = regexp.MustCompile(`Uncalled bet \(\$?([\d,]+(?:\.\d+)?)\) returned to (.*)`)

	seatWonRe       = regexp.MustCompile(`Seat \d+: (.*?)(?:\s+\([^)]+\))? showed \[[^\]]+\] and won \(?(\$?[\d,]+(?:\.\d+)?)\)?(?:\s+from\s+(main|side)(?: pot)?(?:-(\d+))?)?`)
	seatWonNoShowRe = regexp.MustCompile(`Seat \d+: (.*?)(?:\s+\([^)]+\))? won \(?(\$?[\d,]+(?:\.\d+)?)\)?(?:\s+from\s+(main|side)(?: pot)?(?:-(\d+))?)?`)
	seatCollectedRe = regexp.MustCompile(`Seat \d+: (.*?)(?:\s+\([^)]+\))? collected \(?(\$?[\d,]+(?:\.\d+)?)\)?`)

	boardRe = regexp.MustCompile(`Board \[(.*?)\]`)
)

// Street markers. Marker lines are consumed and never treated as actions.
const (
	holeCardsMarker = "*** HOLE CARDS ***"
	flopMarker      = "*** FLOP ***"
	turnMarker      = "*** TURN ***"
	riverMarker     = "*** RIVER ***"
	showdownMarker  = "*** SHOW DOWN ***"
	summaryMarker   = "*** SUMMARY ***"
)

// allInSuffix is the free-text all-in qualifier layered on top of
// call/bet/raise lines.
const allInSuffix = "and is all-in"

// parseAmount converts a monetary token, tolerating a currency prefix
// and thousands separators.
func parseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}
