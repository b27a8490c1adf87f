package parser

import (
	"strconv"
	"time"
)

// headerTimeLayout matches the vendor's "2025/01/01 12:00:00" stamps.
// Single-digit hours occur in the wild and parse fine with this layout.
const headerTimeLayout = "2006/01/02 15:04:05"

// headerInfo carries everything the first two lines of a hand describe.
type headerInfo struct {
	HandID       string
	TournamentID string
	GameType     string
	SmallBlind   float64
	BigBlind     float64
	DateTime     time.Time
	TableName    string
	MaxSeats     int
	ButtonSeat   int
}

// parseHeader extracts hand identity from line 1 and, when present,
// table info from line 2. Returns the leftover lines starting after the
// last line it claimed. A false result means "not a parseable hand",
// not a hard error.
func parseHeader(lines []string) (headerInfo, []string, bool) {
	if len(lines) < 2 {
		return headerInfo{}, nil, false
	}

	info, ok := parseHeaderLine(lines[0])
	if !ok {
		return headerInfo{}, nil, false
	}

	rest := lines[1:]
	if m := tableRe.FindStringSubmatch(lines[1]); m != nil {
		info.TableName = m[1]
		info.MaxSeats, _ = strconv.Atoi(m[2])
		info.ButtonSeat, _ = strconv.Atoi(m[3])
		rest = lines[2:]
	}
	return info, rest, true
}

func parseHeaderLine(line string) (headerInfo, bool) {
	if m := tournamentHeaderRe.FindStringSubmatch(line); m != nil {
		info := headerInfo{
			HandID:       m[1],
			TournamentID: m[2],
			GameType:     m[3],
		}
		info.SmallBlind, _ = parseAmount(m[4])
		info.BigBlind, _ = parseAmount(m[5])
		info.DateTime = parseHeaderTime(m[6], m[7])
		return info, true
	}
	if m := cashHeaderRe.FindStringSubmatch(line); m != nil {
		info := headerInfo{
			HandID:   m[1],
			GameType: m[2],
		}
		info.SmallBlind, _ = parseAmount(m[3])
		info.BigBlind, _ = parseAmount(m[4])
		info.DateTime = parseHeaderTime(m[5], m[6])
		return info, true
	}
	return headerInfo{}, false
}

// parseHeaderTime returns the zero time when the stamp is malformed;
// a bad timestamp never fails the hand.
func parseHeaderTime(date, clock string) time.Time {
	t, err := time.Parse(headerTimeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}
	}
	return t
}
