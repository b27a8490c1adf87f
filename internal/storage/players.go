package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrPlayerNotFound is returned when a player has no stored hands.
var ErrPlayerNotFound = errors.New("storage: player not found")

// PlayerSummary is a listing row for the players index.
type PlayerSummary struct {
	Name     string  `json:"name"`
	Hands    int     `json:"hands"`
	NetChips float64 `json:"net_chips"`
}

// Players lists every player seen in stored hands with their hand count
// and lifetime net, ordered by hands played.
func (s *Store) Players(ctx context.Context) ([]PlayerSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_name, COUNT(*), COALESCE(SUM(net_profit), 0)
		FROM participants
		GROUP BY player_name
		ORDER BY COUNT(*) DESC, player_name`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var out []PlayerSummary
	for rows.Next() {
		var ps PlayerSummary
		if err := rows.Scan(&ps.Name, &ps.Hands, &ps.NetChips); err != nil {
			return nil, fmt.Errorf("scanning player summary: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// PlayerReport is the full profile for one player.
type PlayerReport struct {
	Name           string  `json:"name"`
	Hands          int     `json:"hands"`
	HandsWon       int     `json:"hands_won"`
	WinRate        float64 `json:"win_rate"`
	NetChips       float64 `json:"net_chips"`
	NetBB          float64 `json:"net_bb"`
	AvgStack       float64 `json:"avg_stack"`
	VPIP           float64 `json:"vpip"`
	PFR            float64 `json:"pfr"`
	AggFactor      float64 `json:"aggression_factor"`
	ShowdownsSeen  int     `json:"showdowns_seen"`
	AggressiveActs int     `json:"-"`
	PassiveActs    int     `json:"-"`
}

// PlayerStats computes the classic profile numbers for one player from
// stored rows. VPIP and PFR count hands, not actions; the aggression
// factor counts actions across all streets.
func (s *Store) PlayerStats(ctx context.Context, name string) (*PlayerReport, error) {
	rep := &PlayerReport{Name: name}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(p.net_profit), 0),
		       COALESCE(SUM(CASE WHEN h.big_blind > 0 THEN p.net_profit / h.big_blind ELSE 0 END), 0),
		       COALESCE(AVG(p.stack), 0),
		       COALESCE(SUM(p.showed_cards), 0)
		FROM participants p
		JOIN hands h ON h.hand_id = p.hand_id
		WHERE p.player_name = ?`, name).Scan(
		&rep.Hands, &rep.NetChips, &rep.NetBB, &rep.AvgStack, &rep.ShowdownsSeen)
	if err != nil {
		return nil, fmt.Errorf("loading player totals for %s: %w", name, err)
	}
	if rep.Hands == 0 {
		return nil, ErrPlayerNotFound
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT hand_id) FROM pot_winners WHERE player_name = ?`,
		name).Scan(&rep.HandsWon)
	if err != nil {
		return nil, fmt.Errorf("loading win count for %s: %w", name, err)
	}
	rep.WinRate = 100 * float64(rep.HandsWon) / float64(rep.Hands)

	var vpipHands, pfrHands int
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(DISTINCT CASE WHEN street = 'preflop'
				AND kind IN ('call', 'bet', 'raise', 'all-in') THEN hand_id END),
			COUNT(DISTINCT CASE WHEN street = 'preflop'
				AND kind IN ('raise', 'all-in') THEN hand_id END)
		FROM actions WHERE player_name = ?`, name).Scan(&vpipHands, &pfrHands)
	if err != nil {
		return nil, fmt.Errorf("loading preflop stats for %s: %w", name, err)
	}

	var aggressive, passive int
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN kind IN ('bet', 'raise', 'all-in') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'call' THEN 1 ELSE 0 END), 0)
		FROM actions WHERE player_name = ?`, name).Scan(&aggressive, &passive)
	if err != nil {
		return nil, fmt.Errorf("loading action counts for %s: %w", name, err)
	}

	rep.VPIP = 100 * float64(vpipHands) / float64(rep.Hands)
	rep.PFR = 100 * float64(pfrHands) / float64(rep.Hands)
	rep.AggressiveActs = aggressive
	rep.PassiveActs = passive
	if passive == 0 {
		rep.AggFactor = float64(aggressive)
	} else {
		rep.AggFactor = float64(aggressive) / float64(passive)
	}
	return rep, nil
}

// PlayerRecentHands lists a player's latest hands with their result.
func (s *Store) PlayerRecentHands(ctx context.Context, name string, limit int) ([]PlayerHandRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.hand_id, h.played_at, h.big_blind, h.pot, p.net_profit
		FROM participants p
		JOIN hands h ON h.hand_id = p.hand_id
		WHERE p.player_name = ?
		ORDER BY h.played_at DESC, h.id DESC
		LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent hands for %s: %w", name, err)
	}
	defer rows.Close()

	var out []PlayerHandRow
	for rows.Next() {
		var row PlayerHandRow
		var playedAt sql.NullTime
		if err := rows.Scan(&row.HandID, &playedAt, &row.BigBlind, &row.Pot, &row.NetProfit); err != nil {
			return nil, fmt.Errorf("scanning player hand row: %w", err)
		}
		if playedAt.Valid {
			row.PlayedAt = playedAt.Time.UTC()
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PlayerHandRow is one entry of a player's hand listing.
type PlayerHandRow struct {
	HandID    string    `json:"hand_id"`
	PlayedAt  time.Time `json:"played_at"`
	BigBlind  float64   `json:"big_blind"`
	Pot       float64   `json:"pot"`
	NetProfit float64   `json:"net_profit"`
}
