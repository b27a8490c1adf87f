package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lox/pokerhub/internal/hand"
)

// ErrHandNotFound is returned when a hand id is not in the database.
var ErrHandNotFound = errors.New("storage: hand not found")

// SaveHand persists a parsed hand and all its child rows in one
// transaction. Returns false without error when the hand id is already
// stored; re-importing a file must not duplicate rows.
func (s *Store) SaveHand(ctx context.Context, rec *hand.Record) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var playedAt any
	if !rec.DateTime.IsZero() {
		playedAt = rec.DateTime.UTC()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO hands
			(hand_id, tournament_id, game_type, played_at, small_blind, big_blind,
			 ante, pot, rake, board, table_name, max_seats, button_seat)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.HandID, rec.TournamentID, rec.GameType, playedAt, rec.SmallBlind,
		rec.BigBlind, rec.Ante, rec.Pot, rec.Rake, strings.Join(rec.Board, " "),
		rec.TableName, rec.MaxSeats, rec.ButtonSeat)
	if err != nil {
		return false, fmt.Errorf("inserting hand %s: %w", rec.HandID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.logger.Debug().Str("hand_id", rec.HandID).Msg("hand already stored, skipping")
		return false, nil
	}

	for _, p := range rec.Participants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO participants
				(hand_id, player_name, seat, stack, bounty, cards, showed_cards,
				 is_button, is_small_blind, is_big_blind, net_profit)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.HandID, p.Name, p.Seat, p.Stack, p.Bounty,
			strings.Join(p.Cards, " "), p.ShowedCards,
			p.IsButton, p.IsSmallBlind, p.IsBigBlind, p.NetProfit)
		if err != nil {
			return false, fmt.Errorf("inserting participant %s: %w", p.Name, err)
		}
	}

	for _, a := range rec.Actions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO actions
				(hand_id, sequence, player_name, kind, street, amount, has_amount, all_in)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.HandID, a.Sequence, a.PlayerName, string(a.Kind), string(a.Street),
			a.Amount, a.HasAmount, a.AllIn)
		if err != nil {
			return false, fmt.Errorf("inserting action %d: %w", a.Sequence, err)
		}
	}

	for _, pot := range rec.Pots {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pots (hand_id, pot_type, amount) VALUES (?, ?, ?)`,
			rec.HandID, pot.Type, pot.Amount)
		if err != nil {
			return false, fmt.Errorf("inserting pot %s: %w", pot.Type, err)
		}
		for _, w := range pot.Winners {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO pot_winners (hand_id, pot_type, player_name, amount) VALUES (?, ?, ?, ?)`,
				rec.HandID, pot.Type, w.PlayerName, w.Amount)
			if err != nil {
				return false, fmt.Errorf("inserting pot winner %s: %w", w.PlayerName, err)
			}
		}
	}

	for _, rb := range rec.ReturnedBets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO returned_bets (hand_id, player_name, amount) VALUES (?, ?, ?)`,
			rec.HandID, rb.PlayerName, rb.Amount)
		if err != nil {
			return false, fmt.Errorf("inserting returned bet for %s: %w", rb.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing hand %s: %w", rec.HandID, err)
	}
	return true, nil
}

// HandCount returns the number of stored hands.
func (s *Store) HandCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hands`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting hands: %w", err)
	}
	return n, nil
}

// GetHand loads a single hand with its participants. Child action and
// pot rows are loaded too.
func (s *Store) GetHand(ctx context.Context, handID string) (*hand.Record, error) {
	rec := &hand.Record{}
	var playedAt sql.NullTime
	var board string
	err := s.db.QueryRowContext(ctx, `
		SELECT hand_id, tournament_id, game_type, played_at, small_blind,
		       big_blind, ante, pot, rake, board, table_name, max_seats, button_seat
		FROM hands WHERE hand_id = ?`, handID).Scan(
		&rec.HandID, &rec.TournamentID, &rec.GameType, &playedAt, &rec.SmallBlind,
		&rec.BigBlind, &rec.Ante, &rec.Pot, &rec.Rake, &board, &rec.TableName,
		&rec.MaxSeats, &rec.ButtonSeat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading hand %s: %w", handID, err)
	}
	if playedAt.Valid {
		rec.DateTime = playedAt.Time.UTC()
	}
	rec.Board = splitCards(board)

	if rec.Participants, err = s.loadParticipants(ctx, handID); err != nil {
		return nil, err
	}
	if rec.Actions, err = s.loadActions(ctx, handID); err != nil {
		return nil, err
	}
	if rec.Pots, err = s.loadPots(ctx, handID); err != nil {
		return nil, err
	}
	for _, pot := range rec.Pots {
		rec.Winners = append(rec.Winners, pot.Winners...)
	}
	return rec, nil
}

// HandSummary is a listing row for recent-hands queries.
type HandSummary struct {
	HandID       string    `json:"hand_id"`
	TournamentID string    `json:"tournament_id,omitempty"`
	GameType     string    `json:"game_type"`
	PlayedAt     time.Time `json:"played_at"`
	BigBlind     float64   `json:"big_blind"`
	Pot          float64   `json:"pot"`
	Players      int       `json:"players"`
}

// RecentHands returns the most recently played hands, newest first.
func (s *Store) RecentHands(ctx context.Context, limit int) ([]HandSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.hand_id, h.tournament_id, h.game_type, h.played_at, h.big_blind, h.pot,
		       (SELECT COUNT(*) FROM participants p WHERE p.hand_id = h.hand_id)
		FROM hands h
		ORDER BY h.played_at DESC, h.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent hands: %w", err)
	}
	defer rows.Close()

	var out []HandSummary
	for rows.Next() {
		var hs HandSummary
		var playedAt sql.NullTime
		if err := rows.Scan(&hs.HandID, &hs.TournamentID, &hs.GameType, &playedAt,
			&hs.BigBlind, &hs.Pot, &hs.Players); err != nil {
			return nil, fmt.Errorf("scanning hand summary: %w", err)
		}
		if playedAt.Valid {
			hs.PlayedAt = playedAt.Time.UTC()
		}
		out = append(out, hs)
	}
	return out, rows.Err()
}

func (s *Store) loadParticipants(ctx context.Context, handID string) ([]*hand.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_name, seat, stack, bounty, cards, showed_cards,
		       is_button, is_small_blind, is_big_blind, net_profit
		FROM participants WHERE hand_id = ? ORDER BY seat`, handID)
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w", err)
	}
	defer rows.Close()

	var out []*hand.Participant
	for rows.Next() {
		p := &hand.Participant{}
		var cards string
		if err := rows.Scan(&p.Name, &p.Seat, &p.Stack, &p.Bounty, &cards,
			&p.ShowedCards, &p.IsButton, &p.IsSmallBlind, &p.IsBigBlind,
			&p.NetProfit); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		p.Cards = splitCards(cards)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) loadActions(ctx context.Context, handID string) ([]hand.Action, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sequence, player_name, kind, street, amount, has_amount, all_in
		FROM actions WHERE hand_id = ? ORDER BY sequence`, handID)
	if err != nil {
		return nil, fmt.Errorf("loading actions: %w", err)
	}
	defer rows.Close()

	var out []hand.Action
	for rows.Next() {
		var a hand.Action
		var kind, street string
		if err := rows.Scan(&a.Sequence, &a.PlayerName, &kind, &street,
			&a.Amount, &a.HasAmount, &a.AllIn); err != nil {
			return nil, fmt.Errorf("scanning action: %w", err)
		}
		a.Kind = hand.ActionKind(kind)
		a.Street = hand.Street(street)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) loadPots(ctx context.Context, handID string) ([]*hand.Pot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pot_type, amount FROM pots WHERE hand_id = ? ORDER BY id`, handID)
	if err != nil {
		return nil, fmt.Errorf("loading pots: %w", err)
	}
	defer rows.Close()

	var out []*hand.Pot
	for rows.Next() {
		pot := &hand.Pot{}
		if err := rows.Scan(&pot.Type, &pot.Amount); err != nil {
			return nil, fmt.Errorf("scanning pot: %w", err)
		}
		out = append(out, pot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, pot := range out {
		wrows, err := s.db.QueryContext(ctx, `
			SELECT player_name, amount FROM pot_winners
			WHERE hand_id = ? AND pot_type = ? ORDER BY id`, handID, pot.Type)
		if err != nil {
			return nil, fmt.Errorf("loading pot winners: %w", err)
		}
		for wrows.Next() {
			var w hand.Winner
			if err := wrows.Scan(&w.PlayerName, &w.Amount); err != nil {
				wrows.Close()
				return nil, fmt.Errorf("scanning pot winner: %w", err)
			}
			pot.Winners = append(pot.Winners, w)
		}
		if err := wrows.Err(); err != nil {
			wrows.Close()
			return nil, err
		}
		wrows.Close()
	}
	return out, nil
}

func splitCards(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
