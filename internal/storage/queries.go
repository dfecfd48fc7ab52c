package storage

import (
	"database/sql"
	"time"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/model"
)

// Entry is one ledger row: a match that has been written to a dataset store.
type Entry struct {
	Ref       model.MatchRef
	Store     string
	WrittenAt time.Time
}

// MatchExists returns true if a match with the given id is already recorded.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordMatch records that a match row was written to the given store.
// Uses INSERT OR REPLACE for idempotency.
func (db *DB) RecordMatch(ref model.MatchRef, store string) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(match_id, tournament, played_at, team1, team2, winner, store, written_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ref.MatchID, ref.Tournament, cargo.FormatTime(ref.Scheduled),
		ref.Team1, ref.Team2, ref.WinnerSide,
		store, cargo.FormatTime(time.Now().UTC()),
	)
	return err
}

// ListMatches returns all recorded matches, newest first. An empty
// tournament lists everything.
func (db *DB) ListMatches(tournament string) ([]Entry, error) {
	query := `
		SELECT match_id, tournament, played_at, team1, team2, winner, store, written_at
		FROM matches`
	args := []any{}
	if tournament != "" {
		query += " WHERE tournament = ?"
		args = append(args, tournament)
	}
	query += " ORDER BY played_at DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var playedAt, writtenAt string
		if err := rows.Scan(&e.Ref.MatchID, &e.Ref.Tournament, &playedAt,
			&e.Ref.Team1, &e.Ref.Team2, &e.Ref.WinnerSide,
			&e.Store, &writtenAt); err != nil {
			return nil, err
		}
		e.Ref.Scheduled, _ = cargo.ParseTime(playedAt)
		e.WrittenAt, _ = cargo.ParseTime(writtenAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetMatch returns the ledger entry for a match id, or nil if absent.
func (db *DB) GetMatch(matchID string) (*Entry, error) {
	var e Entry
	var playedAt, writtenAt string
	err := db.conn.QueryRow(`
		SELECT match_id, tournament, played_at, team1, team2, winner, store, written_at
		FROM matches WHERE match_id = ?`, matchID).
		Scan(&e.Ref.MatchID, &e.Ref.Tournament, &playedAt,
			&e.Ref.Team1, &e.Ref.Team2, &e.Ref.WinnerSide,
			&e.Store, &writtenAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Ref.Scheduled, _ = cargo.ParseTime(playedAt)
	e.WrittenAt, _ = cargo.ParseTime(writtenAt)
	return &e, nil
}

// TournamentCounts returns the number of recorded matches per tournament.
func (db *DB) TournamentCounts() (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT tournament, COUNT(1) FROM matches GROUP BY tournament`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var tournament string
		var n int
		if err := rows.Scan(&tournament, &n); err != nil {
			return nil, err
		}
		out[tournament] = n
	}
	return out, rows.Err()
}
