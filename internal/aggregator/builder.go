package aggregator

import (
	"errors"
	"fmt"
	"time"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/model"
)

// ErrUnusableMatch marks a match reference whose identity or result fields
// are unusable for labelling (missing teams, missing winner).
var ErrUnusableMatch = errors.New("unusable match")

// Builder joins a match's identity fields with both teams' aggregated
// snapshots into one flat record.
type Builder struct {
	agg *Aggregator
	now func() time.Time
}

// NewBuilder returns a record builder over the given aggregator.
func NewBuilder(agg *Aggregator) *Builder {
	return &Builder{agg: agg, now: time.Now}
}

// Build assembles the flat record for one match. The record is fully
// populated or not produced at all: if either side's team or role snapshot
// cannot be computed, Build returns an error that IsSkip classifies as
// non-fatal, and the caller simply does not append anything.
//
// Column order is fixed here and becomes the store header on first write:
// identity fields, winner side, then side-prefixed team and role stats for
// team 1 followed by team 2.
func (b *Builder) Build(ref model.MatchRef) (*model.Record, error) {
	if ref.MatchID == "" || ref.Team1 == "" || ref.Team2 == "" {
		return nil, fmt.Errorf("%w: missing identity fields", ErrUnusableMatch)
	}
	if ref.WinnerSide != 1 && ref.WinnerSide != 2 {
		return nil, fmt.Errorf("%w: no recorded winner", ErrUnusableMatch)
	}

	// Live or upcoming matches have no scheduled time yet; fall back to the
	// processing time so the history window is still well defined.
	refTime := ref.Scheduled
	if refTime.IsZero() {
		refTime = b.now()
	}

	team1, err := b.agg.TeamStats(ref.Team1, refTime)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", ref.Team1, err)
	}
	roles1, err := b.agg.RoleStats(ref.Team1, refTime)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", ref.Team1, err)
	}
	team2, err := b.agg.TeamStats(ref.Team2, refTime)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", ref.Team2, err)
	}
	roles2, err := b.agg.RoleStats(ref.Team2, refTime)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", ref.Team2, err)
	}

	rec := &model.Record{}
	rec.Append("MatchId", ref.MatchID)
	rec.Append("Tournament", ref.Tournament)
	rec.Append("DateTime_UTC", cargo.FormatTime(refTime))
	rec.Append("Team1", ref.Team1)
	rec.Append("Team2", ref.Team2)
	rec.AppendInt("Winner", ref.WinnerSide)
	team1.AppendTo(rec, "t1")
	roles1.AppendTo(rec, "t1")
	team2.AppendTo(rec, "t2")
	roles2.AppendTo(rec, "t2")
	return rec, nil
}

// IsSkip reports whether err is a per-match condition (missing or
// incomplete history, malformed fields, unusable reference) that skips the
// match without failing the run. Transport errors are not skippable, an
// exhausted rate-limit retry included.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoHistory) ||
		errors.Is(err, ErrIncompleteRoles) ||
		errors.Is(err, ErrUnusableMatch) ||
		errors.Is(err, cargo.ErrMalformedField)
}
