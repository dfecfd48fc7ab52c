// Package aggregator computes rolling historical statistics per team and
// per player role, and assembles them into flat dataset records.
package aggregator

import (
	"errors"
	"fmt"
	"time"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/config"
	"github.com/lewcab/skill-issue/internal/model"
)

// ErrNoHistory marks a team with zero qualifying historical matches or role
// entries before the cutoff. The enclosing match is skipped, not failed.
var ErrNoHistory = errors.New("no qualifying history")

// ErrIncompleteRoles marks a role window whose per-role entry counts do not
// all equal the configured window size, or that contains an unrecognized
// role. Partial per-role samples are statistically unreliable, so the whole
// snapshot is discarded.
var ErrIncompleteRoles = errors.New("incomplete role history")

// Source executes one remote query. Satisfied by *cargo.Runner.
type Source interface {
	Run(q cargo.Query) ([]cargo.Row, error)
}

// Aggregator computes windowed team and role snapshots from a query source.
type Aggregator struct {
	src          Source
	window       int
	roster       int
	listLimit    int
	cutoffOffset time.Duration
}

// New returns an Aggregator using the given source and collection settings.
func New(src Source, cfg config.CollectConfig) *Aggregator {
	return &Aggregator{
		src:          src,
		window:       cfg.Window,
		roster:       cfg.RosterSize,
		listLimit:    cfg.ListLimit,
		cutoffOffset: cfg.CutoffOffset(),
	}
}

// cutoff shifts the reference time earlier by the configured offset so that
// history too close to the target match (same-day lineup effects) is
// excluded from the window.
func (a *Aggregator) cutoff(ref time.Time) string {
	return cargo.FormatTime(ref.Add(-a.cutoffOffset))
}

// TeamStats computes the rolling snapshot for teamName over up to window
// matches scheduled strictly before the cutoff derived from ref.
//
// Averages are taken over the matches actually found, which may be fewer
// than the window size. Zero matches returns ErrNoHistory; any malformed
// numeric field aborts the whole snapshot, which is never partially filled.
func (a *Aggregator) TeamStats(teamName string, ref time.Time) (model.TeamSnapshot, error) {
	rows, err := a.src.Run(cargo.Query{
		Tables: "MatchSchedule=MS, ScoreboardGames=SG",
		JoinOn: "MS.MatchId=SG.MatchId",
		Fields: []string{
			"MS.DateTime_UTC", "SG.Tournament", "MS.MatchId", "SG.Gamelength_Number", "SG.WinTeam",
			"MS.Team1", "MS.Team2",
			"SG.Team1Gold", "SG.Team2Gold", "SG.Team1Kills", "SG.Team2Kills",
			"SG.Team1Towers", "SG.Team2Towers", "SG.Team1Inhibitors", "SG.Team2Inhibitors",
			"SG.Team1Dragons", "SG.Team2Dragons", "SG.Team1Barons", "SG.Team2Barons",
			"SG.Team1RiftHeralds", "SG.Team2RiftHeralds", "SG.Team1VoidGrubs", "SG.Team2VoidGrubs",
		},
		Where: cargo.And(
			cargo.Or(cargo.Eq("MS.Team1", teamName), cargo.Eq("MS.Team2", teamName)),
			cargo.Lt("MS.DateTime_UTC", a.cutoff(ref)),
		),
		OrderBy: "MS.DateTime_UTC DESC",
		Limit:   a.window,
	})
	if err != nil {
		return model.TeamSnapshot{}, err
	}
	if len(rows) == 0 {
		return model.TeamSnapshot{}, fmt.Errorf("%w: team %s before %s", ErrNoHistory, teamName, a.cutoff(ref))
	}

	var sum model.TeamSnapshot
	for _, row := range rows {
		side := "Team1"
		if row.Get("Team1") != teamName {
			side = "Team2"
		}

		length, err := row.Float("Gamelength Number")
		if err != nil {
			return model.TeamSnapshot{}, fmt.Errorf("team %s: %w", teamName, err)
		}
		if length <= 0 {
			return model.TeamSnapshot{}, fmt.Errorf("team %s: %w: Gamelength Number=%v", teamName, cargo.ErrMalformedField, length)
		}

		stats := [...]struct {
			field string
			dst   *float64
		}{
			{"Gold", &sum.Gold},
			{"Kills", &sum.Kills},
			{"Dragons", &sum.Dragons},
			{"Barons", &sum.Barons},
			{"Towers", &sum.Towers},
			{"Inhibitors", &sum.Inhibitors},
			{"RiftHeralds", &sum.Heralds},
			{"VoidGrubs", &sum.VoidGrubs},
		}
		var gold, kills float64
		for _, s := range stats {
			v, err := row.Float(side + s.field)
			if err != nil {
				return model.TeamSnapshot{}, fmt.Errorf("team %s: %w", teamName, err)
			}
			*s.dst += v
			switch s.field {
			case "Gold":
				gold = v
			case "Kills":
				kills = v
			}
		}

		if row.Get("WinTeam") == teamName {
			sum.WinRate++
		}
		// Per-minute rates use each match's own game length, never a fixed
		// denominator.
		sum.GPM += gold / length
		sum.KPM += kills / length
	}

	n := float64(len(rows))
	return model.TeamSnapshot{
		Matches:    len(rows),
		WinRate:    sum.WinRate / n,
		Gold:       sum.Gold / n,
		GPM:        sum.GPM / n,
		Kills:      sum.Kills / n,
		KPM:        sum.KPM / n,
		Dragons:    sum.Dragons / n,
		Barons:     sum.Barons / n,
		Towers:     sum.Towers / n,
		Inhibitors: sum.Inhibitors / n,
		Heralds:    sum.Heralds / n,
		VoidGrubs:  sum.VoidGrubs / n,
	}, nil
}
