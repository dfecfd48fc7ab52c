package aggregator

import (
	"fmt"
	"time"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/model"
)

// RoleStats computes per-role rolling averages for teamName over the most
// recent window*roster role-tagged scoreboard entries before the cutoff
// derived from ref.
//
// Unlike TeamStats, the window is strict: every one of the five roles must
// appear exactly window times or the whole snapshot is invalid
// (ErrIncompleteRoles). An unrecognized role likewise invalidates the
// snapshot. Sums are divided by the window size, which completeness
// guarantees equals each observed count.
func (a *Aggregator) RoleStats(teamName string, ref time.Time) (model.RoleSnapshot, error) {
	rows, err := a.src.Run(cargo.Query{
		Tables: "ScoreboardPlayers=SP",
		Fields: []string{
			"SP.Link", "SP.Role", "SP.DateTime_UTC",
			"SP.Kills", "SP.Deaths", "SP.Assists",
			"SP.Gold", "SP.CS", "SP.DamageToChampions",
		},
		Where: cargo.And(
			cargo.Eq("SP.Team", teamName),
			cargo.Lt("SP.DateTime_UTC", a.cutoff(ref)),
		),
		OrderBy: "SP.DateTime_UTC DESC",
		Limit:   a.window * a.roster,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: role entries for team %s before %s", ErrNoHistory, teamName, a.cutoff(ref))
	}

	sums := make(map[model.Role]model.RoleStats, len(model.Roles))
	counts := make(map[model.Role]int, len(model.Roles))
	for _, row := range rows {
		role, ok := model.ParseRole(row.Get("Role"))
		if !ok {
			return nil, fmt.Errorf("%w: unrecognized role %q for team %s", ErrIncompleteRoles, row.Get("Role"), teamName)
		}

		var vals [6]float64
		for i, field := range [...]string{"Kills", "Deaths", "Assists", "Gold", "CS", "DamageToChampions"} {
			v, err := row.Float(field)
			if err != nil {
				return nil, fmt.Errorf("team %s role %s: %w", teamName, role, err)
			}
			vals[i] = v
		}

		s := sums[role]
		s.Kills += vals[0]
		s.Deaths += vals[1]
		s.Assists += vals[2]
		s.Gold += vals[3]
		s.CreepScore += vals[4]
		s.DamageToChampions += vals[5]
		sums[role] = s
		counts[role]++
	}

	// Strict completeness: each of the five roles must be counted exactly
	// window times, otherwise role-specific averages are unreliable.
	for _, role := range model.Roles {
		if counts[role] != a.window {
			return nil, fmt.Errorf("%w: team %s role %s has %d of %d entries",
				ErrIncompleteRoles, teamName, role, counts[role], a.window)
		}
	}

	w := float64(a.window)
	snap := make(model.RoleSnapshot, len(model.Roles))
	for _, role := range model.Roles {
		s := sums[role]
		snap[role] = model.RoleStats{
			Kills:             s.Kills / w,
			Deaths:            s.Deaths / w,
			Assists:           s.Assists / w,
			Gold:              s.Gold / w,
			CreepScore:        s.CreepScore / w,
			DamageToChampions: s.DamageToChampions / w,
		}
	}
	return snap, nil
}
