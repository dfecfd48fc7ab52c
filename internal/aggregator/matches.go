package aggregator

import (
	"strconv"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/model"
)

// TournamentMatches lists a tournament's matches in descending scheduled
// time, which is the order records are later appended to the store.
// Matches with no scheduled time or no recorded winner are returned as-is;
// the record builder decides whether they are usable.
func (a *Aggregator) TournamentMatches(tournament string) ([]model.MatchRef, error) {
	rows, err := a.src.Run(cargo.Query{
		Tables: "ScoreboardGames=SG",
		Fields: []string{
			"SG.MatchId", "SG.Tournament", "SG.DateTime_UTC",
			"SG.Team1", "SG.Team2", "SG.Winner",
		},
		Where:   cargo.Eq("SG.Tournament", tournament),
		OrderBy: "SG.DateTime_UTC DESC",
		Limit:   a.listLimit,
	})
	if err != nil {
		return nil, err
	}

	refs := make([]model.MatchRef, 0, len(rows))
	for _, row := range rows {
		ref := model.MatchRef{
			MatchID:    row.Get("MatchId"),
			Tournament: row.Get("Tournament"),
			Team1:      row.Get("Team1"),
			Team2:      row.Get("Team2"),
		}
		if t, err := row.Time("DateTime UTC"); err == nil {
			ref.Scheduled = t
		}
		if side, err := strconv.Atoi(row.Get("Winner")); err == nil {
			ref.WinnerSide = side
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
