package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/model"
	"github.com/lewcab/skill-issue/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintTeamSnapshot prints a team's rolling averages as a one-row table.
func PrintTeamSnapshot(w io.Writer, team string, s model.TeamSnapshot) {
	fmt.Fprintf(w, "\nTeam: %s  |  Matches in window: %d\n\n", team, s.Matches)

	table := newTable(w)
	table.Header("WR", "GOLD", "GPM", "K", "KPM", "DRAGONS", "BARONS", "TOWERS", "INHIBS", "HERALDS", "GRUBS")
	table.Append(
		fmt.Sprintf("%.0f%%", s.WinRate*100),
		fmt.Sprintf("%.0f", s.Gold),
		fmt.Sprintf("%.1f", s.GPM),
		fmt.Sprintf("%.1f", s.Kills),
		fmt.Sprintf("%.2f", s.KPM),
		fmt.Sprintf("%.1f", s.Dragons),
		fmt.Sprintf("%.1f", s.Barons),
		fmt.Sprintf("%.1f", s.Towers),
		fmt.Sprintf("%.1f", s.Inhibitors),
		fmt.Sprintf("%.1f", s.Heralds),
		fmt.Sprintf("%.1f", s.VoidGrubs),
	)
	table.Render()
}

// PrintRoleTable prints per-role rolling averages, one row per role in
// lane order.
func PrintRoleTable(w io.Writer, snap model.RoleSnapshot) {
	table := newTable(w)
	table.Header("ROLE", "K", "D", "A", "KDA", "GOLD", "CS", "DMG")

	for _, role := range model.Roles {
		s, ok := snap[role]
		if !ok {
			continue
		}
		kda := "—"
		if s.Deaths > 0 {
			kda = fmt.Sprintf("%.2f", (s.Kills+s.Assists)/s.Deaths)
		}
		table.Append(
			role.String(),
			fmt.Sprintf("%.1f", s.Kills),
			fmt.Sprintf("%.1f", s.Deaths),
			fmt.Sprintf("%.1f", s.Assists),
			kda,
			fmt.Sprintf("%.0f", s.Gold),
			fmt.Sprintf("%.0f", s.CreepScore),
			fmt.Sprintf("%.0f", s.DamageToChampions),
		)
	}
	table.Render()
}

// PrintLedger prints recorded matches, newest first.
func PrintLedger(w io.Writer, entries []storage.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no matches recorded")
		return
	}

	table := newTable(w)
	table.Header("MATCH", "TOURNAMENT", "PLAYED", "TEAM 1", "TEAM 2", "WINNER", "STORE")

	for _, e := range entries {
		winner := e.Ref.Team1
		if e.Ref.WinnerSide == 2 {
			winner = e.Ref.Team2
		}
		table.Append(
			e.Ref.MatchID,
			e.Ref.Tournament,
			cargo.FormatTime(e.Ref.Scheduled),
			e.Ref.Team1,
			e.Ref.Team2,
			winner,
			e.Store,
		)
	}
	table.Render()
}

// PrintTournamentCounts prints per-tournament collection totals.
func PrintTournamentCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	table := newTable(w)
	table.Header("TOURNAMENT", "MATCHES")
	for _, name := range names {
		table.Append(name, strconv.Itoa(counts[name]))
	}
	table.Render()
}
