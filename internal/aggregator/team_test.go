package aggregator

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lewcab/skill-issue/internal/cargo"
	"github.com/lewcab/skill-issue/internal/config"
)

// fakeSource routes queries by table set and records them for inspection.
type fakeSource struct {
	teamRows  []cargo.Row
	roleRows  []cargo.Row
	matchRows []cargo.Row
	err       error
	queries   []cargo.Query
}

func (f *fakeSource) Run(q cargo.Query) ([]cargo.Row, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	switch {
	case strings.Contains(q.Tables, "ScoreboardPlayers"):
		return f.roleRows, nil
	case strings.Contains(q.Tables, "MatchSchedule"):
		return f.teamRows, nil
	default:
		return f.matchRows, nil
	}
}

var testRef = time.Date(2024, 5, 14, 18, 0, 0, 0, time.UTC)

func testCollectConfig(window int) config.CollectConfig {
	cfg := config.Defaults().Collect
	cfg.Window = window
	return cfg
}

// teamRow builds a scoreboard row where team occupies the Team1 side.
func teamRow(team string, win bool, length, gold, kills float64) cargo.Row {
	row := cargo.Row{
		"MatchId":           "m",
		"Tournament":        "MSI 2024",
		"DateTime UTC":      "2024-05-01 12:00:00",
		"Team1":             team,
		"Team2":             "Opponent",
		"Gamelength Number": fmt.Sprintf("%g", length),
		"Team1Gold":         fmt.Sprintf("%g", gold),
		"Team1Kills":        fmt.Sprintf("%g", kills),
	}
	for _, f := range []string{"Dragons", "Barons", "Towers", "Inhibitors", "RiftHeralds", "VoidGrubs"} {
		row["Team1"+f] = "2"
		row["Team2"+f] = "1"
	}
	row["Team2Gold"] = "50000"
	row["Team2Kills"] = "10"
	if win {
		row["WinTeam"] = team
	} else {
		row["WinTeam"] = "Opponent"
	}
	return row
}

func TestTeamStats_GoldAndGPMExample(t *testing.T) {
	src := &fakeSource{teamRows: []cargo.Row{
		teamRow("T1", true, 30, 8000, 10),
		teamRow("T1", false, 30, 9000, 12),
		teamRow("T1", true, 20, 10000, 14),
	}}
	agg := New(src, testCollectConfig(10))

	snap, err := agg.TeamStats("T1", testRef)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if snap.Gold != 9000 {
		t.Errorf("Gold: want 9000, got %v", snap.Gold)
	}
	wantGPM := (8000.0/30 + 9000.0/30 + 10000.0/20) / 3
	if math.Abs(snap.GPM-wantGPM) > 1e-9 {
		t.Errorf("GPM: want %v, got %v", wantGPM, snap.GPM)
	}
	if math.Abs(wantGPM-322.22) > 0.01 {
		t.Errorf("sanity: expected GPM near 322.22, got %v", wantGPM)
	}
}

func TestTeamStats_PartialHistoryAveragesOverActualCount(t *testing.T) {
	// 3 matches with window 10: averages divide by 3, not 10.
	src := &fakeSource{teamRows: []cargo.Row{
		teamRow("T1", true, 30, 9000, 9),
		teamRow("T1", true, 30, 9000, 9),
		teamRow("T1", false, 30, 9000, 9),
	}}
	agg := New(src, testCollectConfig(10))

	snap, err := agg.TeamStats("T1", testRef)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if snap.Matches != 3 {
		t.Errorf("Matches: want 3, got %d", snap.Matches)
	}
	if math.Abs(snap.WinRate-2.0/3.0) > 1e-9 {
		t.Errorf("WinRate: want 2/3, got %v", snap.WinRate)
	}
	if snap.Kills != 9 {
		t.Errorf("Kills: want 9, got %v", snap.Kills)
	}
}

func TestTeamStats_NoHistory(t *testing.T) {
	src := &fakeSource{}
	agg := New(src, testCollectConfig(10))

	snap, err := agg.TeamStats("Unknown Team", testRef)
	if !errors.Is(err, ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
	if !snap.Empty() {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestTeamStats_MalformedFieldAbortsSnapshot(t *testing.T) {
	good := teamRow("T1", true, 30, 9000, 9)
	bad := teamRow("T1", true, 30, 9000, 9)
	delete(bad, "Team1Towers")

	src := &fakeSource{teamRows: []cargo.Row{good, bad}}
	agg := New(src, testCollectConfig(10))

	_, err := agg.TeamStats("T1", testRef)
	if !errors.Is(err, cargo.ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

func TestTeamStats_ZeroGameLengthIsMalformed(t *testing.T) {
	row := teamRow("T1", true, 30, 9000, 9)
	row["Gamelength Number"] = "0"

	src := &fakeSource{teamRows: []cargo.Row{row}}
	agg := New(src, testCollectConfig(10))

	if _, err := agg.TeamStats("T1", testRef); !errors.Is(err, cargo.ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField for zero game length, got %v", err)
	}
}

func TestTeamStats_ResolvesTeamTwoSide(t *testing.T) {
	// T1 sits on the Team2 side of this scoreboard row.
	row := cargo.Row{
		"Team1":             "Opponent",
		"Team2":             "T1",
		"WinTeam":           "T1",
		"Gamelength Number": "25",
		"Team1Gold":         "40000", "Team2Gold": "60000",
		"Team1Kills": "5", "Team2Kills": "20",
	}
	for _, f := range []string{"Dragons", "Barons", "Towers", "Inhibitors", "RiftHeralds", "VoidGrubs"} {
		row["Team1"+f] = "0"
		row["Team2"+f] = "3"
	}

	src := &fakeSource{teamRows: []cargo.Row{row}}
	agg := New(src, testCollectConfig(10))

	snap, err := agg.TeamStats("T1", testRef)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if snap.Gold != 60000 || snap.Kills != 20 || snap.WinRate != 1 {
		t.Errorf("expected Team2-side stats, got %+v", snap)
	}
	if snap.Dragons != 3 {
		t.Errorf("Dragons: want 3, got %v", snap.Dragons)
	}
}

func TestTeamStats_QueryWindowAndCutoff(t *testing.T) {
	src := &fakeSource{teamRows: []cargo.Row{teamRow("T1", true, 30, 9000, 9)}}
	agg := New(src, testCollectConfig(10))

	if _, err := agg.TeamStats("T1", testRef); err != nil {
		t.Fatalf("TeamStats: %v", err)
	}

	q := src.queries[0]
	if q.Limit != 10 {
		t.Errorf("Limit: want window 10, got %d", q.Limit)
	}
	// Cutoff is 6h before the reference time.
	want := "2024-05-14 12:00:00"
	if !strings.Contains(q.WhereString(), want) {
		t.Errorf("where clause missing cutoff %q: %s", want, q.WhereString())
	}
	if !strings.Contains(q.OrderBy, "DESC") {
		t.Errorf("expected descending order, got %q", q.OrderBy)
	}
}
