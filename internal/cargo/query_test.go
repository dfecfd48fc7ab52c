package cargo

import (
	"testing"
	"time"
)

func TestWhereString_Comparison(t *testing.T) {
	q := Query{Where: Eq("SG.Tournament", "MSI 2024")}
	got := q.WhereString()
	want := "SG.Tournament='MSI 2024'"
	if got != want {
		t.Errorf("WhereString: want %q, got %q", want, got)
	}
}

func TestWhereString_Tree(t *testing.T) {
	q := Query{
		Where: And(
			Or(Eq("MS.Team1", "G2 Esports"), Eq("MS.Team2", "G2 Esports")),
			Lt("MS.DateTime_UTC", "2024-05-01 12:00:00"),
		),
	}
	got := q.WhereString()
	want := "((MS.Team1='G2 Esports' OR MS.Team2='G2 Esports') AND MS.DateTime_UTC<'2024-05-01 12:00:00')"
	if got != want {
		t.Errorf("WhereString: want %q, got %q", want, got)
	}
}

func TestWhereString_QuoteEscaping(t *testing.T) {
	q := Query{Where: Eq("MS.Team1", "Papara SuperMassive'")}
	got := q.WhereString()
	want := "MS.Team1='Papara SuperMassive'''"
	if got != want {
		t.Errorf("WhereString: want %q, got %q", want, got)
	}
}

func TestWhereString_Empty(t *testing.T) {
	if got := (Query{}).WhereString(); got != "" {
		t.Errorf("expected empty where for nil predicate, got %q", got)
	}
}

func TestRowFloat(t *testing.T) {
	row := Row{"Team1Gold": "54321", "Gamelength Number": "32.5", "Bad": "n/a"}

	v, err := row.Float("Team1Gold")
	if err != nil || v != 54321 {
		t.Errorf("Float(Team1Gold): want 54321, got %v (err=%v)", v, err)
	}
	v, err = row.Float("Gamelength Number")
	if err != nil || v != 32.5 {
		t.Errorf("Float(Gamelength Number): want 32.5, got %v (err=%v)", v, err)
	}

	if _, err := row.Float("Bad"); err == nil {
		t.Error("Float(Bad): expected error for unparsable value")
	}
	if _, err := row.Float("Missing"); err == nil {
		t.Error("Float(Missing): expected error for absent key")
	}
}

func TestRowTime_RoundTrip(t *testing.T) {
	ref := time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)
	row := Row{"DateTime UTC": FormatTime(ref)}

	got, err := row.Time("DateTime UTC")
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if !got.Equal(ref) {
		t.Errorf("Time: want %v, got %v", ref, got)
	}

	if _, err := row.Time("Missing"); err == nil {
		t.Error("Time(Missing): expected error for absent key")
	}
}
