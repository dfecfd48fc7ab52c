package model

import (
	"strconv"
	"time"
)

// Role is one of the five fixed player positions on a team.
type Role int

const (
	RoleUnknown Role = iota
	RoleTop
	RoleJungle
	RoleMid
	RoleBot
	RoleSupport
)

// Roles lists the five valid roles in lane order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleBot, RoleSupport}

func (r Role) String() string {
	switch r {
	case RoleTop:
		return "Top"
	case RoleJungle:
		return "Jungle"
	case RoleMid:
		return "Mid"
	case RoleBot:
		return "Bot"
	case RoleSupport:
		return "Support"
	default:
		return "?"
	}
}

// Key returns the short lowercase tag used in flat column names.
func (r Role) Key() string {
	switch r {
	case RoleTop:
		return "top"
	case RoleJungle:
		return "jng"
	case RoleMid:
		return "mid"
	case RoleBot:
		return "bot"
	case RoleSupport:
		return "sup"
	default:
		return "unk"
	}
}

// ParseRole maps a scoreboard role string to a Role.
// Returns RoleUnknown, false for anything outside the fixed five-role set.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "Top":
		return RoleTop, true
	case "Jungle":
		return RoleJungle, true
	case "Mid":
		return RoleMid, true
	case "Bot":
		return RoleBot, true
	case "Support":
		return RoleSupport, true
	default:
		return RoleUnknown, false
	}
}

// MatchRef identifies one match as returned by the tournament listing query.
type MatchRef struct {
	MatchID    string
	Tournament string
	Scheduled  time.Time // zero when the match has no scheduled time yet
	Team1      string
	Team2      string
	WinnerSide int // 1 or 2; 0 when unknown
}

// TeamSnapshot holds a team's rolling averages over the matches found in its
// historical window. Every field is an average over exactly Matches samples.
type TeamSnapshot struct {
	Matches    int // number of matches averaged; 0 means "no data"
	WinRate    float64
	Gold       float64
	GPM        float64
	Kills      float64
	KPM        float64
	Dragons    float64
	Barons     float64
	Towers     float64
	Inhibitors float64
	Heralds    float64
	VoidGrubs  float64
}

// Empty reports whether the snapshot carries no data and must be treated as
// a skip condition rather than a zero-filled record.
func (s TeamSnapshot) Empty() bool { return s.Matches == 0 }

// teamStatOrder fixes the column order of flattened team stats.
var teamStatOrder = []struct {
	key string
	get func(TeamSnapshot) float64
}{
	{"wr", func(s TeamSnapshot) float64 { return s.WinRate }},
	{"gold", func(s TeamSnapshot) float64 { return s.Gold }},
	{"gpm", func(s TeamSnapshot) float64 { return s.GPM }},
	{"kills", func(s TeamSnapshot) float64 { return s.Kills }},
	{"kpm", func(s TeamSnapshot) float64 { return s.KPM }},
	{"dragons", func(s TeamSnapshot) float64 { return s.Dragons }},
	{"barons", func(s TeamSnapshot) float64 { return s.Barons }},
	{"towers", func(s TeamSnapshot) float64 { return s.Towers }},
	{"inhibitors", func(s TeamSnapshot) float64 { return s.Inhibitors }},
	{"heralds", func(s TeamSnapshot) float64 { return s.Heralds }},
	{"grubs", func(s TeamSnapshot) float64 { return s.VoidGrubs }},
}

// AppendTo flattens the snapshot into rec with side-prefixed column names,
// e.g. prefix "t1" yields t1_wr, t1_gold, ...
func (s TeamSnapshot) AppendTo(rec *Record, prefix string) {
	for _, f := range teamStatOrder {
		rec.AppendFloat(prefix+"_"+f.key, f.get(s))
	}
}

// RoleStats holds one role's rolling averages.
type RoleStats struct {
	Kills             float64
	Deaths            float64
	Assists           float64
	Gold              float64
	CreepScore        float64
	DamageToChampions float64
}

// roleStatOrder fixes the column order of flattened role stats.
var roleStatOrder = []struct {
	key string
	get func(RoleStats) float64
}{
	{"kills", func(s RoleStats) float64 { return s.Kills }},
	{"deaths", func(s RoleStats) float64 { return s.Deaths }},
	{"assists", func(s RoleStats) float64 { return s.Assists }},
	{"gold", func(s RoleStats) float64 { return s.Gold }},
	{"cs", func(s RoleStats) float64 { return s.CreepScore }},
	{"dmg", func(s RoleStats) float64 { return s.DamageToChampions }},
}

// RoleSnapshot maps each of the five roles to its averaged stats.
// An invalid or incomplete aggregation is represented by an empty map.
type RoleSnapshot map[Role]RoleStats

func (s RoleSnapshot) Empty() bool { return len(s) == 0 }

// AppendTo flattens the snapshot into rec in fixed lane order,
// e.g. prefix "t1" yields t1_top_kills .. t1_sup_dmg.
func (s RoleSnapshot) AppendTo(rec *Record, prefix string) {
	for _, role := range Roles {
		stats := s[role]
		for _, f := range roleStatOrder {
			rec.AppendFloat(prefix+"_"+role.Key()+"_"+f.key, f.get(stats))
		}
	}
}

// Record is one flat dataset row: an ordered list of column/value pairs.
// Column order is fixed at build time and becomes the store header when the
// record is the first ever written to a store file.
type Record struct {
	keys []string
	vals []string
}

func (r *Record) Append(key, val string) {
	r.keys = append(r.keys, key)
	r.vals = append(r.vals, val)
}

func (r *Record) AppendFloat(key string, val float64) {
	r.Append(key, strconv.FormatFloat(val, 'g', -1, 64))
}

func (r *Record) AppendInt(key string, val int) {
	r.Append(key, strconv.Itoa(val))
}

// Keys returns the column names in append order.
func (r *Record) Keys() []string { return r.keys }

// Values returns the column values in append order.
func (r *Record) Values() []string { return r.vals }

func (r *Record) Len() int { return len(r.keys) }
