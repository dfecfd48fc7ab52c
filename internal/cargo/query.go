// Package cargo provides a typed client for MediaWiki cargo query endpoints
// (the Leaguepedia esports wiki), plus the pacing and rate-limit retry
// policy used around every remote read.
package cargo

import (
	"strings"
)

// Query describes one logical cargo read: which tables to join, which
// fields to select, a filter predicate, ordering, and a row cap. It is a
// plain description, decoupled from the HTTP transport.
type Query struct {
	Tables  string // e.g. "MatchSchedule=MS, ScoreboardGames=SG"
	JoinOn  string // e.g. "MS.MatchId=SG.MatchId"; empty for single-table queries
	Fields  []string
	Where   Predicate
	OrderBy string
	Limit   int
}

// Predicate is a node in a cargo where-clause tree.
type Predicate interface {
	render(sb *strings.Builder)
}

// WhereString renders the predicate tree to the cargo where-clause syntax.
// Returns "" when the query has no predicate.
func (q Query) WhereString() string {
	if q.Where == nil {
		return ""
	}
	var sb strings.Builder
	q.Where.render(&sb)
	return sb.String()
}

type comparison struct {
	field, op, value string
}

func (c comparison) render(sb *strings.Builder) {
	sb.WriteString(c.field)
	sb.WriteString(c.op)
	sb.WriteString("'")
	// Single quotes in team/tournament names are doubled per SQL quoting.
	sb.WriteString(strings.ReplaceAll(c.value, "'", "''"))
	sb.WriteString("'")
}

// Eq matches rows where field equals value.
func Eq(field, value string) Predicate { return comparison{field, "=", value} }

// Lt matches rows where field sorts strictly before value.
func Lt(field, value string) Predicate { return comparison{field, "<", value} }

type junction struct {
	op    string
	terms []Predicate
}

func (j junction) render(sb *strings.Builder) {
	if len(j.terms) == 1 {
		j.terms[0].render(sb)
		return
	}
	sb.WriteString("(")
	for i, t := range j.terms {
		if i > 0 {
			sb.WriteString(j.op)
		}
		t.render(sb)
	}
	sb.WriteString(")")
}

// And matches rows satisfying every term.
func And(terms ...Predicate) Predicate { return junction{" AND ", terms} }

// Or matches rows satisfying at least one term.
func Or(terms ...Predicate) Predicate { return junction{" OR ", terms} }

// Querier executes one cargo query and returns its rows in response order.
type Querier interface {
	Run(q Query) ([]Row, error)
}
