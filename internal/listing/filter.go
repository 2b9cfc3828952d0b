package listing

import (
	"strconv"
	"strings"
)

// FilterKind selects how a named filter compiles into a predicate term.
type FilterKind int

const (
	// Contains is a case-insensitive substring match (ILIKE).
	Contains FilterKind = iota
	// Enum is exact equality against a closed set of values.
	Enum
)

// Filter maps a query parameter onto a column, possibly of a joined table.
type Filter struct {
	Param  string
	Column string
	Kind   FilterKind
	// Values is the closed set accepted by an Enum filter.
	Values []string
}

// Predicate is a conjunction of SQL terms with their positional arguments.
// Terms only ever reference arguments through $n placeholders.
type Predicate struct {
	Terms []string
	Args  []any
}

// Bind appends arg and returns the placeholder that refers to it.
func (p *Predicate) Bind(arg any) string {
	p.Args = append(p.Args, arg)
	return "$" + strconv.Itoa(len(p.Args))
}

// And appends a term to the conjunction.
func (p *Predicate) And(term string) {
	p.Terms = append(p.Terms, term)
}

// Where renders the WHERE clause, or "" when there are no terms.
func (p Predicate) Where() string {
	if len(p.Terms) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.Terms, " AND ")
}

func (p Predicate) clone() Predicate {
	return Predicate{
		Terms: append([]string(nil), p.Terms...),
		Args:  append([]any(nil), p.Args...),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching s as a literal substring.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Compile extends base with one term for the search text (an OR across the
// search columns) followed by one term per accepted filter, in declaration
// order. base is not modified.
func Compile(base Predicate, params Params, search []string, filters []Filter) Predicate {
	pred := base.clone()

	if params.Search != "" && len(search) > 0 {
		ph := pred.Bind(ContainsPattern(params.Search))
		alts := make([]string, len(search))
		for i, col := range search {
			alts[i] = col + " ILIKE " + ph
		}
		pred.And("(" + strings.Join(alts, " OR ") + ")")
	}

	for _, f := range filters {
		v := params.Filter(f.Param)
		if v == "" {
			continue
		}
		switch f.Kind {
		case Enum:
			pred.And(f.Column + " = " + pred.Bind(v))
		default:
			pred.And(f.Column + " ILIKE " + pred.Bind(ContainsPattern(v)))
		}
	}

	return pred
}
