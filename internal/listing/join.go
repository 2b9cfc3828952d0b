package listing

import "strings"

// Join is a LEFT JOIN to a related table. Listings only join to-one
// relations, so a join never multiplies the rows being counted.
type Join struct {
	Table string
	Alias string
	On    string
}

// SQL renders the join clause.
func (j Join) SQL() string {
	var b strings.Builder
	b.WriteString("LEFT JOIN ")
	b.WriteString(j.Table)
	if j.Alias != "" {
		b.WriteString(" AS ")
		b.WriteString(j.Alias)
	}
	b.WriteString(" ON ")
	b.WriteString(j.On)
	return b.String()
}
