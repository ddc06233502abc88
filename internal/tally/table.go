package tally

import (
	"slices"
)

// Maps identity to stats. Never holds the TOTAL row.
type Table map[string]UserStats

// Sorted ascending.
func (t Table) Identities() []string {
	identities := make([]string, 0, len(t))
	for identity := range t {
		identities = append(identities, identity)
	}

	slices.Sort(identities)
	return identities
}

// Returns a new table where identities present in both are combined.
func (a Table) Merge(b Table) Table {
	merged := make(Table, len(a)+len(b))
	for identity, stats := range a {
		merged[identity] = stats
	}

	for identity, stats := range b {
		merged[identity] = merged[identity].Combine(stats)
	}

	return merged
}

// Right fold of Combine over every entry, starting from the zero value.
// Entries are visited in identity order so the result is reproducible.
func Totalize(t Table) UserStats {
	identities := t.Identities()

	var total UserStats
	for i := len(identities) - 1; i >= 0; i-- {
		total = t[identities[i]].Combine(total)
	}

	return total
}
