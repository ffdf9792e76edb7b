// Package aggregate merges the records of several periods into one dataset.
package aggregate

import (
	"sort"

	"github.com/pfrederiksen/camara-gastos/internal/expense"
)

// Group is the set of records of one representative, in dataset order
type Group struct {
	Representative string
	Records        []expense.Record
}

// Merge concatenates the given per-period record lists and sorts the result by
// representative. The sort is stable, so records of one representative keep their
// period and page order. No de-duplication is performed.
func Merge(periods ...[]expense.Record) []expense.Record {
	total := 0
	for _, p := range periods {
		total += len(p)
	}

	merged := make([]expense.Record, 0, total)
	for _, p := range periods {
		merged = append(merged, p...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Representative < merged[j].Representative
	})
	return merged
}

// Partition splits records by representative. Groups are returned in ascending
// representative order.
func Partition(records []expense.Record) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, rec := range records {
		i, ok := index[rec.Representative]
		if !ok {
			i = len(groups)
			index[rec.Representative] = i
			groups = append(groups, Group{Representative: rec.Representative})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Representative < groups[j].Representative
	})
	return groups
}
