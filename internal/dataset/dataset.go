// Package dataset wraps a comment sequence as an in-memory table. Every
// operation returns a new view; the loaded records are never mutated, so any
// number of derived views can coexist over one load.
package dataset

import (
	"sort"
	"strings"

	"ecocubano/internal/core"
)

// Dataset is an immutable view over a sequence of comment records.
type Dataset struct {
	records []core.Comment
}

// New wraps a record slice. The slice is owned by the dataset afterwards.
func New(records []core.Comment) *Dataset {
	return &Dataset{records: records}
}

// Len returns the number of records in the view.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the records in encounter order. Callers must not modify
// the returned slice.
func (d *Dataset) Records() []core.Comment {
	return d.records
}

// Filter returns a new view containing only records matching the predicate.
func (d *Dataset) Filter(keep func(core.Comment) bool) *Dataset {
	var out []core.Comment
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return New(out)
}

// FilterCategory returns a view restricted to one category, compared
// case-insensitively. The sidebar sentinels "", "todas" and "all" disable
// the filter and return the receiver unchanged.
func (d *Dataset) FilterCategory(category string) *Dataset {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || c == "todas" || c == "all" {
		return d
	}
	return d.Filter(func(r core.Comment) bool {
		return strings.ToLower(r.Category) == c
	})
}

// FilterDateRange returns a view restricted to the inclusive day range.
// Records without a date never match a bounded range.
func (d *Dataset) FilterDateRange(r core.DateRange) *Dataset {
	if r.From == nil && r.To == nil {
		return d
	}
	return d.Filter(func(c core.Comment) bool {
		return c.HasDate() && r.Contains(c.Day())
	})
}

// Group is one group-by bucket, keyed in first-seen order.
type Group struct {
	Key     string
	Records []core.Comment
}

// GroupBy buckets records by key. Groups appear in the order their key was
// first encountered, and records keep encounter order inside each group, so
// downstream tie-breaks are reproducible.
func (d *Dataset) GroupBy(key func(core.Comment) string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range d.records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// KeyCount is one row of a frequency table.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountBy builds a frequency table over the key function, in first-seen key
// order. Combine with SortCounts for ranked output.
func (d *Dataset) CountBy(key func(core.Comment) string) []KeyCount {
	groups := d.GroupBy(key)
	out := make([]KeyCount, len(groups))
	for i, g := range groups {
		out[i] = KeyCount{Key: g.Key, Count: len(g.Records)}
	}
	return out
}

// SortBy returns a new view sorted by the less function. The sort is stable
// so equal records keep their encounter order.
func (d *Dataset) SortBy(less func(a, b core.Comment) bool) *Dataset {
	out := make([]core.Comment, len(d.records))
	copy(out, d.records)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return New(out)
}

// Derive computes a value column aligned with the view's rows. The input view
// is untouched; derived columns live only in the returned slice.
func Derive[T any](d *Dataset, fn func(core.Comment) T) []T {
	out := make([]T, len(d.records))
	for i, r := range d.records {
		out[i] = fn(r)
	}
	return out
}

// SortCounts sorts a frequency table descending by count, stably, so ties
// keep first-seen order.
func SortCounts(counts []KeyCount) []KeyCount {
	out := make([]KeyCount, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN truncates a frequency table to n rows. Non-positive n returns the
// table unchanged.
func TopN(counts []KeyCount, n int) []KeyCount {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}
