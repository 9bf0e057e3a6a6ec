// Package stats aggregates extraction records into corpus-level counts.
package stats

import (
	"sort"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

// Count is one label with its number of occurrences.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the aggregate view of a corpus scan.
type Summary struct {
	Files           int     `json:"files"`
	Records         int     `json:"records"`
	ByCategory      []Count `json:"by_category"`
	TaskTypes       []Count `json:"task_types"`
	ComponentTypes  []Count `json:"component_types"`
	ConnectionKinds []Count `json:"connection_kinds"`
}

// Aggregator consumes content records and produces a Summary. It keeps
// only counters, never the records themselves, so corpus size is
// unbounded.
type Aggregator struct {
	files           map[string]bool
	records         int
	byCategory      map[string]int
	taskTypes       map[string]int
	componentTypes  map[string]int
	connectionKinds map[string]int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		files:           make(map[string]bool),
		byCategory:      make(map[string]int),
		taskTypes:       make(map[string]int),
		componentTypes:  make(map[string]int),
		connectionKinds: make(map[string]int),
	}
}

// Add folds one content record into the counters.
func (a *Aggregator) Add(rec dtsx.ContentRecord) {
	a.files[rec.File] = true
	a.records++
	a.byCategory[string(rec.Category)]++
	switch rec.Category {
	case dtsx.CategoryTask:
		a.taskTypes[rec.ComponentType]++
	case dtsx.CategoryComponent:
		a.componentTypes[rec.ComponentType]++
	case dtsx.CategoryConnection:
		a.connectionKinds[rec.ComponentType]++
	}
}

// Summary returns the aggregated counts, each list sorted by descending
// count and then label, so repeated runs over an unchanged corpus print
// identically.
func (a *Aggregator) Summary() Summary {
	return Summary{
		Files:           len(a.files),
		Records:         a.records,
		ByCategory:      sortedCounts(a.byCategory),
		TaskTypes:       sortedCounts(a.taskTypes),
		ComponentTypes:  sortedCounts(a.componentTypes),
		ConnectionKinds: sortedCounts(a.connectionKinds),
	}
}

func sortedCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}
