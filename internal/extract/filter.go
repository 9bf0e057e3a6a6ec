package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

// FilterAll is the label that matches every category or component type.
const FilterAll = "All"

// Filter is a requested set of category or component-type labels. The
// zero value and any set containing FilterAll match everything. Filtering
// is purely a pass/skip gate: it never changes how a selected pass runs.
type Filter struct {
	labels map[string]bool
	all    bool
}

// NewFilter builds a filter from the requested labels. An empty list
// means "All".
func NewFilter(labels []string) Filter {
	f := Filter{labels: make(map[string]bool, len(labels))}
	if len(labels) == 0 {
		f.all = true
	}
	for _, label := range labels {
		if label == FilterAll {
			f.all = true
		}
		f.labels[label] = true
	}
	return f
}

// Matches reports whether the label was requested.
func (f Filter) Matches(label string) bool {
	return f.all || f.labels[label]
}

// ValidateCategories checks content-mode filter labels against the fixed
// category vocabulary. It runs before any file is opened.
func ValidateCategories(labels []string) error {
	allowed := []string{FilterAll}
	for _, c := range dtsx.Categories() {
		allowed = append(allowed, string(c))
	}
	return validateLabels(labels, allowed, "category")
}

// ValidateSQLTypes checks SQL-mode filter labels against the fixed
// component-type vocabulary.
func ValidateSQLTypes(labels []string) error {
	allowed := append([]string{FilterAll}, dtsx.SQLTypes()...)
	return validateLabels(labels, allowed, "component type")
}

func validateLabels(labels, allowed []string, kind string) error {
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	var bad []string
	for _, label := range labels {
		if !ok[label] {
			bad = append(bad, label)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("unknown %s %q (expected one of: %s)",
		kind, strings.Join(bad, ", "), strings.Join(allowed, ", "))
}
