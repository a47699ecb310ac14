// Package views holds the derived-view pipelines behind the issue list,
// the dashboard, and the activity feed. Everything here is a pure
// function over slices already fetched from the store, so handlers stay
// thin and the business rules are testable without a database.
package views

import (
	"sort"
	"strings"

	"github.com/dhwiwwx/tracker-api/models"
)

// FilterAll is the sentinel that disables the status or tag filter.
const FilterAll = "all"

// Sort orders for the issue list. The zero value keeps original order.
const (
	SortPriorityDesc = "priorityDesc"
	SortPriorityAsc  = "priorityAsc"
)

// PageSize is the visible-window increment for the issue list.
const PageSize = 10

type Config struct {
	Search string
	Status string
	Tag    string
	Sort   string
}

// Filter returns the issues matching cfg, sorted per cfg.Sort. The
// search is a case-insensitive substring match against title or
// description; status matches against the normalized status; both
// status and tag accept FilterAll (or empty) to match everything.
// Priority sorts are stable: issues of equal rank keep their relative
// original order.
func Filter(issues []models.Issue, cfg Config) []models.Issue {
	search := strings.ToLower(strings.TrimSpace(cfg.Search))

	out := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Description), search) {
			continue
		}
		if cfg.Status != "" && cfg.Status != FilterAll &&
			models.NormalizeStatus(issue.Status) != cfg.Status {
			continue
		}
		if cfg.Tag != "" && cfg.Tag != FilterAll && !hasTag(issue, cfg.Tag) {
			continue
		}
		out = append(out, issue)
	}

	switch cfg.Sort {
	case SortPriorityDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return models.PriorityRank(out[i].Priority) > models.PriorityRank(out[j].Priority)
		})
	case SortPriorityAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return models.PriorityRank(out[i].Priority) < models.PriorityRank(out[j].Priority)
		})
	}
	return out
}

func hasTag(issue models.Issue, tag string) bool {
	for _, t := range issue.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the sorted union of tags across the unfiltered
// collection. The selector is always built from this set so a selected
// tag never disappears as a side effect of other filters.
func Tags(issues []models.Issue) []string {
	seen := map[string]bool{}
	var tags []string
	for _, issue := range issues {
		for _, t := range issue.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Window tracks how much of a filtered list is visible. It starts at
// PageSize, grows by PageSize per Advance, and resets whenever the
// filter configuration changes.
type Window struct {
	visible int
	cfg     Config
}

func NewWindow() Window {
	return Window{visible: PageSize}
}

// Apply resets the window to PageSize if cfg differs from the last
// configuration seen.
func (w *Window) Apply(cfg Config) {
	if cfg != w.cfg {
		w.cfg = cfg
		w.visible = PageSize
	}
}

// Advance grows the window by PageSize, capped at total.
func (w *Window) Advance(total int) {
	w.visible += PageSize
	if w.visible > total {
		w.visible = total
	}
	if w.visible < PageSize {
		w.visible = PageSize
	}
}

// Count reports the visible count for a filtered list of length total,
// never exceeding total.
func (w *Window) Count(total int) int {
	if w.visible > total {
		return total
	}
	return w.visible
}

// Visible returns the visible prefix of filtered.
func (w *Window) Visible(filtered []models.Issue) []models.Issue {
	return filtered[:w.Count(len(filtered))]
}
