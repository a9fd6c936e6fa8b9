// Package search builds the predicates used to filter question
// listings. The Filter is a plain value; the repository layer translates it
// into store queries.
package search

import (
	"regexp"
	"strings"
	"time"
)

// Window selects a creation-time range for question listings.
type Window int

const (
	WindowNone Window = iota
	WindowToday
	WindowWeek
	WindowMonth
)

// WindowFromTab maps the "tab" query parameter to a window. Unknown values
// fall back to WindowNone.
func WindowFromTab(tab string) Window {
	switch tab {
	case "today":
		return WindowToday
	case "week":
		return WindowWeek
	case "month":
		return WindowMonth
	}
	return WindowNone
}

// Bounds returns the inclusive lower and exclusive upper creation-time bounds
// of the window at the given instant. A zero upper bound means unbounded.
// ok is false for WindowNone.
func (w Window) Bounds(now time.Time) (from, to time.Time, ok bool) {
	switch w {
	case WindowToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24 * time.Hour), true
	case WindowWeek:
		return now.AddDate(0, 0, -7), time.Time{}, true
	case WindowMonth:
		return now.AddDate(0, 0, -30), time.Time{}, true
	}
	return time.Time{}, time.Time{}, false
}

// ScopeKind identifies the optional listing restriction.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeTag
	ScopeCategory
)

// Scope restricts a listing to one tag or one category. At most one scope is
// active per query.
type Scope struct {
	Kind ScopeKind
	Name string
}

// TagScope restricts a listing to questions carrying the named tag.
func TagScope(name string) Scope { return Scope{Kind: ScopeTag, Name: name} }

// CategoryScope restricts a listing to questions in the named category.
func CategoryScope(name string) Scope { return Scope{Kind: ScopeCategory, Name: name} }

var bracketPattern = regexp.MustCompile(`\[([^]]+)\]`)

// ParseSearch splits a raw search string into tag names and title terms.
// Every bracketed substring becomes a tag name; the remainder is split on
// whitespace into title terms, each matched by case-insensitive substring
// containment against question titles.
func ParseSearch(raw string) (tags, terms []string) {
	for _, m := range bracketPattern.FindAllStringSubmatch(raw, -1) {
		tags = append(tags, m[1])
	}
	rest := bracketPattern.ReplaceAllString(raw, "")
	terms = strings.Fields(rest)
	return tags, terms
}

// Filter is the full set of predicates for a question listing.
//
// Semantics: when TagNames is non-empty the result is questions whose tag set
// intersects TagNames AND whose title matches at least one TitleTerm (the
// title predicate is vacuous when TitleTerms is empty). When TagNames is
// empty, TitleTerms alone apply as a logical OR. Window and Scope always AND
// with the search predicate. Results order by creation time descending.
//
// Limit zero means the full result set; listings default to full results.
type Filter struct {
	TagNames   []string
	TitleTerms []string
	Window     Window
	Scope      Scope
	Limit      int
	Offset     int
}

// NewFilter parses the raw search string and combines it with the tab window
// and scope into a Filter.
func NewFilter(rawSearch, tab string, scope Scope) Filter {
	tags, terms := ParseSearch(rawSearch)
	return Filter{
		TagNames:   tags,
		TitleTerms: terms,
		Window:     WindowFromTab(tab),
		Scope:      scope,
	}
}
