// Package listfilter narrows an already-loaded list for display.
//
// Lists are read from the store once per request; the criteria here only
// decide which of those rows are shown and never alter the store query.
package listfilter

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/waffle/pantry/query"
)

// Criteria are the filter inputs of a list page. Zero values disable the
// corresponding check.
type Criteria struct {
	Search string
	From   time.Time
	To     time.Time
	Equals map[string]string
}

// Item is the filterable view of one row: its rendered cells for search,
// its date for the range check, and attributes for equality filters.
type Item struct {
	Cells []string
	Date  time.Time
	Attrs map[string]string
}

// FromRequest reads q, inicio and fim plus the named equality parameters.
// The end date is inclusive through 23:59:59.
func FromRequest(r *http.Request, equalityKeys ...string) Criteria {
	c := Criteria{Search: query.Search(r, "q")}
	if t, ok := format.ParseDate(query.Get(r, "inicio")); ok {
		c.From = format.StartOfDay(t)
	}
	if t, ok := format.ParseDate(query.Get(r, "fim")); ok {
		c.To = format.EndOfDay(t)
	}
	for _, k := range equalityKeys {
		if v := query.Get(r, k); v != "" {
			if c.Equals == nil {
				c.Equals = make(map[string]string)
			}
			c.Equals[k] = v
		}
	}
	return c
}

// Active reports whether any filter is set.
func (c Criteria) Active() bool {
	return c.Search != "" || !c.From.IsZero() || !c.To.IsZero() || len(c.Equals) > 0
}

// Value returns the equality filter for key, or "".
func (c Criteria) Value(key string) string {
	return c.Equals[key]
}

// Match reports whether it passes every active filter. Search is a case-
// and accent-insensitive substring match over the cells.
func (c Criteria) Match(it Item) bool {
	if c.Search != "" {
		needle := format.Fold(strings.TrimSpace(c.Search))
		found := false
		for _, cell := range it.Cells {
			if strings.Contains(format.Fold(cell), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !c.From.IsZero() && (it.Date.IsZero() || it.Date.Before(c.From)) {
		return false
	}
	if !c.To.IsZero() && (it.Date.IsZero() || it.Date.After(c.To)) {
		return false
	}
	for k, want := range c.Equals {
		if it.Attrs[k] != want {
			return false
		}
	}
	return true
}

// Apply returns the rows whose view matches c, preserving order.
func Apply[T any](rows []T, c Criteria, view func(T) Item) []T {
	if !c.Active() {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if c.Match(view(row)) {
			out = append(out, row)
		}
	}
	return out
}
