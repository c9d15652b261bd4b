package collectionstore

import (
	"fmt"
	"sort"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/domain/models"
)

// ChartMonths is how many months with data the monthly chart shows.
const ChartMonths = 6

// Summary is the dashboard's monthly totals card.
type Summary struct {
	Count         int     `json:"count"`
	TotalRecebido float64 `json:"totalRecebido"`
	TotalPendente float64 `json:"totalPendente"`
}

// Summarize counts list and sums collected amounts of received entries and
// expected amounts of the rest.
func Summarize(list []models.Collection) Summary {
	var s Summary
	s.Count = len(list)
	for _, c := range list {
		if c.IsReceived() {
			s.TotalRecebido += *c.CollectedAmount
		} else {
			s.TotalPendente += c.ExpectedAmount
		}
	}
	return s
}

// TypeTotal is one slice of the by-type chart.
type TypeTotal struct {
	Type  string  `json:"type"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// ByType sums DisplayAmount per collection type, in form order followed by
// any unknown types alphabetically. Types without entries are omitted.
func ByType(list []models.Collection) []TypeTotal {
	sums := map[string]float64{}
	for _, c := range list {
		t := c.Type
		if t == "" {
			t = string(status.Outro)
		}
		sums[t] += c.DisplayAmount()
	}

	var out []TypeTotal
	for _, t := range status.CollectionTypes() {
		if v, ok := sums[string(t)]; ok {
			out = append(out, TypeTotal{Type: string(t), Label: t.Label(), Total: v})
			delete(sums, string(t))
		}
	}
	rest := make([]string, 0, len(sums))
	for t := range sums {
		rest = append(rest, t)
	}
	sort.Strings(rest)
	for _, t := range rest {
		out = append(out, TypeTotal{Type: t, Label: status.CollectionType(t).Label(), Total: sums[t]})
	}
	return out
}

// MonthTotal is one bar group of the monthly chart.
type MonthTotal struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Label    string  `json:"label"`
	Recebido float64 `json:"recebido"`
	Pendente float64 `json:"pendente"`
}

// ByMonth splits totals per calendar month into received and pending, in
// chronological order, keeping the last ChartMonths months with data.
func ByMonth(list []models.Collection) []MonthTotal {
	type key struct {
		y int
		m time.Month
	}
	sums := map[key]*MonthTotal{}
	for _, c := range list {
		if c.Date.IsZero() {
			continue
		}
		d := c.Date.In(format.Location())
		k := key{d.Year(), d.Month()}
		mt, ok := sums[k]
		if !ok {
			mt = &MonthTotal{
				Year:  k.y,
				Month: int(k.m),
				Label: fmt.Sprintf("%s/%d", format.MonthName(k.m), k.y),
			}
			sums[k] = mt
		}
		if c.IsReceived() {
			mt.Recebido += *c.CollectedAmount
		} else {
			mt.Pendente += c.ExpectedAmount
		}
	}

	out := make([]MonthTotal, 0, len(sums))
	for _, mt := range sums {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if len(out) > ChartMonths {
		out = out[len(out)-ChartMonths:]
	}
	return out
}

// Label names a collection in select lists and reference columns.
func Label(c models.Collection) string {
	return status.CollectionType(c.Type).Label() + " - " + format.Date(c.Date)
}
