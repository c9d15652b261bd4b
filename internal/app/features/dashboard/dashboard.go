// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	metricsstore "github.com/dalemusser/agenda/internal/app/store/metrics"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ServeDashboard renders the home page. The widgets load concurrently and
// each one degrades on its own: a failed widget shows an error placeholder
// while the others render normally.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	templates.Render(w, r, "dashboard", h.load(ctx, r, time.Now()))
}

func (h *Handler) load(ctx context.Context, r *http.Request, now time.Time) dashboardData {
	local := now.In(format.Location())
	data := dashboardData{
		BaseVM:    viewdata.NewBaseVM(r, "Início", "/dashboard"),
		MonthName: format.MonthName(local.Month()) + "/" + local.Format("2006"),
	}

	var g errgroup.Group
	g.Go(func() error {
		data.Upcoming, data.UpcomingError = h.upcoming(ctx, local)
		return nil
	})
	g.Go(func() error {
		s, err := h.collections.MonthSummary(ctx, local)
		if err != nil {
			h.Log.Error("month summary failed", zap.Error(err))
			data.SummaryError = true
			return nil
		}
		data.Summary = s
		data.ReceivedText = format.Money(s.TotalRecebido)
		data.PendingText = format.Money(s.TotalPendente)
		return nil
	})
	g.Go(func() error {
		list, err := h.collections.Latest(ctx, collectionstore.LatestLimit)
		if err != nil {
			h.Log.Error("latest collections failed", zap.Error(err))
			data.LatestError = true
			return nil
		}
		data.Latest = latestRows(list)
		return nil
	})
	g.Go(func() error {
		c := metricsstore.FetchDashboardCounts(ctx, h.DB)
		data.Congregations, data.Ministries, data.Events, data.Users = c.Congregations, c.Ministries, c.Events, c.Users
		return nil
	})
	_ = g.Wait()
	return data
}

// upcoming lists the next events from today 00:00 in date order.
func (h *Handler) upcoming(ctx context.Context, now time.Time) ([]upcomingVM, bool) {
	list, err := h.events.Upcoming(ctx, format.StartOfDay(now), eventstore.UpcomingLimit)
	if err != nil {
		h.Log.Error("upcoming events failed", zap.Error(err))
		return nil, true
	}
	refs := make([][]refnames.Ref, len(list))
	for i, e := range list {
		refs[i] = []refnames.Ref{{ID: e.CongregationID, Kind: refnames.Congregation, Lookup: h.congregations.Name}}
	}
	names := refnames.Resolve(ctx, refs, refnames.DefaultLimit)

	out := make([]upcomingVM, len(list))
	for i, e := range list {
		out[i] = upcomingVM{
			ID:           e.ID.Hex(),
			Title:        e.Title,
			DateText:     format.Date(e.Date),
			Weekday:      format.ShortWeekdayName(e.Date.In(format.Location()).Weekday()),
			Time:         format.Time(e.Time),
			Congregation: names[i][0],
			Status:       status.Status(e.Status),
			Today:        format.IsToday(e.Date, now),
		}
	}
	return out, false
}

func latestRows(list []models.Collection) []latestVM {
	out := make([]latestVM, len(list))
	for i, c := range list {
		out[i] = latestVM{
			ID:         c.ID.Hex(),
			TypeLabel:  status.CollectionType(c.Type).Label(),
			DateText:   format.Date(c.Date),
			AmountText: format.Money(c.DisplayAmount()),
			Status:     status.CollectionStatus(c.Status),
		}
	}
	return out
}
