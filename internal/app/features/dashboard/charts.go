// internal/app/features/dashboard/charts.go
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCharts returns the collection totals per type and per month
// (received vs pending, last months with data) for the home page charts.
func (h *Handler) ServeCharts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	list, err := h.collections.List(ctx)
	if err != nil {
		h.Log.Error("load collections for charts failed", zap.Error(err))
		http.Error(w, `{"error":"Erro ao carregar coletas"}`, http.StatusInternalServerError)
		return
	}
	resp := chartsResponse{
		ByType:  collectionstore.ByType(list),
		ByMonth: collectionstore.ByMonth(list),
	}
	if resp.ByType == nil {
		resp.ByType = []collectionstore.TypeTotal{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Warn("encode charts failed", zap.Error(err))
	}
}
