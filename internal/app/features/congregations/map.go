// internal/app/features/congregations/map.go
package congregations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeMapJSON lists the congregations that have coordinates as map
// markers, along with the default centre.
func (h *Handler) ServeMapJSON(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.congregations.WithLocation(ctx)
	if err != nil {
		h.Log.Error("load congregation map failed", zap.Error(err))
		http.Error(w, `{"error":"Erro ao carregar congregações para o mapa"}`, http.StatusInternalServerError)
		return
	}

	resp := mapResponse{
		Center:        mapCenter{Lat: DefaultLat, Lng: DefaultLng},
		Congregations: make([]mapPoint, 0, len(list)),
	}
	for _, c := range list {
		if !c.HasLocation() {
			continue
		}
		resp.Congregations = append(resp.Congregations, mapPoint{
			ID:        c.ID.Hex(),
			Name:      c.Name,
			Address:   c.Address,
			City:      c.City,
			Contact:   c.Contact,
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Warn("write congregation map failed", zap.Error(err))
	}
}
