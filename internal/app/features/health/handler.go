package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Integrations lists the optional services this instance was started with.
type Integrations struct {
	Mail     bool `json:"mail"`
	Google   bool `json:"google"`
	Firebase bool `json:"firebase"`
}

type Handler struct {
	Client       *mongo.Client
	Integrations Integrations
	Log          *zap.Logger
}

func NewHandler(client *mongo.Client, in Integrations, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Integrations: in, Log: logger}
}

type report struct {
	Status       string       `json:"status"`
	Database     string       `json:"database"`
	Integrations Integrations `json:"integrations"`
}

// Serve answers GET /health with 200 while MongoDB answers a ping and 503
// otherwise. The body always carries the integration flags:
//
//	{"status":"ok","database":"connected","integrations":{"mail":true,"google":false,"firebase":false}}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	rep := report{Status: "ok", Database: "connected", Integrations: h.Integrations}
	code := http.StatusOK
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health: mongo ping failed", zap.Error(err))
		rep.Status, rep.Database = "error", "disconnected"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(rep)
}
