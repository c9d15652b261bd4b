// internal/app/features/congregations/handler.go
package congregations

import (
	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	congregationstore "github.com/dalemusser/agenda/internal/app/store/congregations"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/congregacoes"

// Default map centre (Ituiutaba, MG).
const (
	DefaultLat = -18.9707
	DefaultLng = -49.4588
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Flash  alerts.SessionGetter

	congregations *congregationstore.Store
}

func NewHandler(db *mongo.Database, flash alerts.SessionGetter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Flash:         flash,
		congregations: congregationstore.New(db),
	}
}
