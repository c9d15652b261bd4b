// internal/app/features/collections/handler.go
package collections

import (
	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/coletas"

// Handler serves the collections (coletas) pages.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Flash  alerts.SessionGetter

	collections *collectionstore.Store
	events      *eventstore.Store
}

func NewHandler(db *mongo.Database, flash alerts.SessionGetter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Flash:       flash,
		collections: collectionstore.New(db),
		events:      eventstore.New(db),
	}
}
