// internal/app/features/events/handler.go
package events

import (
	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	congregationstore "github.com/dalemusser/agenda/internal/app/store/congregations"
	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	ministrystore "github.com/dalemusser/agenda/internal/app/store/ministries"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/eventos"

// Handler is the feature-level entry point for Events.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Flash  alerts.SessionGetter

	events        *eventstore.Store
	congregations *congregationstore.Store
	ministries    *ministrystore.Store
	users         *userstore.Store
}

func NewHandler(db *mongo.Database, flash alerts.SessionGetter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Flash:         flash,
		events:        eventstore.New(db),
		congregations: congregationstore.New(db),
		ministries:    ministrystore.New(db),
		users:         userstore.New(db),
	}
}
