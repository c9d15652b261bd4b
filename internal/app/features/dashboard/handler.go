// internal/app/features/dashboard/handler.go
package dashboard

import (
	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	congregationstore "github.com/dalemusser/agenda/internal/app/store/congregations"
	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	ministrystore "github.com/dalemusser/agenda/internal/app/store/ministries"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	events        *eventstore.Store
	collections   *collectionstore.Store
	congregations *congregationstore.Store
	ministries    *ministrystore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		events:        eventstore.New(db),
		collections:   collectionstore.New(db),
		congregations: congregationstore.New(db),
		ministries:    ministrystore.New(db),
	}
}
