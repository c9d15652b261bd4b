// internal/app/features/users/handler.go
package users

import (
	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	congregationstore "github.com/dalemusser/agenda/internal/app/store/congregations"
	ministrystore "github.com/dalemusser/agenda/internal/app/store/ministries"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/usuarios"

// Handler administers user roles, ministry memberships and congregation.
// Identity is optional; when set, role changes of Firebase-linked users are
// mirrored to their custom claims.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Flash    alerts.SessionGetter
	Identity identity.Provider

	users         *userstore.Store
	ministries    *ministrystore.Store
	congregations *congregationstore.Store
}

func NewHandler(db *mongo.Database, flash alerts.SessionGetter, idp identity.Provider, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Flash:         flash,
		Identity:      idp,
		users:         userstore.New(db),
		ministries:    ministrystore.New(db),
		congregations: congregationstore.New(db),
	}
}
