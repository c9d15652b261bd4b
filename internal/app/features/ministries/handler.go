// internal/app/features/ministries/handler.go
package ministries

import (
	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	ministrystore "github.com/dalemusser/agenda/internal/app/store/ministries"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const basePath = "/ministerios"

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Flash  alerts.SessionGetter

	ministries *ministrystore.Store
	users      *userstore.Store
}

func NewHandler(db *mongo.Database, flash alerts.SessionGetter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Flash:      flash,
		ministries: ministrystore.New(db),
		users:      userstore.New(db),
	}
}
