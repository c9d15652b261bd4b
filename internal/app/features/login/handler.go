// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	congregationstore "github.com/dalemusser/agenda/internal/app/store/congregations"
	"github.com/dalemusser/agenda/internal/app/store/passwordreset"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/mailer"
	"github.com/dalemusser/agenda/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public sign-in pages: login, signup and password
// recovery.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	Mailer        mailer.Sender
	Limiter       *ratelimit.LoginLimiter // nil disables throttling
	BaseURL       string                  // absolute prefix for reset links
	GoogleEnabled bool

	users         *userstore.Store
	congregations *congregationstore.Store
	resets        *passwordreset.Store
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	mail mailer.Sender,
	limiter *ratelimit.LoginLimiter,
	baseURL string,
	resetExpiry time.Duration,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		Mailer:        mail,
		Limiter:       limiter,
		BaseURL:       baseURL,
		GoogleEnabled: googleEnabled,
		users:         userstore.New(db),
		congregations: congregationstore.New(db),
		resets:        passwordreset.New(db, resetExpiry),
	}
}

// redirectSignedIn sends an already signed-in visitor to the dashboard.
func (h *Handler) redirectSignedIn(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return true
	}
	return false
}
