// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	authfirebasefeature "github.com/dalemusser/agenda/internal/app/features/authfirebase"
	authgooglefeature "github.com/dalemusser/agenda/internal/app/features/authgoogle"
	collectionsfeature "github.com/dalemusser/agenda/internal/app/features/collections"
	congregationsfeature "github.com/dalemusser/agenda/internal/app/features/congregations"
	dashboardfeature "github.com/dalemusser/agenda/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/agenda/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/agenda/internal/app/features/events"
	healthfeature "github.com/dalemusser/agenda/internal/app/features/health"
	homefeature "github.com/dalemusser/agenda/internal/app/features/home"
	loginfeature "github.com/dalemusser/agenda/internal/app/features/login"
	logoutfeature "github.com/dalemusser/agenda/internal/app/features/logout"
	ministriesfeature "github.com/dalemusser/agenda/internal/app/features/ministries"
	usersfeature "github.com/dalemusser/agenda/internal/app/features/users"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/app/system/mailer"
	"github.com/dalemusser/agenda/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// loginLimiter is built in BuildHandler and stopped in Shutdown.
var loginLimiter *ratelimit.LoginLimiter

// BuildHandler constructs the root router. It runs after configuration,
// database, schema and Startup have completed.
//
// Public routes are health, static assets, login and the external sign-in
// callbacks; everything else sits behind the session check of its feature
// router and the permission table in authz.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	// Roles and status are re-read on every request so changes made by an
	// administrator take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Dev mode reloads templates from disk.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	var idp identity.Provider
	if appCfg.FirebaseEnabled() {
		fb, err := identity.NewFirebase(context.Background(), appCfg.FirebaseProjectID, appCfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("firebase init failed", zap.Error(err))
			return nil, err
		}
		idp = fb
		logger.Info("firebase sign-in enabled", zap.String("project_id", appCfg.FirebaseProjectID))
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
		UseSSL:   appCfg.MailUseSSL,
	}, logger)
	if !mail.Enabled() {
		logger.Warn("no SMTP host configured; e-mails will only be logged")
	}

	loginLimiter = ratelimit.NewLoginLimiter(appCfg.LoginIPLimit, appCfg.LoginIPWindow, appCfg.LoginEmailLimit, appCfg.LoginEmailWindow)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// Health and static assets stay outside session and CSRF handling.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, healthfeature.Integrations{
		Mail:     mail.Enabled(),
		Google:   appCfg.GoogleEnabled(),
		Firebase: idp != nil,
	}, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(app chi.Router) {
		if !secure {
			app.Use(markPlaintext)
		}
		app.Use(csrf.Protect([]byte(appCfg.CSRFKey),
			csrf.Secure(secure),
			csrf.Path("/"),
			csrf.CookieName("agenda-csrf"),
			csrf.ErrorHandler(http.HandlerFunc(errorsHandler.Forbidden)),
		))
		app.Use(sessionMgr.LoadSessionUser)
		app.Use(alerts.Middleware(sessionMgr, logger))

		homeHandler := homefeature.NewHandler(logger)
		app.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, mail, loginLimiter,
			appCfg.BaseURL, appCfg.PasswordResetExpiry, appCfg.GoogleEnabled(), logger)
		app.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
		app.Mount("/logout", logoutfeature.Routes(logoutHandler))

		if appCfg.GoogleEnabled() {
			googleHandler := authgooglefeature.NewHandler(db, sessionMgr,
				appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
			app.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
		}
		if idp != nil {
			firebaseHandler := authfirebasefeature.NewHandler(db, sessionMgr, idp, logger)
			app.Mount("/auth/firebase", authfirebasefeature.Routes(firebaseHandler))
		}

		// Error pages
		app.Get("/forbidden", errorsHandler.Forbidden)
		app.Get("/unauthorized", errorsHandler.Unauthorized)

		dashboardHandler := dashboardfeature.NewHandler(db, logger)
		app.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		eventsHandler := eventsfeature.NewHandler(db, sessionMgr, errLog, logger)
		app.Mount("/eventos", eventsfeature.Routes(eventsHandler, sessionMgr))

		collectionsHandler := collectionsfeature.NewHandler(db, sessionMgr, errLog, logger)
		app.Mount("/coletas", collectionsfeature.Routes(collectionsHandler, sessionMgr))

		congregationsHandler := congregationsfeature.NewHandler(db, sessionMgr, errLog, logger)
		app.Mount("/congregacoes", congregationsfeature.Routes(congregationsHandler, sessionMgr))

		ministriesHandler := ministriesfeature.NewHandler(db, sessionMgr, errLog, logger)
		app.Mount("/ministerios", ministriesfeature.Routes(ministriesHandler, sessionMgr))

		usersHandler := usersfeature.NewHandler(db, sessionMgr, idp, errLog, logger)
		app.Mount("/usuarios", usersfeature.Routes(usersHandler, sessionMgr))
	})

	return r, nil
}

// markPlaintext tells gorilla/csrf the request arrived over plain HTTP so
// its origin checks do not assume TLS during local development.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
