// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	shared "github.com/dalemusser/agenda/internal/app/features/shared/views"
	"github.com/dalemusser/agenda/internal/app/store/oauthstate"
	"github.com/dalemusser/agenda/internal/app/store/passwordreset"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// tokenCleanup is started in Startup and stopped in Shutdown.
var tokenCleanup *workers.TokenCleanup

// Startup applies process-wide settings, registers the shared templates,
// seeds the configured admin and starts background workers. It runs after
// EnsureSchema and before BuildHandler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	loc, err := time.LoadLocation(appCfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	format.SetLocation(loc)
	viewdata.SetSiteName(appCfg.SiteName)
	shared.Register()

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			logger.Error("admin bootstrap failed", zap.Error(err))
			return err
		}
	}

	tokenCleanup = workers.NewTokenCleanup(map[string]workers.Sweeper{
		"password_resets": passwordreset.New(deps.MongoDatabase, appCfg.PasswordResetExpiry),
		"oauth_states":    oauthstate.New(deps.MongoDatabase),
	}, logger, appCfg.TokenCleanupInterval)
	tokenCleanup.Start()

	return nil
}

// ensureAdmin makes sure email holds the admin role.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	created, err := userstore.New(deps.MongoDatabase).EnsureAdmin(ctx, email, "")
	if err != nil {
		return err
	}
	if created {
		logger.Info("admin account created; set a password through the reset flow", zap.String("email", email))
	} else {
		logger.Info("admin role ensured", zap.String("email", email))
	}
	return nil
}
