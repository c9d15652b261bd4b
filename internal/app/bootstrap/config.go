// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Agenda. They load from
// config files (mongo_uri), environment variables (AGENDA_MONGO_URI) and
// flags (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "agenda", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "agenda-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime"},
	{Name: "csrf_key", Default: "dev-only-csrf-key-32-bytes-long!", Desc: "CSRF authentication key (32 bytes)"},

	{Name: "site_name", Default: "", Desc: "Name shown in the page header"},
	{Name: "timezone", Default: "America/Sao_Paulo", Desc: "Time zone for calendar dates"},

	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs e-mails instead of sending)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "nao-responda@agenda.local", Desc: "From e-mail address"},
	{Name: "mail_from_name", Default: "Agenda de Serviços", Desc: "From display name"},
	{Name: "mail_use_ssl", Default: false, Desc: "Use implicit TLS instead of STARTTLS"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL for e-mail links and OAuth callbacks"},
	{Name: "password_reset_expiry", Default: "1h", Desc: "Password reset link lifetime"},

	{Name: "firebase_project_id", Default: "", Desc: "Firebase project id (enables Firebase sign-in and claim sync)"},
	{Name: "firebase_credentials_file", Default: "", Desc: "Service account JSON (blank uses Application Default Credentials)"},

	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "admin_email", Default: "", Desc: "E-mail promoted to admin (or created) on startup"},

	{Name: "login_ip_limit", Default: 10, Desc: "Sign-in attempts per IP per window"},
	{Name: "login_ip_window", Default: "1m", Desc: "Per-IP sign-in window"},
	{Name: "login_email_limit", Default: 5, Desc: "Sign-in attempts per e-mail per window"},
	{Name: "login_email_window", Default: "5m", Desc: "Per-e-mail sign-in window"},

	{Name: "token_cleanup_interval", Default: "15m", Desc: "How often expired reset and OAuth tokens are purged"},

	{Name: "timeout_short", Default: "", Desc: "Deadline for single-document reads"},
	{Name: "timeout_medium", Default: "", Desc: "Deadline for list pages and writes"},
	{Name: "timeout_long", Default: "", Desc: "Deadline for exports and dashboard aggregation"},
}

// LoadConfig loads WAFFLE core config and the app config. Precedence is
// flags > env (AGENDA_*) > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, v, err := config.LoadWithAppConfig(logger, "AGENDA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         v.String("mongo_uri"),
		MongoDatabase:    v.String("mongo_database"),
		MongoMaxPoolSize: uint64(v.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(v.Int("mongo_min_pool_size")),

		SessionKey:    v.String("session_key"),
		SessionName:   v.String("session_name"),
		SessionDomain: v.String("session_domain"),
		SessionMaxAge: v.Duration("session_max_age", 30*24*time.Hour),
		CSRFKey:       v.String("csrf_key"),

		SiteName: v.String("site_name"),
		Timezone: v.String("timezone"),

		MailSMTPHost: v.String("mail_smtp_host"),
		MailSMTPPort: v.Int("mail_smtp_port"),
		MailSMTPUser: v.String("mail_smtp_user"),
		MailSMTPPass: v.String("mail_smtp_pass"),
		MailFrom:     v.String("mail_from"),
		MailFromName: v.String("mail_from_name"),
		MailUseSSL:   v.Bool("mail_use_ssl"),

		BaseURL:             v.String("base_url"),
		PasswordResetExpiry: v.Duration("password_reset_expiry", time.Hour),

		FirebaseProjectID:       v.String("firebase_project_id"),
		FirebaseCredentialsFile: v.String("firebase_credentials_file"),

		GoogleClientID:     v.String("google_client_id"),
		GoogleClientSecret: v.String("google_client_secret"),

		AdminEmail: v.String("admin_email"),

		LoginIPLimit:     v.Int("login_ip_limit"),
		LoginIPWindow:    v.Duration("login_ip_window", time.Minute),
		LoginEmailLimit:  v.Int("login_email_limit"),
		LoginEmailWindow: v.Duration("login_email_window", 5*time.Minute),

		TokenCleanupInterval: v.Duration("token_cleanup_interval", 15*time.Minute),

		TimeoutShort:  v.Duration("timeout_short", 0),
		TimeoutMedium: v.Duration("timeout_medium", 0),
		TimeoutLong:   v.Duration("timeout_long", 0),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that cannot work, before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in production")
	}
	if _, err := time.LoadLocation(appCfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", appCfg.Timezone, err)
	}
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}
	return nil
}
