// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the Agenda-specific configuration. WAFFLE's CoreConfig
// covers ports, TLS, logging and CORS; everything about this application
// lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session cookie
	SessionKey    string // signing key, 32+ chars in production
	SessionName   string
	SessionDomain string // blank means current host
	SessionMaxAge time.Duration

	// CSRFKey must be exactly 32 bytes.
	CSRFKey string

	SiteName string
	Timezone string // IANA zone used for calendar dates, e.g. America/Sao_Paulo

	// E-mail (password reset). An empty host logs messages instead of sending.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	MailUseSSL   bool

	// BaseURL prefixes links in e-mails and OAuth callbacks.
	BaseURL             string
	PasswordResetExpiry time.Duration

	// Firebase Authentication (optional).
	FirebaseProjectID       string
	FirebaseCredentialsFile string

	// Google OAuth (optional).
	GoogleClientID     string
	GoogleClientSecret string

	// AdminEmail is promoted to admin (or created) on startup.
	AdminEmail string

	// Login throttling.
	LoginIPLimit     int
	LoginIPWindow    time.Duration
	LoginEmailLimit  int
	LoginEmailWindow time.Duration

	TokenCleanupInterval time.Duration

	// Request deadlines; zero keeps the defaults in system/timeouts.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}

// FirebaseEnabled reports whether a Firebase project is configured.
func (c AppConfig) FirebaseEnabled() bool { return c.FirebaseProjectID != "" }

// GoogleEnabled reports whether Google OAuth credentials are configured.
func (c AppConfig) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
