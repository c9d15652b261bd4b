// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Perms are the permission and role-gate flags templates switch on.
// They are computed once per request from authz so templates never test
// role tags themselves.
type Perms struct {
	CanRead         bool
	CanWrite        bool
	CanWriteLimited bool
	CanDelete       bool
	CanManageUsers  bool

	IsAdmin     bool // admin-only regions
	IsDirigente bool // dirigente and above
	IsObreiro   bool // obreiro and above
}

// BaseVM contains the fields every page layout needs.
// Embed it in feature view models:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    Rows []rowVM
//	}
//
//	data := listData{BaseVM: viewdata.NewBaseVM(r, "Eventos", "/dashboard")}
type BaseVM struct {
	SiteName string

	IsLoggedIn bool
	Role       string
	RoleLabel  string
	UserName   string
	Perm       Perms

	Title       string
	BackURL     string
	CurrentPath string

	CSRFToken string

	Alerts []alerts.Alert
}

var (
	mu       sync.RWMutex
	siteName = models.DefaultSiteName
)

// SetSiteName overrides the name shown in the header. Call once at startup.
func SetSiteName(name string) {
	if name == "" {
		return
	}
	mu.Lock()
	siteName = name
	mu.Unlock()
}

// SiteName returns the configured site name.
func SiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// NewBaseVM builds the layout fields for r.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	claims := authz.ClaimsFrom(r)
	role, name, _, signedIn := authz.UserCtx(r)

	return BaseVM{
		SiteName:    SiteName(),
		IsLoggedIn:  signedIn,
		Role:        role,
		RoleLabel:   authz.Role(role).Label(),
		UserName:    name,
		Perm:        PermsFor(claims),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		Alerts:      alerts.FromRequest(r),
	}
}

// PermsFor evaluates every flag for c.
func PermsFor(c *authz.Claims) Perms {
	return Perms{
		CanRead:         authz.Can(c, authz.Read),
		CanWrite:        authz.Can(c, authz.Write),
		CanWriteLimited: authz.Can(c, authz.Write) || authz.Can(c, authz.WriteLimited),
		CanDelete:       authz.Can(c, authz.Delete),
		CanManageUsers:  authz.Can(c, authz.ManageUsers),
		IsAdmin:         authz.AdminOnly(c),
		IsDirigente:     authz.DirigenteOnly(c),
		IsObreiro:       authz.ObreiroOnly(c),
	}
}
