// Package authz resolves what a signed-in user may do.
//
// Roles are additive tags. Each role grants a fixed permission set and a
// request is allowed when any held role lists the permission. Can is the
// only place that decision is made.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/agenda/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a role tag carried by a user.
type Role string

const (
	Admin     Role = "admin"
	Dirigente Role = "dirigente"
	Obreiro   Role = "obreiro"
	Membro    Role = "membro"

	// Visitante names the absence of a session.
	Visitante Role = "visitante"
)

// Permission is an action class checked by handlers and templates.
type Permission string

const (
	Read         Permission = "read"
	Write        Permission = "write"
	WriteLimited Permission = "write_limited"
	Delete       Permission = "delete"
	ManageUsers  Permission = "manage_users"
)

var permissions = map[Role][]Permission{
	Admin:     {Read, Write, Delete, ManageUsers},
	Dirigente: {Read, Write},
	Obreiro:   {Read, WriteLimited},
	Membro:    {Read},
}

// Roles lists the assignable roles, highest first.
func Roles() []Role {
	return []Role{Admin, Dirigente, Obreiro, Membro}
}

// Label is the display name of r.
func (r Role) Label() string {
	switch r {
	case Admin:
		return "Administrador"
	case Dirigente:
		return "Dirigente"
	case Obreiro:
		return "Obreiro"
	case Membro:
		return "Membro"
	case Visitante:
		return "Visitante"
	default:
		return string(r)
	}
}

// Valid reports whether r is an assignable role.
func (r Role) Valid() bool {
	_, ok := permissions[r]
	return ok
}

// Claims are the boolean role flags attached to a session.
type Claims struct {
	Admin     bool `json:"admin"`
	Dirigente bool `json:"dirigente"`
	Obreiro   bool `json:"obreiro"`
	Membro    bool `json:"membro"`
}

// ClaimsFromRoles builds claims from role tags; unknown tags are ignored.
func ClaimsFromRoles(roles []string) Claims {
	var c Claims
	for _, r := range roles {
		switch Role(strings.ToLower(strings.TrimSpace(r))) {
		case Admin:
			c.Admin = true
		case Dirigente:
			c.Dirigente = true
		case Obreiro:
			c.Obreiro = true
		case Membro:
			c.Membro = true
		}
	}
	return c
}

// Held returns the roles whose flag is set, highest first.
func (c Claims) Held() []Role {
	var out []Role
	if c.Admin {
		out = append(out, Admin)
	}
	if c.Dirigente {
		out = append(out, Dirigente)
	}
	if c.Obreiro {
		out = append(out, Obreiro)
	}
	if c.Membro {
		out = append(out, Membro)
	}
	return out
}

// Tags converts the claims back to role tags.
func (c Claims) Tags() []string {
	held := c.Held()
	out := make([]string, len(held))
	for i, r := range held {
		out[i] = string(r)
	}
	return out
}

// Map renders the claims as Firebase custom claims.
func (c Claims) Map() map[string]interface{} {
	return map[string]interface{}{
		"admin":     c.Admin,
		"dirigente": c.Dirigente,
		"obreiro":   c.Obreiro,
		"membro":    c.Membro,
	}
}

// ClaimsFromMap reads boolean role flags from Firebase custom claims.
func ClaimsFromMap(m map[string]interface{}) Claims {
	flag := func(k string) bool {
		v, _ := m[k].(bool)
		return v
	}
	return Claims{
		Admin:     flag("admin"),
		Dirigente: flag("dirigente"),
		Obreiro:   flag("obreiro"),
		Membro:    flag("membro"),
	}
}

// Can reports whether claims grant p. Nil claims (no session) deny
// everything; a session without any flag is treated as membro.
func Can(c *Claims, p Permission) bool {
	if c == nil {
		return false
	}
	held := c.Held()
	if len(held) == 0 {
		held = []Role{Membro}
	}
	for _, r := range held {
		for _, granted := range permissions[r] {
			if granted == p {
				return true
			}
		}
	}
	return false
}

// RoleName is the highest role held, "visitante" without a session and
// "membro" for a session without flags.
func RoleName(c *Claims) string {
	return string(Highest(c))
}

// Highest returns the top role in the order admin, dirigente, obreiro, membro.
func Highest(c *Claims) Role {
	if c == nil {
		return Visitante
	}
	if held := c.Held(); len(held) > 0 {
		return held[0]
	}
	return Membro
}

var rank = map[Role]int{
	Visitante: 0,
	Membro:    1,
	Obreiro:   2,
	Dirigente: 3,
	Admin:     4,
}

// AtLeast reports whether the highest held role ranks at or above r.
// It drives role-gated UI regions.
func AtLeast(c *Claims, r Role) bool {
	return rank[Highest(c)] >= rank[r]
}

// AdminOnly gates regions shown to administrators.
func AdminOnly(c *Claims) bool { return AtLeast(c, Admin) }

// DirigenteOnly gates regions shown to dirigentes and above.
func DirigenteOnly(c *Claims) bool { return AtLeast(c, Dirigente) }

// ObreiroOnly gates regions shown to obreiros and above.
func ObreiroOnly(c *Claims) bool { return AtLeast(c, Obreiro) }

/*─────────────────────────────────────────────────────────────────────────────*
| Request helpers                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ClaimsFrom returns the current user's claims, or nil when signed out.
func ClaimsFrom(r *http.Request) *Claims {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return nil
	}
	c := ClaimsFromRoles(u.Roles)
	return &c
}

// CanRequest is Can for the request's user.
func CanRequest(r *http.Request, p Permission) bool {
	return Can(ClaimsFrom(r), p)
}

// UserCtx returns the user's top role, name, ObjectID and a found flag.
// A missing user or malformed ID yields "visitante", "", NilObjectID, false.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return string(Visitante), "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return string(Visitante), "", primitive.NilObjectID, false
	}
	c := ClaimsFromRoles(user.Roles)
	return RoleName(&c), user.Name, userID, true
}

// RequirePermission admits requests whose user is granted p. Signed-out
// callers are sent to login and the rest to /forbidden.
func RequirePermission(p Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := ClaimsFrom(r)
			if c == nil {
				auth.Unauthorized(w, r)
				return
			}
			if !Can(c, p) {
				auth.Forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny admits requests granted at least one of ps.
func RequireAny(ps ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := ClaimsFrom(r)
			if c == nil {
				auth.Unauthorized(w, r)
				return
			}
			for _, p := range ps {
				if Can(c, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			auth.Forbidden(w, r)
		})
	}
}
