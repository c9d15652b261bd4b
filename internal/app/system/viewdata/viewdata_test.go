package viewdata_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPermsFor(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		nil_  bool
		want  viewdata.Perms
	}{
		{name: "no session", nil_: true, want: viewdata.Perms{}},
		{name: "no flags", roles: nil, want: viewdata.Perms{CanRead: true}},
		{name: "obreiro", roles: []string{"obreiro"}, want: viewdata.Perms{
			CanRead: true, CanWriteLimited: true, IsObreiro: true,
		}},
		{name: "dirigente", roles: []string{"dirigente"}, want: viewdata.Perms{
			CanRead: true, CanWrite: true, CanWriteLimited: true, IsDirigente: true, IsObreiro: true,
		}},
		{name: "admin", roles: []string{"admin", "membro"}, want: viewdata.Perms{
			CanRead: true, CanWrite: true, CanWriteLimited: true, CanDelete: true, CanManageUsers: true,
			IsAdmin: true, IsDirigente: true, IsObreiro: true,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c *authz.Claims
			if !tt.nil_ {
				cl := authz.ClaimsFromRoles(tt.roles)
				c = &cl
			}
			if got := viewdata.PermsFor(c); got != tt.want {
				t.Errorf("PermsFor = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewBaseVM(t *testing.T) {
	r := httptest.NewRequest("GET", "/eventos", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Ana",
		Roles: []string{"dirigente"},
	})
	r = alerts.With(r, alerts.Alert{Level: alerts.Success, Message: "Evento salvo com sucesso!"})

	vm := viewdata.NewBaseVM(r, "Eventos", "/dashboard")

	if !vm.IsLoggedIn || vm.UserName != "Ana" {
		t.Errorf("user fields = %v %q", vm.IsLoggedIn, vm.UserName)
	}
	if vm.Role != "dirigente" || vm.RoleLabel != "Dirigente" {
		t.Errorf("role = %q / %q", vm.Role, vm.RoleLabel)
	}
	if !vm.Perm.CanWrite || vm.Perm.CanDelete {
		t.Errorf("perms = %+v", vm.Perm)
	}
	if vm.Title != "Eventos" || vm.SiteName == "" {
		t.Errorf("title/site = %q / %q", vm.Title, vm.SiteName)
	}
	if len(vm.Alerts) != 1 || vm.Alerts[0].Message != "Evento salvo com sucesso!" {
		t.Errorf("alerts = %+v", vm.Alerts)
	}
}

func TestNewBaseVM_SignedOut(t *testing.T) {
	vm := viewdata.NewBaseVM(httptest.NewRequest("GET", "/login", nil), "Entrar", "/")
	if vm.IsLoggedIn || vm.Role != "visitante" || vm.Perm.CanRead {
		t.Errorf("signed-out vm = %+v", vm)
	}
}
