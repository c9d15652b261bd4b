package users_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	"github.com/dalemusser/agenda/internal/app/features/users"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database, idp identity.Provider) *users.Handler {
	t.Helper()
	return users.NewHandler(db, testutil.SessionManager(t), idp, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
}

func editRequest(id string, form url.Values, user testutil.TestUser) *http.Request {
	return testutil.WithChiURLParam(testutil.NewFormRequest("/usuarios/"+id+"/edit", form, user), "id", id)
}

func TestHandleEdit_UpdatesProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "Carlos Dias", "carlos@igreja.org")
	c := fx.CreateCongregation(ctx, "Central", "Ituiutaba")
	m := fx.CreateMinistry(ctx, "Louvor", nil)

	form := url.Values{
		"roles":         {"obreiro", "dirigente", "obreiro"},
		"ministerios":   {m.ID.Hex()},
		"congregacaoId": {c.ID.Hex()},
		"status":        {"active"},
	}
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, editRequest(u.ID.Hex(), form, testutil.AdminUser()))
	rec.AssertRedirect(t, "/usuarios")

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Roles) != 2 || !got.HasRole("dirigente") || !got.HasRole("obreiro") {
		t.Errorf("Roles = %v, want deduplicated dirigente+obreiro", got.Roles)
	}
	if got.CongregationID == nil || *got.CongregationID != c.ID {
		t.Errorf("CongregationID = %v", got.CongregationID)
	}
	if len(got.MinistryIDs) != 1 || got.MinistryIDs[0] != m.ID {
		t.Errorf("MinistryIDs = %v", got.MinistryIDs)
	}
}

func TestHandleEdit_NoRolesBecomesMembro(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewFixtures(t, db).CreateUser(ctx, "Davi", "davi@igreja.org", "obreiro")
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, editRequest(u.ID.Hex(), url.Values{"status": {"disabled"}}, testutil.AdminUser()))
	rec.AssertRedirect(t, "/usuarios")

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Roles) != 1 || got.Roles[0] != "membro" {
		t.Errorf("Roles = %v, want [membro]", got.Roles)
	}
	if got.Status != "disabled" {
		t.Errorf("Status = %q, want disabled", got.Status)
	}
}

func TestHandleEdit_SyncsFirebaseClaims(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fake := identity.NewFake()
	h := newHandler(t, db, fake)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewFixtures(t, db).CreateUser(ctx, "Eva", "eva@igreja.org")
	if err := userstore.New(db).LinkFirebase(ctx, u.ID, "fb-eva"); err != nil {
		t.Fatalf("LinkFirebase: %v", err)
	}

	form := url.Values{"roles": {"admin", "membro"}, "status": {"active"}}
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, editRequest(u.ID.Hex(), form, testutil.AdminUser()))
	rec.AssertRedirect(t, "/usuarios")

	claims, ok := fake.ClaimsFor("fb-eva")
	if !ok {
		t.Fatal("claims were not pushed")
	}
	if !claims.Admin || !claims.Membro || claims.Dirigente || claims.Obreiro {
		t.Errorf("claims = %+v", claims)
	}
}

func TestHandleEdit_FirebaseFailureKeepsLocalChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fake := identity.NewFake()
	fake.Err = errors.New("quota exceeded")
	h := newHandler(t, db, fake)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewFixtures(t, db).CreateUser(ctx, "Fabi", "fabi@igreja.org")
	if err := userstore.New(db).LinkFirebase(ctx, u.ID, "fb-fabi"); err != nil {
		t.Fatalf("LinkFirebase: %v", err)
	}

	rec := testutil.NewRecorder()
	h.HandleEdit(rec, editRequest(u.ID.Hex(), url.Values{"roles": {"dirigente"}, "status": {"active"}}, testutil.AdminUser()))
	rec.AssertRedirect(t, "/usuarios")

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.HasRole("dirigente") {
		t.Errorf("Roles = %v, want dirigente saved", got.Roles)
	}
}

func TestRoutes_RequireManageUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm := testutil.SessionManager(t)
	router := users.Routes(users.NewHandler(db, sm, nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()), sm)

	for _, u := range []testutil.TestUser{testutil.MembroUser(), testutil.ObreiroUser(), testutil.DirigenteUser()} {
		t.Run(u.Roles[0], func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/", u))
			rec.AssertStatus(t, http.StatusForbidden)
		})
	}
}
