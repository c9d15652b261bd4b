package legacyimport_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/agenda/internal/app/legacyimport"
	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	ministrystore "github.com/dalemusser/agenda/internal/app/store/ministries"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeSource map[string][]legacyimport.Doc

func (f fakeSource) Documents(ctx context.Context, collection string) ([]legacyimport.Doc, error) {
	return f[collection], nil
}

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func legacyData() fakeSource {
	return fakeSource{
		legacyimport.SrcCongregations: {
			{ID: "cong1", Data: map[string]any{"nome": "Sede", "cidade": "Ituiutaba", "latitude": -18.97, "longitude": "-49.46"}},
		},
		legacyimport.SrcUsers: {
			{ID: "uidAna", Data: map[string]any{
				"nome": "Ana Souza", "email": "Ana@Igreja.org", "telefone": "(34) 99999-0000",
				"congregacaoId": "cong1", "roles": []any{"dirigente", "bogus"}, "ministerios": []any{"min1"},
			}},
			{ID: "uidJoao", Data: map[string]any{"nome": "João", "email": "joao@igreja.org", "congregacaoId": ""}},
			{ID: "uidSemEmail", Data: map[string]any{"nome": "Sem E-mail"}},
		},
		legacyimport.SrcMinistries: {
			{ID: "min1", Data: map[string]any{"nome": "Louvor", "descricao": "<b>Música</b>", "responsavelUid": "uidAna", "membros": []any{"uidAna", "uidJoao"}}},
		},
		legacyimport.SrcEvents: {
			{ID: "ev1", Data: map[string]any{
				"titulo": "Culto de Domingo", "data": march(10), "hora": "19:00",
				"congregacaoId": "cong1", "ministerioId": "min1", "status": "",
				"participantes": []any{"uidAna", "uidGhost"},
			}},
		},
		legacyimport.SrcCollections: {
			{ID: "col1", Data: map[string]any{"tipo": "dizimo", "data": march(10), "eventoId": "ev1", "expectedAmount": int64(500), "status": "pendente"}},
			{ID: "col2", Data: map[string]any{
				"tipo": "oferta", "data": march(17), "expectedAmount": "120,50", "status": "recebido",
				"collectedAmount": 130.0, "observacoesRecebimento": "ok", "dataRecebimento": march(18),
			}},
		},
	}
}

func run(t *testing.T, db *mongo.Database, src legacyimport.Source, dry bool) legacyimport.Report {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	im := &legacyimport.Importer{DB: db, Source: src, Log: zap.NewNop(), DryRun: dry}
	rep, err := im.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return rep
}

func TestRun_ImportsAndRewritesReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rep := run(t, db, legacyData(), false)

	if rep.Users.Inserted != 2 || rep.Users.Skipped != 1 {
		t.Errorf("users = %+v, want 2 inserted 1 skipped", rep.Users)
	}
	if rep.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1 (uidGhost)", rep.Unresolved)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	ana, err := userstore.New(db).GetByEmail(ctx, "ana@igreja.org")
	if err != nil {
		t.Fatalf("ana not imported: %v", err)
	}
	if len(ana.Roles) != 1 || ana.Roles[0] != "dirigente" {
		t.Errorf("Roles = %v, want [dirigente]", ana.Roles)
	}
	if ana.AuthMethod != models.AuthFirebase || ana.FirebaseUID == nil || *ana.FirebaseUID != "uidAna" {
		t.Errorf("auth = %q/%v, want firebase uidAna", ana.AuthMethod, ana.FirebaseUID)
	}
	if ana.CongregationID == nil {
		t.Error("congregation reference not rewritten")
	}

	joao, err := userstore.New(db).GetByEmail(ctx, "joao@igreja.org")
	if err != nil {
		t.Fatalf("joao not imported: %v", err)
	}
	if len(joao.Roles) != 1 || joao.Roles[0] != "membro" {
		t.Errorf("Roles = %v, want [membro]", joao.Roles)
	}

	var min models.Ministry
	if err := db.Collection("ministerios").FindOne(ctx, bson.M{"legacy_id": "min1"}).Decode(&min); err != nil {
		t.Fatalf("ministry: %v", err)
	}
	if min.Description != "Música" {
		t.Errorf("Description = %q, want tags stripped", min.Description)
	}
	if min.ResponsibleID == nil || *min.ResponsibleID != ana.ID || len(min.Members) != 2 {
		t.Errorf("ministry refs = %v / %v", min.ResponsibleID, min.Members)
	}
	if len(ana.MinistryIDs) != 1 || ana.MinistryIDs[0] != min.ID {
		t.Errorf("MinistryIDs = %v, want [%v]", ana.MinistryIDs, min.ID)
	}

	events, err := eventstore.New(db).List(ctx)
	if err != nil || len(events) != 1 {
		t.Fatalf("events = %v, %v", events, err)
	}
	ev := events[0]
	if ev.Status != "agendado" || ev.MinistryID == nil || *ev.MinistryID != min.ID || len(ev.Participants) != 1 {
		t.Errorf("event = %+v", ev)
	}
	if ev.Date.Day() != 10 {
		t.Errorf("event day = %d, want 10", ev.Date.Day())
	}

	cols, err := collectionstore.New(db).List(ctx)
	if err != nil || len(cols) != 2 {
		t.Fatalf("collections = %v, %v", cols, err)
	}
	for _, c := range cols {
		switch c.LegacyID {
		case "col1":
			if c.EventID == nil || *c.EventID != ev.ID || c.ExpectedAmount != 500 || c.IsReceived() {
				t.Errorf("col1 = %+v", c)
			}
		case "col2":
			if !c.IsReceived() || *c.CollectedAmount != 130 || c.ExpectedAmount != 120.5 || c.ReceivedAt == nil {
				t.Errorf("col2 = %+v", c)
			}
		}
	}
}

func TestRun_IsRepeatable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	run(t, db, legacyData(), false)
	rep := run(t, db, legacyData(), false)

	if rep.Users.Inserted != 0 || rep.Users.Updated != 2 {
		t.Errorf("second run users = %+v, want 2 updated", rep.Users)
	}
	if rep.Collections.Inserted != 0 || rep.Collections.Updated != 2 {
		t.Errorf("second run collections = %+v", rep.Collections)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, _ := userstore.New(db).Count(ctx)
	if n != 2 {
		t.Errorf("users = %d, want 2", n)
	}
	ministries, _ := ministrystore.New(db).List(ctx)
	if len(ministries) != 1 {
		t.Errorf("ministries = %d, want 1", len(ministries))
	}
}

func TestRun_MergesExistingAccountByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.NewFixtures(t, db).CreateUser(ctx, "Ana Souza", "ana@igreja.org", "admin")
	run(t, db, legacyData(), false)

	got, err := userstore.New(db).GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("existing account replaced: %v", err)
	}
	if !got.HasRole("admin") || !got.HasRole("dirigente") {
		t.Errorf("Roles = %v, want admin kept and dirigente added", got.Roles)
	}
	if got.LegacyID != "uidAna" {
		t.Errorf("LegacyID = %q", got.LegacyID)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rep := run(t, db, legacyData(), true)

	if rep.Events.Read != 1 || rep.Collections.Read != 2 {
		t.Errorf("report = %+v", rep)
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()
	for _, coll := range []string{"users", "congregacoes", "ministerios", "eventos", "coletas"} {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil || n != 0 {
			t.Errorf("%s has %d documents after a dry run (%v)", coll, n, err)
		}
	}
}
