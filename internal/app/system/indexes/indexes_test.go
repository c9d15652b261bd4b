package indexes_test

import (
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/indexes"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	want := map[string][]string{
		"users":           {"uniq_users_email", "uniq_users_firebase_uid", "idx_users_fullnameci_id", "idx_users_roles"},
		"eventos":         {"idx_eventos_date_id", "idx_eventos_congregation", "idx_eventos_ministry", "uniq_eventos_legacy_id"},
		"coletas":         {"idx_coletas_date_id", "idx_coletas_event", "uniq_coletas_legacy_id"},
		"congregacoes":    {"idx_congregacoes_nameci_id", "uniq_congregacoes_legacy_id"},
		"ministerios":     {"idx_ministerios_nameci_id", "uniq_ministerios_legacy_id"},
		"password_resets": {"uniq_password_resets_token", "ttl_password_resets_expires"},
		"oauth_states":    {"uniq_oauth_states_state", "ttl_oauth_states_expires"},
	}
	for coll, names := range want {
		t.Run(coll, func(t *testing.T) {
			got := indexNames(t, db, coll)
			for _, n := range names {
				if !got[n] {
					t.Errorf("missing index %s", n)
				}
			}
		})
	}
}

func TestEnsureAll_RenamesSameKeyIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("congregacoes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		t.Fatalf("seed index: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	names := indexNames(t, db, "congregacoes")
	if !names["idx_congregacoes_nameci_id"] {
		t.Error("expected the seeded index to be renamed")
	}
	if names["name_ci_1__id_1"] {
		t.Error("auto-named index should have been dropped")
	}
}

func TestEnsureAll_UniqueEmailEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	users := db.Collection("users")
	if _, err := users.InsertOne(ctx, bson.M{"email": "ana@igreja.org"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := users.InsertOne(ctx, bson.M{"email": "ana@igreja.org"}); !mongo.IsDuplicateKeyError(err) {
		t.Errorf("second insert error = %v, want duplicate key", err)
	}
	// two accounts without firebase_uid must coexist
	if _, err := users.InsertOne(ctx, bson.M{"email": "b@igreja.org"}); err != nil {
		t.Errorf("insert without firebase uid: %v", err)
	}
}
