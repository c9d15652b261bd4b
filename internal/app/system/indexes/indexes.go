// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's index set is reconciled
idempotently and every problem is aggregated so startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, spec := range collections() {
		if err := ensureIndexSet(ctx, db.Collection(spec.name), spec.models); err != nil {
			problems = append(problems, spec.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type collectionIndexes struct {
	name   string
	models []mongo.IndexModel
}

func collections() []collectionIndexes {
	return []collectionIndexes{
		{"users", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
			// Only linked accounts carry a firebase_uid.
			{
				Keys: bson.D{{Key: "firebase_uid", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_firebase_uid").
					SetPartialFilterExpression(bson.M{"firebase_uid": bson.M{"$type": "string"}}),
			},
			{
				Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_users_fullnameci_id"),
			},
			{
				Keys:    bson.D{{Key: "roles", Value: 1}},
				Options: options.Index().SetName("idx_users_roles"),
			},
		}},
		{"eventos", []mongo.IndexModel{
			// list (date desc) and upcoming (date asc, limit 5)
			{
				Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_eventos_date_id"),
			},
			{
				Keys:    bson.D{{Key: "congregation_id", Value: 1}},
				Options: options.Index().SetName("idx_eventos_congregation"),
			},
			{
				Keys:    bson.D{{Key: "ministry_id", Value: 1}},
				Options: options.Index().SetName("idx_eventos_ministry"),
			},
			legacyIndex("eventos"),
		}},
		{"coletas", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_coletas_date_id"),
			},
			{
				Keys:    bson.D{{Key: "event_id", Value: 1}},
				Options: options.Index().SetName("idx_coletas_event"),
			},
			legacyIndex("coletas"),
		}},
		{"congregacoes", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_congregacoes_nameci_id"),
			},
			legacyIndex("congregacoes"),
		}},
		{"ministerios", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_ministerios_nameci_id"),
			},
			legacyIndex("ministerios"),
		}},
		{"password_resets", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "token", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_password_resets_token"),
			},
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_password_resets_expires"),
			},
		}},
		{"oauth_states", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "state", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_oauth_states_state"),
			},
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_oauth_states_expires"),
			},
		}},
	}
}

// legacyIndex backs the idempotent Firestore import, which upserts by the
// original document id.
func legacyIndex(coll string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: "legacy_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_" + coll + "_legacy_id").
			SetPartialFilterExpression(bson.M{"legacy_id": bson.M{"$type": "string"}}),
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile the desired indexes of one collection                            */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool { return b != nil && *b }

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// ensureIndexSet creates each desired index, reusing one with the same key
// pattern and options. A same-keys index with another name or a different
// unique flag is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", isUnique(unique)),
		}

		if ex, ok := existing[sig]; ok {
			if isUnique(unique) == isUnique(ex.Unique) && (name == "" || ex.Name == name) {
				zap.L().Debug("reusing existing index", fields...)
				continue
			}
			zap.L().Info("replacing index", append(fields, zap.String("existing", ex.Name))...)
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			switch {
			case wafflemongo.IsDup(err) && isUnique(unique):
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			default:
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
			continue
		}
		zap.L().Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
