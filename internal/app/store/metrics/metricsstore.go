package metricsstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the dashboard.
type Counts struct {
	Events        int64
	Collections   int64
	Congregations int64
	Ministries    int64
	Users         int64
}

// FetchDashboardCounts returns the high-level counts used by the dashboard.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts
	count := func(coll string, dst *int64) {
		if n, err := db.Collection(coll).CountDocuments(ctx, bson.M{}); err == nil {
			*dst = n
		}
	}
	count("eventos", &out.Events)
	count("coletas", &out.Collections)
	count("congregacoes", &out.Congregations)
	count("ministerios", &out.Ministries)
	count("users", &out.Users)
	return out
}
