// Package legacyimport copies the Firestore-era data set into MongoDB.
// Documents are upserted by their Firestore id (legacy_id) so the import
// can be re-run; references between collections are rewritten to the new
// ObjectIDs.
package legacyimport

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/flowchartsman/retry"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Firestore collection names of the legacy data set.
const (
	SrcCongregations = "congregacoes"
	SrcUsers         = "users"
	SrcMinistries    = "ministerios"
	SrcEvents        = "eventos"
	SrcCollections   = "coletas"
)

// Doc is one source document.
type Doc struct {
	ID   string
	Data map[string]any
}

// Source lists every document of a collection.
type Source interface {
	Documents(ctx context.Context, collection string) ([]Doc, error)
}

// FirestoreSource reads from a Firestore project.
type FirestoreSource struct {
	client *firestore.Client
}

// NewFirestoreSource opens a Firestore client for projectID. An empty
// credentialsFile uses Application Default Credentials.
func NewFirestoreSource(ctx context.Context, projectID, credentialsFile string) (*FirestoreSource, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	return &FirestoreSource{client: client}, nil
}

// Documents reads the whole collection. Transient failures restart the
// listing from the beginning.
func (s *FirestoreSource) Documents(ctx context.Context, collection string) ([]Doc, error) {
	var out []Doc
	retrier := retry.NewRetrier(3, 500*time.Millisecond, 5*time.Second)
	err := retrier.Run(func() error {
		out = out[:0]
		it := s.client.Collection(collection).Documents(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				return err
			}
			out = append(out, Doc{ID: snap.Ref.ID, Data: snap.Data()})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return out, nil
}

// Close releases the Firestore client.
func (s *FirestoreSource) Close() error {
	return s.client.Close()
}
