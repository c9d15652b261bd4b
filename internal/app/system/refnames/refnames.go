// Package refnames turns reference IDs on list rows into display names.
//
// Every reference on every row is looked up independently and
// concurrently. Each lookup writes only its own slot of the result, so the
// output lines up with the input regardless of completion order. Lookups
// are not deduplicated: two rows pointing at the same document cause two
// reads.
package refnames

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// LoadError is shown when a lookup fails.
const LoadError = "Erro ao carregar"

// Kind holds the placeholders for one reference type.
type Kind struct {
	Unset   string // no reference stored
	Missing string // referenced document does not exist
}

var (
	Event        = Kind{Unset: "Não vinculado", Missing: "Evento não encontrado"}
	Congregation = Kind{Unset: "Não definida", Missing: "Não encontrada"}
	Ministry     = Kind{Unset: "Não definido", Missing: "Não encontrado"}
	Responsible  = Kind{Unset: "Não definido", Missing: "Não encontrado"}
	Member       = Kind{Unset: "", Missing: "Membro não encontrado"}
)

// Lookup fetches the display name of id. found=false means the document
// does not exist.
type Lookup func(ctx context.Context, id primitive.ObjectID) (name string, found bool, err error)

// Ref is one reference to resolve.
type Ref struct {
	ID     *primitive.ObjectID
	Kind   Kind
	Lookup Lookup
}

// DefaultLimit bounds concurrent lookups per Resolve call.
const DefaultLimit = 8

// Resolve returns names[i][j] for refs[i][j]. It never fails: errors and
// missing documents degrade to the kind's placeholder text.
func Resolve(ctx context.Context, refs [][]Ref, limit int) [][]string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([][]string, len(refs))
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, row := range refs {
		out[i] = make([]string, len(row))
		for j, ref := range row {
			if ref.ID == nil || ref.ID.IsZero() {
				out[i][j] = ref.Kind.Unset
				continue
			}
			slot := &out[i][j]
			id, kind, lookup := *ref.ID, ref.Kind, ref.Lookup
			g.Go(func() error {
				*slot = resolveOne(ctx, id, kind, lookup)
				return nil
			})
		}
	}
	_ = g.Wait()
	return out
}

// Names resolves a list of IDs of a single kind, in order.
func Names(ctx context.Context, ids []primitive.ObjectID, kind Kind, lookup Lookup) []string {
	row := make([]Ref, len(ids))
	for i := range ids {
		row[i] = Ref{ID: &ids[i], Kind: kind, Lookup: lookup}
	}
	return Resolve(ctx, [][]Ref{row}, DefaultLimit)[0]
}

func resolveOne(ctx context.Context, id primitive.ObjectID, kind Kind, lookup Lookup) string {
	if lookup == nil {
		return LoadError
	}
	name, found, err := lookup(ctx, id)
	switch {
	case err != nil:
		return LoadError
	case !found:
		return kind.Missing
	}
	return name
}
