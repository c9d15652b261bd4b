package similar_test

import (
	"reflect"
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/similar"
)

func TestScore(t *testing.T) {
	if got := similar.Score("Congregação Central", "congregacao   central"); got != 1 {
		t.Errorf("folded equal = %v, want 1", got)
	}
	if got := similar.Score("Ministério de Louvor", "Ministério de Louvores"); got < similar.Threshold {
		t.Errorf("near match = %v, want >= %v", got, similar.Threshold)
	}
	if got := similar.Score("Jovens", "Infantil"); got >= similar.Threshold {
		t.Errorf("unrelated = %v, want < %v", got, similar.Threshold)
	}
}

func TestMatches(t *testing.T) {
	candidates := []string{
		"Congregação Central",
		"Congregacao Central",
		"Congregação Norte",
		"Vila Nova",
	}
	got := similar.Matches("Congregação Central", candidates)
	want := []string{"Congregacao Central"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matches = %v, want %v", got, want)
	}
	if got := similar.Matches("  ", candidates); got != nil {
		t.Errorf("blank name = %v, want nil", got)
	}
}
