package events

import (
	"net/http/httptest"
	"testing"
)

func TestWithQuery(t *testing.T) {
	tests := []struct {
		target string
		suffix string
		want   string
	}{
		{"/eventos", "/export.csv", "/eventos/export.csv"},
		{"/eventos?q=jovens&status=agendado", "/export.pdf", "/eventos/export.pdf?q=jovens&status=agendado"},
		{"/eventos/export.pdf?ministerio=abc", "", "/eventos?ministerio=abc"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.target, nil)
		if got := withQuery(r, tt.suffix); got != tt.want {
			t.Errorf("withQuery(%q, %q) = %q, want %q", tt.target, tt.suffix, got, tt.want)
		}
	}
}
