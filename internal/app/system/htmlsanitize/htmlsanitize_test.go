package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/htmlsanitize"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Trazer cadeiras extras", "Trazer cadeiras extras"},
		{"<b>Urgente</b> levar som", "Urgente levar som"},
		{"<script>alert('x')</script>Culto", "Culto"},
		{"  Ceia & Louvor  ", "Ceia & Louvor"},
		{"5 < 10", "5 < 10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := htmlsanitize.StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		keep    []string
		dropped []string
	}{
		{"keeps formatting", "<p><strong>Ceia</strong> às 19h</p>", []string{"<strong>Ceia</strong>", "<p>"}, nil},
		{"removes script", "<p>Oi</p><script>alert(1)</script>", []string{"<p>Oi</p>"}, []string{"script", "alert"}},
		{"removes handlers", `<p onclick="x()">Oi</p>`, []string{"<p>Oi</p>"}, []string{"onclick"}},
		{"removes javascript links", `<a href="javascript:alert(1)">x</a>`, nil, []string{"javascript:"}},
		{"removes iframes", `<iframe src="https://evil"></iframe>ok`, []string{"ok"}, []string{"iframe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.in)
			for _, k := range tt.keep {
				if !strings.Contains(got, k) {
					t.Errorf("Sanitize(%q) = %q, missing %q", tt.in, got, k)
				}
			}
			for _, d := range tt.dropped {
				if strings.Contains(got, d) {
					t.Errorf("Sanitize(%q) = %q, still has %q", tt.in, got, d)
				}
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	tests := map[string]bool{
		"":                true,
		"Ensaio às 18h":   true,
		"<p>Ensaio</p>":   false,
		"5 < 10":          true,
		"5 > 3":           true,
		"a <b> c":         false,
		"menor < e > ...": true,
	}
	for in, want := range tests {
		if got := htmlsanitize.IsPlainText(in); got != want {
			t.Errorf("IsPlainText(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Culto", "<p>Culto</p>"},
		{"Linha 1\nLinha 2\r\nLinha 3", "<p>Linha 1<br>Linha 2<br>Linha 3</p>"},
		{"A & B", "<p>A &amp; B</p>"},
		{"<script>", "<p>&lt;script&gt;</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PlainTextToHTML(tt.in); got != tt.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want template.HTML
	}{
		{"", ""},
		{"Levar Bíblia\nChegar cedo", "<p>Levar Bíblia<br>Chegar cedo</p>"},
		{"<p>Oi</p>", "<p>Oi</p>"},
		{"<p>Oi</p><script>alert('x')</script>", "<p>Oi</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PrepareForDisplay(tt.in); got != tt.want {
			t.Errorf("PrepareForDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
