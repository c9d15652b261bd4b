package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"secretaria@igreja.org.br", true},
		{"pastor.joao@igreja.org", true},
		{"tesouraria+coletas@igreja.org", true},
		{"admin@localhost", true},

		{"", false},
		{"   ", false},
		{"secretaria", false},
		{"secretaria@", false},
		{"@igreja.org", false},
		{".maria@igreja.org", false},
		{"maria.@igreja.org", false},
		{"maria..lima@igreja.org", false},
		{"maria@.igreja.org", false},
		{"maria@igreja..org", false},
		{"Maria Lima <maria@igreja.org>", false},
		{"maria lima@igreja.org", false},
		{"maria@igreja .org", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
