package normalize

import "testing"

func TestKeys(t *testing.T) {
	fns := map[string]func(string) string{
		"Email":      Email,
		"AuthMethod": AuthMethod,
		"Status":     Status,
		"Role":       Role,
	}
	tests := []struct {
		fn, in, want string
	}{
		{"Email", "  Ana.Souza@Igreja.ORG ", "ana.souza@igreja.org"},
		{"Email", "\t", ""},
		{"AuthMethod", " Google", "google"},
		{"Status", "RECEBIDO", "recebido"},
		{"Status", "  Pendente  ", "pendente"},
		{"Role", "Dirigente\n", "dirigente"},
		{"Role", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.fn+"/"+tt.in, func(t *testing.T) {
			if got := fns[tt.fn](tt.in); got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.fn, tt.in, got, tt.want)
			}
		})
	}
}

func TestName_KeepsCase(t *testing.T) {
	for in, want := range map[string]string{
		"  João   da  SILVA ": "João da SILVA",
		"Congregação\tSede":   "Congregação Sede",
		"   ":                "",
	} {
		if got := Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRefID_AllMeansNone(t *testing.T) {
	for in, want := range map[string]string{
		" 507f1f77bcf86cd799439011 ": "507f1f77bcf86cd799439011",
		"todos":                      "",
		" Todas ":                    "",
		"ALL":                        "",
		"":                           "",
	} {
		if got := RefID(in); got != want {
			t.Errorf("RefID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoles(t *testing.T) {
	got := Roles([]string{" Membro", "", "obreiro", "MEMBRO"})
	if len(got) != 2 || got[0] != "membro" || got[1] != "obreiro" {
		t.Errorf("Roles() = %v", got)
	}
}

func TestPhone(t *testing.T) {
	tests := map[string]string{
		"(34) 99999-1234":   "34999991234",
		"+55 34 3261-0000":  "+553432610000",
		"  ":                "",
		"ramal 12 + 3":      "123",
	}
	for in, want := range tests {
		if got := Phone(in); got != want {
			t.Errorf("Phone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"95,00", 95, true},
		{"1.234,50", 1234.5, true},
		{"1234.50", 1234.5, true},
		{"R$ 12,3", 12.3, true},
		{"", 0, false},
		{"   ", 0, false},
		{"cem", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got := Amount(tt.in)
		if (got != nil) != tt.ok {
			t.Errorf("Amount(%q) = %v, want ok=%v", tt.in, got, tt.ok)
			continue
		}
		if got != nil && *got != tt.want {
			t.Errorf("Amount(%q) = %v, want %v", tt.in, *got, tt.want)
		}
	}
}

func TestCoordinate(t *testing.T) {
	if v := Coordinate("-18,9707", 90); v == nil || *v != -18.9707 {
		t.Errorf("Coordinate(-18,9707) = %v", v)
	}
	if v := Coordinate("-49.4588", 180); v == nil || *v != -49.4588 {
		t.Errorf("Coordinate(-49.4588) = %v", v)
	}
	for _, in := range []string{"", "  ", "norte", "91"} {
		if v := Coordinate(in, 90); v != nil {
			t.Errorf("Coordinate(%q) = %v, want nil", in, *v)
		}
	}
}
