package validators

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"+55 (11) 91234-5678", "+5511912345678", true},
		{"11 91234.5678", "11912345678", true},
		{"91234-5678", "912345678", true},
		{"+5511912345678", "+5511912345678", true},
		{"1234567", "", false},           // curto demais
		{"+1234567890123456", "", false}, // longo demais
		{"11 91234-5678 ramal 2", "", false},
		{"55+11912345678", "", false}, // + fora da primeira posição
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizePhone(%q) = (%q, %v), expected (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
