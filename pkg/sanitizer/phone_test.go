package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already E.164 brazilian", "+5511987654321", "+5511987654321"},
		{"already E.164 us", "+12125551234", "+12125551234"},
		{"already E.164 israeli", "+972541234567", "+972541234567"},
		{"national brazilian mobile", "11 98765-4321", "+5511987654321"},
		{"with surrounding spaces", "  +12125551234  ", "+12125551234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"+5511987654321", "11 98765-4321", "+972541234567"}
	for _, input := range inputs {
		once := NormalizePhone(input)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("NormalizePhone not idempotent for %q: %q -> %q", input, once, twice)
		}
	}
}
