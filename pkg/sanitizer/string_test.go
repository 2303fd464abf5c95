package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain string", "Chair One", "Chair One"},
		{"leading and trailing spaces", "  Chair One  ", "Chair One"},
		{"internal whitespace collapsed", "Chair \t  One", "Chair One"},
		{"tabs and newlines", "Chair\n\tOne", "Chair One"},
		{"empty", "", ""},
		{"only whitespace", "   \t\n ", ""},
		{"idempotent", "Chair One", "Chair One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("TrimAndNormalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hair-Dresser", "hair-dresser"},
		{"  VIP Room ", "vip room"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeLabel(tt.input); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "duplicates after normalization",
			input: []string{"VIP", "vip", " Vip "},
			want:  []string{"vip"},
		},
		{
			name:  "empties dropped",
			input: []string{"", "  ", "window"},
			want:  []string{"window"},
		},
		{
			name:  "order preserved",
			input: []string{"Window", "Accessible", "window"},
			want:  []string{"window", "accessible"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLabels(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLabels(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
