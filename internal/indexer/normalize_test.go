package indexer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t\r ", ""},
		{"already normal", "a b c", "a b c"},
		{"trims ends", "  hello  ", "hello"},
		{"collapses mixed runs", "a \n\t b\r\n\nc", "a b c"},
		{"unicode spaces", "a\u00a0\u2003b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			// Idempotent
			if again := Normalize(got); again != got {
				t.Errorf("Normalize(Normalize(%q)) = %q, want %q", tt.raw, again, got)
			}
		})
	}
}
