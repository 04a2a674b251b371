package transform

import (
	"testing"
	"unicode/utf8"
)

func TestMaskers(t *testing.T) {
	tests := []struct {
		name   string
		masker Masker
		input  string
		want   string
	}{
		{"email", EmailMasker(), "alice@example.com", "a***@example.com"},
		{"email single char", EmailMasker(), "a@b.com", "a***@b.com"},
		{"email no at", EmailMasker(), "noatsign", "********"},
		{"email multibyte first rune", EmailMasker(), "élise@x.com", "é***@x.com"},
		{"email no at multibyte", EmailMasker(), "ünö", "***"},
		{"ssn dashed", SSNMasker(), "123-45-6789", "***-**-6789"},
		{"ssn plain", SSNMasker(), "123456789", "***-**-6789"},
		{"ssn short", SSNMasker(), "123", "***"},
		{"ssn non-ascii digits", SSNMasker(), "١٢٣-٤٥-٦٧٨٩", "***********"},
		{"phone parens", PhoneMasker(), "(555) 123-4567", "(***) ***-4567"},
		{"phone dashed", PhoneMasker(), "555-123-4567", "***-***-4567"},
		{"phone short", PhoneMasker(), "123-4567", "***-4567"},
		{"card", CardMasker(), "4111111111111111", "************1111"},
		{"card spaced", CardMasker(), "4111 1111 1111 1111", "************1111"},
		{"card short", CardMasker(), "12", "**"},
		{"card mixed digits", CardMasker(), "4111 1111 1111 ١١١١", "********1111"},
		{"name", NameMasker(), "John Smith", "J*** S****"},
		{"name unicode", NameMasker(), "Zoë", "Z**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.masker.Mask(tt.input)
			if got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Mask(%q) produced invalid UTF-8", tt.input)
			}
		})
	}
}

func TestMaskerFunc(t *testing.T) {
	m := MaskerFunc(func(string) string { return "fixed" })
	if got := m.Mask("anything"); got != "fixed" {
		t.Errorf("Mask() = %q, want fixed", got)
	}
}
