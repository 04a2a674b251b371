package transform

import (
	"strings"
	"unicode/utf8"

	"github.com/zoobzio/mapper"
)

// Masker hides part of a value while keeping it recognizable.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a plain function to Masker.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

// Mask returns a callback that masks the target field.
func Mask[S, T any](field string, m Masker, opts ...Option) mapper.Callback[S, T] {
	cache := resolve(opts)
	return func(_ S, dst *T) error {
		v, err := stringField(cache, dst, field, "mask")
		if err != nil {
			return err
		}
		if v.Len() == 0 {
			return nil
		}
		v.SetString(m.Mask(v.String()))
		return nil
	}
}

// EmailMasker keeps the first character and the domain: a***@example.com.
func EmailMasker() Masker {
	return MaskerFunc(func(value string) string {
		at := strings.LastIndex(value, "@")
		if at < 1 {
			return stars(utf8.RuneCountInString(value))
		}
		_, size := utf8.DecodeRuneInString(value)
		return value[:size] + "***" + value[at:]
	})
}

// SSNMasker keeps the last four digits: ***-**-6789.
func SSNMasker() Masker {
	return MaskerFunc(func(value string) string {
		last4, ok := lastDigits(value, 4)
		if !ok {
			return stars(utf8.RuneCountInString(value))
		}
		return "***-**-" + last4
	})
}

// PhoneMasker keeps the last four digits: (***) ***-4567.
func PhoneMasker() Masker {
	return MaskerFunc(func(value string) string {
		last4, ok := lastDigits(value, 4)
		if !ok {
			return stars(utf8.RuneCountInString(value))
		}
		n := len(digits(value))
		switch {
		case n >= 10 && strings.HasPrefix(value, "("):
			return "(***) ***-" + last4
		case n >= 10:
			return "***-***-" + last4
		default:
			return "***-" + last4
		}
	})
}

// CardMasker keeps the last four digits: ************1111.
func CardMasker() Masker {
	return MaskerFunc(func(value string) string {
		d := digits(value)
		if len(d) < 4 {
			return stars(utf8.RuneCountInString(value))
		}
		return stars(len(d)-4) + d[len(d)-4:]
	})
}

// NameMasker keeps the first letter of each word: J*** S****.
func NameMasker() Masker {
	return MaskerFunc(func(value string) string {
		words := strings.Fields(value)
		for i, w := range words {
			r := []rune(w)
			words[i] = string(r[0]) + stars(len(r)-1)
		}
		return strings.Join(words, " ")
	})
}

// digits keeps the ASCII digits of s, so results can be sliced bytewise.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastDigits(s string, n int) (string, bool) {
	d := digits(s)
	if len(d) < n {
		return "", false
	}
	return d[len(d)-n:], true
}

func stars(n int) string {
	return strings.Repeat("*", n)
}
