package forms

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// A Rule checks one trimmed field value. values holds every trimmed value of
// the form so cross-field rules can compare. An empty return means valid.
type Rule func(value string, values map[string]string) string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Required(msg string) Rule {
	return func(v string, _ map[string]string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// MinLen counts runes, not bytes.
func MinLen(n int, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if utf8.RuneCountInString(v) < n {
			return msg
		}
		return ""
	}
}

func Email(msg string) Rule {
	return func(v string, _ map[string]string) string {
		if !emailRe.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Matches requires the value to equal the value of field other exactly.
func Matches(other, msg string) Rule {
	return func(v string, values map[string]string) string {
		if v != values[other] {
			return msg
		}
		return ""
	}
}

// Digits requires exactly n ASCII decimal digits.
func Digits(n int, msg string) Rule {
	re := regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, n))
	return func(v string, _ map[string]string) string {
		if !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Alpha accepts letters only. The empty string passes; pair with Required.
func Alpha(msg string) Rule {
	return func(v string, _ map[string]string) string {
		for _, r := range v {
			if !unicode.IsLetter(r) {
				return msg
			}
		}
		return ""
	}
}
