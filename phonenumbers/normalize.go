package phonenumbers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize reduces a number to plain ASCII digits. When the input carries
// at least three keypad letters it is treated as a vanity number and the
// letters are mapped per ITU E.161; otherwise only digit variants are kept.
func Normalize(number string) string {
	if validAlphaPhoneRegexp.MatchString(number) {
		return normalizeHelper(number, allNormalizationMappings)
	}
	return NormalizeDigitsOnly(number)
}

// NormalizeDigitsOnly keeps only the digit variants of the input, mapped to
// ASCII, dropping everything else.
func NormalizeDigitsOnly(number string) string {
	return normalizeHelper(number, digitMappings)
}

func normalizeHelper(number string, mappings map[rune]rune) string {
	var sb strings.Builder
	sb.Grow(len(number))
	for _, r := range number {
		if mapped, ok := mappings[unicode.ToUpper(r)]; ok {
			sb.WriteRune(mapped)
		}
	}
	return sb.String()
}

// IsViablePhoneNumber checks whether a string looks enough like a phone
// number to attempt parsing: either a bare two-digit short number, or at
// least three digits surrounded by tolerated punctuation, optionally with a
// trailing extension.
func IsViablePhoneNumber(number string) bool {
	if utf8.RuneCountInString(number) < MinLengthForNSN {
		return false
	}
	return validPhoneNumberRegexp.MatchString(number)
}

// extractPossibleNumber trims a free-form string down to its phone-number
// portion: characters before the first plus or digit go, trailing characters
// that can never end a number go, and anything after a second-number marker
// (a slash followed by x) goes.
func extractPossibleNumber(number string) string {
	start := validStartCharRegexp.FindStringIndex(number)
	if start == nil {
		return ""
	}
	number = number[start[0]:]
	number = unwantedEndCharsRegexp.ReplaceAllString(number, "")
	if loc := secondNumberStartRegexp.FindStringIndex(number); loc != nil {
		number = number[:loc[0]]
	}
	return number
}
