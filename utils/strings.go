package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents strips combining marks from a string, so "Évêché" becomes
// "Eveche".
func RemoveAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// FormatDistrictCode normalizes an arrondissement code to the "NNe" form used
// by the upstream datasets. Full postal codes (75001, 75013, ...) keep only
// their last two digits: 75013 -> "13e", 7 -> "07e".
func FormatDistrictCode(code int) string {
	if code >= 75000 {
		code = code % 100
	}
	return fmt.Sprintf("%02de", code)
}

// CleanStreetName uppercases an accent-stripped street name and drops a
// leading numeric house-number token, so "12 rue de l'Évêché" becomes
// "RUE DE L'EVECHE".
func CleanStreetName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) > 0 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			fields = fields[1:]
		}
	}
	return strings.ToUpper(RemoveAccents(strings.Join(fields, " ")))
}

// TitleCase renders a street name in title case for display.
func TitleCase(name string) string {
	return cases.Title(language.French).String(strings.ToLower(name))
}
