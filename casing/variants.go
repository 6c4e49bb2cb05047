package casing

import (
	"github.com/viant/tagly/format/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var variantFormats = []text.CaseFormat{
	text.CaseFormatLowerCamel,
	text.CaseFormatUpperCamel,
	text.CaseFormatLowerUnderscore,
	text.CaseFormatUpperUnderscore,
	text.CaseFormatLowerDash,
	text.CaseFormatUpperDash,
}

// Variants returns candidate wire-name spellings for one declared name,
// most preferred first: the name itself, its culture lowercase, then case
// format conversions of the detected source format. Duplicates are removed,
// order is stable for identical input.
func Variants(name string, culture language.Tag) []string {
	if name == "" {
		return nil
	}
	lower := cases.Lower(culture)
	from := text.DetectCaseFormat(name)
	candidates := make([]string, 0, 2+len(variantFormats))
	candidates = append(candidates, name, lower.String(name))
	for _, to := range variantFormats {
		candidates = append(candidates, from.Format(name, to))
	}
	var ret []string
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" || seen[candidate] {
			continue
		}
		seen[candidate] = true
		ret = append(ret, candidate)
	}
	return ret
}
