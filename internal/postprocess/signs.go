package postprocess

import (
	"regexp"

	"github.com/eduexcel/icfesgen/internal/item"
)

// A "+" directly before a number, unless it follows a digit, minus, dot
// or comma.
var plusRe = regexp.MustCompile(`(^|[^0-9\-.,])\+(\d+(?:[.,]\d+)?)`)

// StripPlusSigns removes explicit plus signs in front of positive numbers.
func StripPlusSigns(s string) string {
	return plusRe.ReplaceAllString(s, "${1}${2}")
}

// StripOptionSigns applies StripPlusSigns to every option.
func StripOptionSigns(o item.Options) item.Options {
	for _, l := range item.Labels {
		o[l] = StripPlusSigns(o[l])
	}
	return o
}
