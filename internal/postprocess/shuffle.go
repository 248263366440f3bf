package postprocess

import (
	"math/rand/v2"
	"strings"

	"github.com/eduexcel/icfesgen/internal/item"
)

// ShuffleOptions permutes the four options and returns the label that now
// holds the previously correct text. When the trimmed texts are not all
// distinct the input is returned unchanged. A nil rng uses the global
// source.
func ShuffleOptions(opts item.Options, correct item.Label, rng *rand.Rand) (item.Options, item.Label) {
	if !opts.Distinct() || !correct.Valid() {
		return opts, correct
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(len(opts))
	} else {
		perm = rand.Perm(len(opts))
	}

	var out item.Options
	next := correct
	for i, from := range perm {
		out[i] = strings.TrimSpace(opts[from])
		if item.Label(from) == correct {
			next = item.Label(i)
		}
	}
	return out, next
}
