// Package questiongen drives item generation: prompt, model call,
// coercion and post-processing, for single items, packs and batches.
package questiongen

import (
	"context"
	"fmt"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

// Policy names how a generator reacts to a bad model response.
type Policy string

const (
	// PolicyStrict fails the slot; no canned content is ever substituted.
	PolicyStrict Policy = "strict"
	// PolicyBestEffort substitutes rule-based items tagged as fallback.
	PolicyBestEffort Policy = "best-effort"
)

// MaxCount is the largest number of questions one call may ask for.
const MaxCount = 100

// Generator produces count questions for a normalized request.
type Generator interface {
	Generate(ctx context.Context, req normalize.Request, count int) (*Result, error)
	Policy() Policy
}

// Result is the common outcome of both generators, in the batch shape.
type Result struct {
	Policy    Policy
	Requested int
	Questions []item.Transformed
	Errors    []SlotError
	Usage     llm.Usage

	// FallbackReason is set when a best-effort generator substituted
	// canned items, and says why.
	FallbackReason string
}

// OK reports whether every requested question was produced without error.
func (r *Result) OK() bool {
	return len(r.Errors) == 0 && len(r.Questions) == r.Requested
}

// ErrInvalidCount is returned for a count outside 1..MaxCount.
type ErrInvalidCount struct {
	Count int
}

func (e *ErrInvalidCount) Error() string {
	return fmt.Sprintf("cantidad debe estar entre 1 y %d (recibido %d)", MaxCount, e.Count)
}

func checkCount(count int) error {
	if count < 1 || count > MaxCount {
		return &ErrInvalidCount{Count: count}
	}
	return nil
}
