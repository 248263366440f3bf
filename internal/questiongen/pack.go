package questiongen

import (
	"context"
	"math"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

// PackResult is the outcome of GeneratePack. Items holds every accepted
// item even when the pack as a whole failed.
type PackResult struct {
	Requested int
	Items     []item.Item
	Errors    []SlotError
	Usage     llm.Usage
}

// Generated returns the number of accepted items.
func (p *PackResult) Generated() int { return len(p.Items) }

// OK reports whether every slot produced an item.
func (p *PackResult) OK() bool {
	return len(p.Errors) == 0 && len(p.Items) == p.Requested
}

// AveragePerItem is total tokens over accepted items, rounded to two
// decimals. An empty pack divides by one.
func (p *PackResult) AveragePerItem() float64 {
	avg := float64(p.Usage.TotalTokens) / float64(max(len(p.Items), 1))
	return math.Round(avg*100) / 100
}

// GeneratePack fills count slots. Each slot gets up to PackAttempts
// attempts; a question whose text matches an accepted one counts as a
// failed attempt. Usage includes failed attempts.
func (g *StrictGenerator) GeneratePack(ctx context.Context, req normalize.Request, count int) (*PackResult, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}

	res := &PackResult{Requested: count}
	seen := make(map[string]bool, count)

	for i := range count {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, SlotError{Index: i, Err: err})
			break
		}

		for attempt := 1; attempt <= g.config.PackAttempts; attempt++ {
			it, usage, err := g.GenerateOne(ctx, req)
			res.Usage = res.Usage.Add(usage)
			if err == nil && seen[it.Pregunta] {
				err = &DuplicateError{Pregunta: it.Pregunta}
			}
			if err == nil {
				seen[it.Pregunta] = true
				res.Items = append(res.Items, *it)
				break
			}

			g.log.Warn("pack attempt failed", "slot", i, "attempt", attempt, "error", err)
			if attempt == g.config.PackAttempts {
				res.Errors = append(res.Errors, SlotError{Index: i, Attempts: attempt, Err: err})
			}
		}
	}

	g.log.Info("pack finished",
		"requested", count, "generated", len(res.Items), "errors", len(res.Errors),
		"total_tokens", res.Usage.TotalTokens)
	return res, nil
}
