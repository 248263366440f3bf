package questiongen

import (
	"context"

	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/prompt"
)

// RawOutput is the unprocessed model text of a single-item request, for
// diagnosing formatting problems. Raw2 is only set when the first reply
// triggered the corrective prompt.
type RawOutput struct {
	Raw1      string
	Usage1    llm.Usage
	Corrected bool
	Raw2      string
	Usage2    llm.Usage
}

// Total sums the usage of both calls.
func (r *RawOutput) Total() llm.Usage {
	return r.Usage1.Add(r.Usage2)
}

// Raw makes the same calls as GenerateOne and returns the text as is.
func (g *StrictGenerator) Raw(ctx context.Context, req normalize.Request) (*RawOutput, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDebugRaw)
	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.System(req.Area)},
		{Role: llm.RoleUser, Content: prompt.User(req)},
	}

	text, usage, err := g.gw.Call(ctx, msgs, req.MaxTokens, req.Temperature)
	if err != nil {
		return nil, err
	}
	out := &RawOutput{Raw1: text, Usage1: usage}
	if llm.LooksLikeItemJSON(text) {
		return out, nil
	}

	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: prompt.Corrective})
	text, usage, err = g.gw.Call(ctx, msgs, req.MaxTokens, 0.0)
	if err != nil {
		return nil, err
	}
	out.Corrected = true
	out.Raw2 = text
	out.Usage2 = usage
	return out, nil
}
