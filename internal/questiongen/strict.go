package questiongen

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/coerce"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/logger"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/postprocess"
	"github.com/eduexcel/icfesgen/internal/prompt"
)

// StrictGenerator produces object-of-options items and never substitutes
// canned content for a bad model response.
type StrictGenerator struct {
	gw     *llm.Gateway
	config Config
	log    *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStrict creates a StrictGenerator. rng drives option shuffling; nil
// uses a randomly seeded source. log may be nil.
func NewStrict(gw *llm.Gateway, cfg Config, rng *rand.Rand, log *logger.Logger) *StrictGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.PackAttempts < 1 {
		cfg.PackAttempts = 1
	}
	return &StrictGenerator{gw: gw, config: cfg, log: log, rng: rng}
}

func (g *StrictGenerator) Policy() Policy { return PolicyStrict }

// GenerateOne produces a single item. The only retry is the corrective
// re-prompt sent when the first reply does not look like item JSON. The
// returned usage covers every call made, including on error.
func (g *StrictGenerator) GenerateOne(ctx context.Context, req normalize.Request) (*item.Item, llm.Usage, error) {
	text, usage, info, err := g.complete(ctx, req)
	if err != nil {
		return nil, usage, err
	}

	it, err := coerce.Parse(text)
	if err != nil {
		g.log.Warn("model output rejected", "area", req.Area, "subtema", req.Subtema, "error", err)
		return nil, usage, err
	}
	if it.Meta[item.MetaAnswerGuessed] == true {
		g.log.Warn("answer letter not found in reply, defaulted to A", "area", req.Area, "subtema", req.Subtema)
	}

	g.mu.Lock()
	postprocess.Apply(it, postprocess.Params{
		Area:     req.Area,
		MinWords: req.MinWords,
		MaxWords: req.MaxWords,
	}, g.rng)
	g.mu.Unlock()

	it.Area = req.Area
	it.Subtema = req.Subtema
	it.Estilo = req.Estilo
	if it.Estilo == "" {
		it.Estilo = catalog.DefaultStyle
	}
	stampMeta(it, info, g.gw.SeedRandomize(), usage)

	for _, v := range g.config.Validators {
		if verr := v.Validate(it, req); verr != nil {
			return nil, usage, verr
		}
	}
	return it, usage, nil
}

// complete makes the first call and, when needed, the corrective one.
func (g *StrictGenerator) complete(ctx context.Context, req normalize.Request) (string, llm.Usage, llm.CallInfo, error) {
	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.System(req.Area)},
		{Role: llm.RoleUser, Content: prompt.User(req)},
	}

	var usage llm.Usage
	reply, err := g.gw.Complete(llm.WithPurpose(ctx, llm.PurposeItem), msgs, req.MaxTokens, req.Temperature)
	if reply != nil {
		usage = usage.Add(reply.Usage)
	}
	if err != nil {
		return "", usage, llm.CallInfo{}, err
	}
	if llm.LooksLikeItemJSON(reply.Text) {
		return reply.Text, usage, reply.Info, nil
	}

	g.log.Info("reply is not item JSON, sending corrective prompt", "area", req.Area, "subtema", req.Subtema)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: prompt.Corrective})
	reply, err = g.gw.Complete(llm.WithPurpose(ctx, llm.PurposeItemCorrective), msgs, req.MaxTokens, 0.0)
	if reply != nil {
		usage = usage.Add(reply.Usage)
	}
	if err != nil {
		return "", usage, llm.CallInfo{}, err
	}
	return reply.Text, usage, reply.Info, nil
}

// stampMeta fills provenance keys the model did not set itself.
func stampMeta(it *item.Item, info llm.CallInfo, seedRandomize bool, usage llm.Usage) {
	if it.Meta == nil {
		it.Meta = map[string]any{}
	}
	setDefault(it.Meta, item.MetaModel, info.Model)
	setDefault(it.Meta, item.MetaSeedRandomize, seedRandomize)
	if info.Seed != nil {
		setDefault(it.Meta, item.MetaSeed, *info.Seed)
	}
	setDefault(it.Meta, item.MetaTokens, usage)
	setDefault(it.Meta, item.MetaGenerationID, uuid.NewString())
	it.Meta[item.MetaSource] = item.SourceModel
}

func setDefault(m map[string]any, key string, v any) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

// Generate runs a pack and returns it in the batch shape.
func (g *StrictGenerator) Generate(ctx context.Context, req normalize.Request, count int) (*Result, error) {
	pack, err := g.GeneratePack(ctx, req, count)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Policy:    PolicyStrict,
		Requested: pack.Requested,
		Errors:    pack.Errors,
		Usage:     pack.Usage,
	}
	for i := range pack.Items {
		res.Questions = append(res.Questions, item.Transform(&pack.Items[i], i+1))
	}
	return res, nil
}
