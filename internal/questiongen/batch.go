package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/coerce"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/logger"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/prompt"
)

const reasonDisabled = "servicio de IA no habilitado: API key no configurada"

// BatchGenerator asks for a whole list of questions in one call and
// returns them in the array-of-options shape. Post-processing is not
// applied. When the model path is unavailable it substitutes canned
// items tagged as fallback.
type BatchGenerator struct {
	gw     *llm.Gateway
	model  string
	config Config
	log    *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBatch creates a BatchGenerator. A nil gw disables the model path;
// model is still recorded on fallback items.
func NewBatch(gw *llm.Gateway, model string, cfg Config, rng *rand.Rand, log *logger.Logger) *BatchGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = logger.Nop()
	}
	if gw != nil {
		model = gw.Model()
	}
	return &BatchGenerator{gw: gw, model: model, config: cfg, log: log, rng: rng}
}

// Enabled reports whether a model can be called.
func (g *BatchGenerator) Enabled() bool { return g.gw != nil }

func (g *BatchGenerator) Policy() Policy { return PolicyBestEffort }

// Generate returns count questions. It only fails for an invalid count;
// model failures are reported through Result.FallbackReason.
func (g *BatchGenerator) Generate(ctx context.Context, req normalize.Request, count int) (*Result, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	req = withDefaults(req)

	if !g.Enabled() {
		g.log.Warn("batch generation disabled, using fallback items", "count", count)
		return g.fallback(req, count, reasonDisabled, llm.Usage{}), nil
	}

	questions, usage, err := g.fromModel(ctx, req, count)
	if err != nil {
		g.log.Error("batch generation failed, using fallback items",
			"area", req.Area, "subtema", req.Subtema, "error", err)
		return g.fallback(req, count, err.Error(), usage), nil
	}

	g.log.Info("batch generated", "area", req.Area, "subtema", req.Subtema,
		"requested", count, "generated", len(questions), "total_tokens", usage.TotalTokens)
	return &Result{
		Policy:    PolicyBestEffort,
		Requested: count,
		Questions: questions,
		Usage:     usage,
	}, nil
}

type batchReply struct {
	Preguntas []json.RawMessage `json:"preguntas"`
}

func (g *BatchGenerator) fromModel(ctx context.Context, req normalize.Request, count int) ([]item.Transformed, llm.Usage, error) {
	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.BatchSystem(req.Area, req.Estilo)},
		{Role: llm.RoleUser, Content: prompt.BatchUser(req.Area, req.Subtema, count)},
	}
	maxTokens := max(count*g.config.BatchTokensPerQuestion, normalize.MinMaxTokens)

	var usage llm.Usage
	reply, err := g.gw.Complete(llm.WithPurpose(ctx, llm.PurposeBatch), msgs, maxTokens, g.config.BatchTemperature)
	if reply != nil {
		usage = reply.Usage
	}
	if err != nil {
		return nil, usage, err
	}

	obj, err := coerce.ExtractJSON(reply.Text)
	if err != nil {
		return nil, usage, err
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, usage, fmt.Errorf("re-encode batch reply: %w", err)
	}
	if err := llm.ValidateJSON(BatchSchema, raw); err != nil {
		return nil, usage, fmt.Errorf("el modelo no devolvió preguntas válidas: %w", err)
	}

	var parsed batchReply
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, usage, fmt.Errorf("decode batch reply: %w", err)
	}

	out := make([]item.Transformed, 0, len(parsed.Preguntas))
	for i, entry := range parsed.Preguntas {
		it, err := batchEntry(entry)
		if err != nil {
			g.log.Warn("batch entry skipped", "area", req.Area, "subtema", req.Subtema,
				"index", i, "error", err)
			continue
		}
		it.Area = req.Area
		it.Subtema = req.Subtema
		it.Estilo = req.Estilo
		it.Meta[item.MetaSource] = item.SourceModel
		setDefault(it.Meta, item.MetaModel, reply.Info.Model)
		setDefault(it.Meta, item.MetaGenerationID, uuid.NewString())
		out = append(out, item.Transform(it, len(out)+1))
	}
	if len(out) == 0 {
		return nil, usage, fmt.Errorf("el modelo no devolvió preguntas válidas: %d entradas descartadas", len(parsed.Preguntas))
	}
	return out, usage, nil
}

// batchEntry coerces one element of the preguntas array into an item.
func batchEntry(raw json.RawMessage) (*item.Item, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, &coerce.SchemaError{Reason: "entry is not a JSON object"}
	}
	return coerce.Enforce(coerce.NormalizeKeys(obj))
}

func (g *BatchGenerator) fallback(req normalize.Request, count int, reason string, usage llm.Usage) *Result {
	res := &Result{
		Policy:         PolicyBestEffort,
		Requested:      count,
		Usage:          usage,
		FallbackReason: reason,
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range count {
		res.Questions = append(res.Questions, item.Transform(FallbackItem(req, g.model, g.rng), i+1))
	}
	return res
}

// withDefaults fills the fields the batch path does not take from callers.
func withDefaults(req normalize.Request) normalize.Request {
	if req.Estilo == "" {
		req.Estilo = catalog.DefaultStyle
	}
	if req.MinWords == 0 {
		req.MinWords = normalize.DefaultMinWords
	}
	if req.MaxWords == 0 {
		req.MaxWords = normalize.DefaultMaxWords
	}
	return req
}
