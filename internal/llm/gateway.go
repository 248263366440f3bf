package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/eduexcel/icfesgen/internal/logger"
)

const (
	// FixedSeed is sent on every call when seeds are not randomized.
	FixedSeed = 42
	maxSeed   = 10_000_000
)

// errEmptyContent is wrapped in a GatewayError when the model replies
// with nothing but whitespace.
var errEmptyContent = errors.New("empty response content")

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	// Timeout bounds each call. Zero means no gateway-imposed bound.
	Timeout time.Duration

	// SeedRandomize draws a seed in [1, 10_000_000] per call instead of
	// using FixedSeed.
	SeedRandomize bool

	// Rand overrides the seed source. Nil uses a randomly seeded PCG.
	Rand *rand.Rand
}

// CallInfo describes the parameters a call was actually sent with.
type CallInfo struct {
	Model    string
	Seed     *int // nil when the model does not accept seeds
	JSONMode bool
}

// Reply is the outcome of a gateway call.
type Reply struct {
	Text  string
	Usage Usage
	Info  CallInfo
}

// Gateway is the single entry point generators use to talk to a model.
// It validates call parameters, applies the seed policy and drops
// parameters the configured model rejects.
type Gateway struct {
	provider Provider
	cfg      GatewayConfig
	caps     Capabilities
	log      *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGateway wraps p. log may be nil.
func NewGateway(p Provider, cfg GatewayConfig, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Gateway{
		provider: p,
		cfg:      cfg,
		caps:     CapabilitiesFor(p.ModelID()),
		log:      log,
		rng:      rng,
	}
}

// Model returns the configured model id.
func (g *Gateway) Model() string {
	return g.provider.ModelID()
}

// SeedRandomize reports whether seeds are drawn per call.
func (g *Gateway) SeedRandomize() bool {
	return g.cfg.SeedRandomize
}

// Call sends msgs and returns the trimmed reply text with its usage.
func (g *Gateway) Call(ctx context.Context, msgs []Message, maxTokens int, temperature float64) (string, Usage, error) {
	reply, err := g.Complete(ctx, msgs, maxTokens, temperature)
	if reply == nil {
		return "", Usage{}, err
	}
	return reply.Text, reply.Usage, err
}

// Complete is Call with the parameters the call was sent with. On a
// GatewayError for empty content the returned Reply still carries the
// usage that was consumed.
func (g *Gateway) Complete(ctx context.Context, msgs []Message, maxTokens int, temperature float64) (*Reply, error) {
	if err := validateCall(msgs, maxTokens, temperature); err != nil {
		return nil, err
	}

	info := CallInfo{
		Model:    g.provider.ModelID(),
		JSONMode: g.caps.JSONMode,
	}
	if g.caps.Seed {
		seed := g.nextSeed()
		info.Seed = &seed
	}

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(ctx, Request{
		Messages:    msgs,
		JSONMode:    info.JSONMode,
		Seed:        info.Seed,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, &GatewayError{Model: info.Model, Err: err}
	}

	reply := &Reply{
		Text:  strings.TrimSpace(string(resp.Content)),
		Usage: resp.Usage,
		Info:  info,
	}
	if reply.Text == "" {
		return reply, &GatewayError{Model: info.Model, Err: errEmptyContent}
	}

	g.log.Debug("model reply",
		"model", info.Model, "seed", seedValue(info.Seed),
		"tokens", reply.Usage.TotalTokens, "raw", truncate(reply.Text, 1000))
	return reply, nil
}

func (g *Gateway) nextSeed() int {
	if !g.cfg.SeedRandomize {
		return FixedSeed
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return 1 + g.rng.IntN(maxSeed)
}

func validateCall(msgs []Message, maxTokens int, temperature float64) error {
	if len(msgs) == 0 {
		return fmt.Errorf("%w: messages must be a non-empty list", ErrInvalidCall)
	}
	for i, m := range msgs {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has invalid role %q", ErrInvalidCall, i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("%w: message %d has empty content", ErrInvalidCall, i)
		}
	}
	if maxTokens < 1 {
		return fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidCall, maxTokens)
	}
	if temperature < 0 || temperature > 2 {
		return fmt.Errorf("%w: temperature must be in [0, 2], got %g", ErrInvalidCall, temperature)
	}
	return nil
}

// LooksLikeItemJSON reports whether text plausibly holds an item object.
func LooksLikeItemJSON(text string) bool {
	return strings.Contains(text, "{") && strings.Contains(text, "pregunta")
}

func seedValue(seed *int) any {
	if seed == nil {
		return nil
	}
	return *seed
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
