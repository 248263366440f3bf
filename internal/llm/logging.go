package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eduexcel/icfesgen/internal/logger"
	"github.com/eduexcel/icfesgen/internal/store"
)

// LogOptions tunes what the logging decorator records.
type LogOptions struct {
	// Provider is the provider name stored with each event.
	Provider string
	// KeepBodies stores the serialized request and raw reply.
	KeepBodies bool
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	log       *logger.Logger
	opts      LogOptions
}

// WithLogging wraps a Provider with event logging. repo and log may be nil.
func WithLogging(p Provider, repo store.EventRepo, log *logger.Logger, opts LogOptions) Provider {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Provider == "" {
		opts.Provider = p.ModelID()
	}
	return &LoggingProvider{inner: p, eventRepo: repo, log: log, opts: opts}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:  l.opts.Provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latencyMs,
		Success:   err == nil,
	}
	if l.opts.KeepBodies {
		data.RequestBody = serializeRequest(req)
	}

	if resp != nil {
		data.PromptTokens = resp.Usage.PromptTokens
		data.CompletionTokens = resp.Usage.CompletionTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		if l.opts.KeepBodies {
			data.ResponseBody = string(resp.Content)
		}
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm call failed",
			"provider", data.Provider, "model", data.Model, "purpose", purpose,
			"latency_ms", latencyMs, "error", err)
	} else {
		l.log.Debug("llm call",
			"provider", data.Provider, "model", data.Model, "purpose", purpose,
			"latency_ms", latencyMs,
			"prompt_tokens", data.PromptTokens, "completion_tokens", data.CompletionTokens)
	}

	// A failed event write never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Seed != nil {
		fmt.Fprintf(&b, "[seed: %d]\n", *req.Seed)
	}
	if req.JSONMode {
		b.WriteString("[json mode]\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
