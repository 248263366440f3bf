package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/eduexcel/icfesgen/internal/config"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/logger"
	"github.com/eduexcel/icfesgen/internal/questiongen"
	"github.com/eduexcel/icfesgen/internal/store"
)

var errNoCredential = errors.New("LLM provider not configured: set the API key for LLM_PROVIDER")

// runtime holds the dependencies shared by the generation commands.
type runtime struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store // nil when the event log could not be opened
	model string

	// strict is nil when no credential is configured.
	strict *questiongen.StrictGenerator
	batch  *questiongen.BatchGenerator
}

// newRuntime loads configuration, opens the event log and builds the
// generators. With quiet set nothing is logged, so the TUI owns the
// terminal.
func newRuntime(cmd *cobra.Command, quiet bool) (*runtime, error) {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.Nop()
	if !quiet {
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, err
		}
	}

	rt := &runtime{cfg: cfg, log: log}

	// The event log is optional; generation works without it.
	var repo store.EventRepo
	if dbPath, err := resolveDBPath(cmd, cfg); err != nil {
		log.Warn("event log disabled", "error", err)
	} else if st, err := store.Open(dbPath); err != nil {
		log.Warn("event log disabled", "path", dbPath, "error", err)
	} else {
		rt.store = st
		repo = st.EventRepo()
	}

	llmCfg := cfg.LLM()
	rt.model = llmCfg.Model()
	genCfg := generatorConfig(cfg)

	var gw *llm.Gateway
	if llmCfg.HasCredential() {
		provider, err := llm.NewProvider(ctx, llmCfg, repo, log)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
		gw = llm.NewGateway(provider, llm.GatewayConfig{
			Timeout:       cfg.Timeout(),
			SeedRandomize: cfg.SeedRandomize,
		}, log)
		rt.strict = questiongen.NewStrict(gw, genCfg, nil, log)
	} else {
		log.Warn("no LLM credential configured, generation disabled", "provider", cfg.Provider)
	}
	rt.batch = questiongen.NewBatch(gw, rt.model, genCfg, nil, log)

	return rt, nil
}

// requireStrict returns the strict generator or errNoCredential.
func (rt *runtime) requireStrict() (*questiongen.StrictGenerator, error) {
	if rt.strict == nil {
		return nil, errNoCredential
	}
	return rt.strict, nil
}

func (rt *runtime) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
	rt.log.Sync()
}

// generatorConfig drops the word range check when STRICT_MODE is off.
func generatorConfig(cfg *config.Config) questiongen.Config {
	out := questiongen.DefaultConfig()
	if !cfg.StrictMode {
		out.Validators = slices.DeleteFunc(out.Validators, func(v questiongen.Validator) bool {
			_, ok := v.(*questiongen.WordRangeValidator)
			return ok
		})
	}
	return out
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EDUEXCEL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return store.DefaultDBPath(p)
	}
	return store.DefaultDBPath(cfg.DBPath)
}
