// Package api exposes item generation over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eduexcel/icfesgen/internal/logger"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/questiongen"
)

// Options wires a Server.
type Options struct {
	Normalizer *normalize.Normalizer

	// Strict serves the single-item and pack endpoints. Nil means no
	// model credential is configured and those endpoints fail.
	Strict *questiongen.StrictGenerator

	// Batch serves /ia/preguntas. It is usable even without a credential.
	Batch *questiongen.BatchGenerator

	Model   string
	Version string
	Log     *logger.Logger
}

// Server holds the handler dependencies.
type Server struct {
	norm    *normalize.Normalizer
	strict  *questiongen.StrictGenerator
	batch   *questiongen.BatchGenerator
	model   string
	version string
	log     *logger.Logger
}

// NewServer builds a Server from opts.
func NewServer(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	norm := opts.Normalizer
	if norm == nil {
		norm = normalize.New()
	}
	batch := opts.Batch
	if batch == nil {
		batch = questiongen.NewBatch(nil, opts.Model, questiongen.DefaultConfig(), nil, log)
	}
	return &Server{
		norm:    norm,
		strict:  opts.Strict,
		batch:   batch,
		model:   opts.Model,
		version: opts.Version,
		log:     log,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/icfes", func(r chi.Router) {
		r.Get("/catalogo", s.handleCatalog)
		r.Get("/doc_justificacion", s.handleJustification)
		r.Post("/validar", s.handleValidate)
		r.Post("/generar", s.handleGenerate)
		r.Post("/generar_pack", s.handleGeneratePack)
	})

	r.Post("/debug/raw", s.handleRaw)
	r.Post("/ia/preguntas", s.handleBatch)

	return r
}
