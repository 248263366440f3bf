package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eduexcel/icfesgen/internal/catalog"
	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/normalize"
	"github.com/eduexcel/icfesgen/internal/questiongen"
)

const (
	serviceName      = "EduExcel - Generador de Preguntas ICFES"
	defaultPackCount = 5
	msgDisabled      = "servicio de IA no habilitado: API key no configurada"
)

type packTokens struct {
	llm.Usage
	AveragePerItem float64 `json:"average_per_item"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"nombre":  serviceName,
		"version": s.version,
		"modelo":  s.model,
		"endpoints": map[string]string{
			"catalogo":          "/icfes/catalogo",
			"validar":           "/icfes/validar",
			"generar":           "/icfes/generar",
			"generar_pack":      "/icfes/generar_pack",
			"debug":             "/debug/raw",
			"doc_justificacion": "/icfes/doc_justificacion",
			"ia_preguntas":      "/ia/preguntas",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":            true,
		"strict_ready":  s.strict != nil,
		"batch_enabled": s.batch.Enabled(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]any{"ok": true, "catalogo": catalog.Current()})
}

func (s *Server) handleJustification(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":            true,
		"formato":       "markdown_confluence",
		"documentacion": catalog.Justification(),
	})
}

// readRequest decodes and normalizes a generation request. On failure it
// returns the messages to report.
func (s *Server) readRequest(r *http.Request) (normalize.Request, []string) {
	req := normalize.DefaultRequest()
	if err := decodeJSON(r, &req); err != nil {
		return req, []string{err.Error()}
	}
	return s.norm.Validate(req)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, errs := s.readRequest(r)
	if len(errs) > 0 {
		s.respondJSON(w, r, http.StatusOK, map[string]any{
			"ok":          false,
			"errors":      errs,
			"suggestions": catalog.Current(),
		})
		return
	}
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":         true,
		"normalized": req,
		"message":    "Parámetros válidos.",
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, errs := s.readRequest(r)
	if len(errs) > 0 {
		s.respondFailure(w, r, http.StatusUnprocessableEntity, errs...)
		return
	}
	if s.strict == nil {
		s.respondFailure(w, r, http.StatusServiceUnavailable, msgDisabled)
		return
	}

	it, usage, err := s.strict.GenerateOne(r.Context(), req)
	if err != nil {
		s.log.Warn("generation failed",
			"request_id", RequestIDFromContext(r.Context()), "area", req.Area, "error", err)
		s.respondFailure(w, r, statusFor(err), err.Error())
		return
	}
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":     true,
		"item":   it,
		"tokens": usage,
	})
}

func (s *Server) handleGeneratePack(w http.ResponseWriter, r *http.Request) {
	count := defaultPackCount
	if q := r.URL.Query().Get("cantidad"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			s.respondFailure(w, r, http.StatusBadRequest, "cantidad debe ser un entero")
			return
		}
		count = n
	}

	req, errs := s.readRequest(r)
	if len(errs) > 0 {
		s.respondFailure(w, r, http.StatusUnprocessableEntity, errs...)
		return
	}
	if s.strict == nil {
		s.respondFailure(w, r, http.StatusServiceUnavailable, msgDisabled)
		return
	}

	pack, err := s.strict.GeneratePack(r.Context(), req, count)
	if err != nil {
		s.respondFailure(w, r, http.StatusBadRequest, err.Error())
		return
	}

	slotErrs := make([]slotError, 0, len(pack.Errors))
	for _, se := range pack.Errors {
		slotErrs = append(slotErrs, slotError{Index: se.Index, Message: se.Err.Error(), Attempts: se.Attempts})
	}
	items := pack.Items
	if items == nil {
		items = []item.Item{}
	}
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":        pack.OK(),
		"requested": pack.Requested,
		"generated": pack.Generated(),
		"items":     items,
		"errors":    slotErrs,
		"tokens":    packTokens{Usage: pack.Usage, AveragePerItem: pack.AveragePerItem()},
	})
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	req, errs := s.readRequest(r)
	if len(errs) > 0 {
		s.respondJSON(w, r, http.StatusUnprocessableEntity, map[string]any{"ok": false, "errors": errs})
		return
	}
	if s.strict == nil {
		s.respondFailure(w, r, http.StatusServiceUnavailable, msgDisabled)
		return
	}

	out, err := s.strict.Raw(r.Context(), req)
	if err != nil {
		s.respondFailure(w, r, statusFor(err), err.Error())
		return
	}
	if !out.Corrected {
		s.respondJSON(w, r, http.StatusOK, map[string]any{"ok": true, "raw": out.Raw1, "tokens": out.Usage1})
		return
	}
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":           true,
		"raw1":         out.Raw1,
		"raw2":         out.Raw2,
		"tokens1":      out.Usage1,
		"tokens2":      out.Usage2,
		"tokens_total": out.Total(),
	})
}

// statusFor maps a generation error to an HTTP status.
func statusFor(err error) int {
	var invalid *questiongen.ErrInvalidCount
	switch {
	case errors.As(err, &invalid), errors.Is(err, llm.ErrInvalidCall):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
