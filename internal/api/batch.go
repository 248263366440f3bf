package api

import (
	"net/http"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

// batchRequest is the body of POST /ia/preguntas. The batch path takes
// area and subtema as given; they are not matched against the catalog.
type batchRequest struct {
	Area     string `json:"area" validate:"required,max=50"`
	Subtema  string `json:"subtema" validate:"required,max=200"`
	Estilo   string `json:"estilo_kolb" validate:"max=20"`
	Cantidad int    `json:"cantidad" validate:"gte=1,lte=100"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	body := batchRequest{Cantidad: defaultPackCount}
	if err := decodeJSON(r, &body); err != nil {
		s.respondFailure(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(body); err != nil {
		s.respondFailure(w, r, http.StatusUnprocessableEntity, validationMessages(err)...)
		return
	}

	req := normalize.Request{Area: body.Area, Subtema: body.Subtema, Estilo: body.Estilo}
	res, err := s.batch.Generate(r.Context(), req, body.Cantidad)
	if err != nil {
		s.respondFailure(w, r, statusFor(err), err.Error())
		return
	}

	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"ok":              len(res.Questions) > 0,
		"enabled":         s.batch.Enabled(),
		"fallback_reason": res.FallbackReason,
		"preguntas":       res.Questions,
		"storage":         item.ForStorage(res.Questions),
		"mobile":          item.ForMobile(res.Questions),
		"tokens":          res.Usage,
	})
}
