package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// slotError is one entry of an errors list in a generation response.
type slotError struct {
	Index    int    `json:"index"`
	Message  string `json:"message"`
	Attempts int    `json:"attempts,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encode response", "request_id", RequestIDFromContext(r.Context()), "error", err)
	}
}

// respondFailure writes {ok:false, errors:[{index:0, message}]}.
func (s *Server) respondFailure(w http.ResponseWriter, r *http.Request, status int, messages ...string) {
	errs := make([]slotError, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, slotError{Index: 0, Message: m})
	}
	s.respondJSON(w, r, status, map[string]any{"ok": false, "errors": errs})
}

// decodeJSON reads a single JSON value from the body into v. An empty
// body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("cuerpo JSON inválido: %w", err)
	}
	return nil
}

// validationMessages flattens struct validation failures to one message
// per field.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: no cumple la regla %q", fe.Field(), fe.Tag()))
	}
	return out
}
