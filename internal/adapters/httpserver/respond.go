package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/lojamobile/internal/domain"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// fail maps err to a status code and writes it.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= 500 {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request fallido")
	}
	writeError(w, code, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInsufficientAmount),
		errors.Is(err, domain.ErrInvalidPayment),
		errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAssistantBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: json inválido", domain.ErrValidation)
	}
	return nil
}
