package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"hangman/internal/apperrors"
)

// Meta carries the status block of every response envelope
type Meta struct {
	Code    int    `json:"code"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

// Envelope is the response shape of every endpoint
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

// persistenceMessage hides backend details from API clients.
const persistenceMessage = "There was an error while performing the requested operation."

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Envelope{Meta: Meta{Code: http.StatusOK}, Data: data}); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// respondError maps an error to the envelope's meta block. Client faults
// answer 400, missing credentials 401; storage failures keep their details out
// of the response body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	message := err.Error()

	kind := apperrors.TypeOf(err)
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case kind == "PersistenceException":
		log.Error().Err(err).Msg("request failed")
		message = persistenceMessage
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(Envelope{Meta: Meta{
		Code:    status,
		Type:    kind,
		Message: message,
	}})
	if encodeErr != nil {
		log.Error().Err(encodeErr).Msg("failed to encode error response")
	}
}
