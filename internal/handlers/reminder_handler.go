package handlers

import (
	"net/http"

	"hangman/internal/service"
)

// ReminderHandler exposes the idle game sweep on demand
type ReminderHandler struct {
	reminders *service.ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// Send handles GET /email/reminders. It runs one sweep and returns the idle
// games it found, masked.
func (h *ReminderHandler) Send(w http.ResponseWriter, r *http.Request) {
	idle, err := h.reminders.Sweep(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, maskGames(idle))
}
