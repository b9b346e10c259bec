package handler

import (
	"net/http"

	"github.com/saqify/backend/internal/service"
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
// name, email, subject and message are validated; delivery failures are not reported.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeForm(w, r)
	if !ok {
		return
	}

	if _, err := h.contactService.Submit(r.Context(), input); err != nil {
		writeSubmitError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Message received successfully!",
	})
}
