package handler

import (
	"fmt"
	"net/http"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/utils"
)

// Contact accepts a public contact form submission and forwards it to the
// site owner. Rate limited at the router; delivery failures surface as 500.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req api.ContactRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}
	if err := h.mailer.IsCorrect(req.Email); err != nil {
		utils.WriteError(w, err)
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = "New contact form submission"
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message)

	if err := h.mailer.Send(h.cfg.Public.ContactRecipient, subject, body); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Message sent")
}
