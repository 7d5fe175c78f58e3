package handler

import (
	"net/http"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	"github.com/atelier-dev/atelier/internal/utils"
)

// SetupStatus tells the admin frontend whether the one-time bootstrap form
// should be shown.
func (h *Handler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	available, err := h.setup.Available()
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusOK, api.SetupStatusResponse{SetupAvailable: available})
}

// Setup creates the first superadmin. Unauthenticated on purpose; the
// service and storage layers refuse once any account exists.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	var req api.SetupRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	account, err := h.setup.CreateFirst(req.Email, req.Password, req.Name)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, api.NewAccountResponse(account))
}

// CreateAccount adds another admin; the router gates it on superadmin.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req api.CreateAccountRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	account, err := h.setup.CreateAccount(req.Email, req.Password, req.Name, domain.Role(req.Role))
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, api.NewAccountResponse(account))
}
