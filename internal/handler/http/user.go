package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	info, err := h.services.UserService.Me(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, info, http.StatusOK)
}

// requestAdmin grants the ADMIN role to a caller who knows the admin secret
// and answers with a token that already carries the new role.
func (h *Handler) requestAdmin(w http.ResponseWriter, r *http.Request) {
	var request models.AdminRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.UserService.RequestAdmin(r.Context(), callerID(r), request.Secret)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{JWT: token.String()}, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, users, http.StatusOK)
}
