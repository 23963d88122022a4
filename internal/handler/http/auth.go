package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var request models.AuthRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.SignUp(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("login", request.Login).Msg("user signed up")
	utils.WriteJSON(w, models.TokenResponse{JWT: token.String()}, http.StatusOK)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var request models.AuthRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.SignIn(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{JWT: token.String()}, http.StatusOK)
}
