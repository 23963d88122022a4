package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCardFilter(r, true)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cards, err := h.services.CardService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCards(w, cards, filter.Fields)
}

func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	var request models.CardCreateRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	card, err := h.services.CardService.Create(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("card_id", card.ID.String()).Msg("card created")
	utils.WriteJSON(w, card, http.StatusCreated)
}

func (h *Handler) updateCardStatus(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathUUID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.CardUpdateStatusRequest
	if err = decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.CardService.UpdateStatus(r.Context(), cardID, request); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathUUID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.CardService.Delete(r.Context(), cardID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
