// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

func (h *Handler) listOwnCards(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCardFilter(r, false)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cards, err := h.services.CardService.ListOwn(r.Context(), callerID(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCards(w, cards, filter.Fields)
}

func (h *Handler) cardBalance(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathUUID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	balance, err := h.services.CardService.Balance(r.Context(), callerID(r), cardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, balance, http.StatusOK)
}

func (h *Handler) changeBalance(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathUUID(r, "cardId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.CardBalanceRequest
	if err = decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	balance, err := h.services.CardService.ChangeBalance(r.Context(), callerID(r), cardID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, balance, http.StatusOK)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var request models.CardTransferRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.CardService.Transfer(r.Context(), callerID(r), request); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requestCardStatus(w http.ResponseWriter, r *http.Request) {
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

	if err = h.services.CardService.RequestStatusUpdate(r.Context(), callerID(r), cardID, request.Status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// writeCards renders full views, or only the requested fields of each view.
func writeCards(w http.ResponseWriter, cards []models.CardView, fields []string) {
	if len(fields) == 0 {
		utils.WriteJSON(w, cards, http.StatusOK)
		return
	}

	projected := make([]map[string]any, 0, len(cards))
	for _, card := range cards {
		projected = append(projected, card.Project(fields))
	}
	utils.WriteJSON(w, projected, http.StatusOK)
}
