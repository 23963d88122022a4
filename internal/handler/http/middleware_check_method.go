// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bank-cards/internal/app"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed]. Chi calls it when the path matches a route but
// the method does not; the reply lists the supported methods in the Allow
// header and carries the usual JSON error body.
func methodNotAllowed(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.NewRouteContext()
		allowed := make([]string, 0, 4)
		for _, method := range []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete,
		} {
			rctx.Reset()
			if router.Match(rctx, method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteError(w, http.StatusMethodNotAllowed, app.MsgMethodNotAllowed)
	}
}

// notFound replaces chi's plain-text 404 with the JSON error body.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, app.MsgRouteNotFound)
}
