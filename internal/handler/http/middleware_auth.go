package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/app"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the caller's id and role in
// the request context (see [utils.WithAuthClaims]). Requests without a valid
// token are rejected with 401 and the JSON body {"message":"Unauthorized"}.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			utils.WriteError(w, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			utils.WriteError(w, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithAuthClaims(ctx, claims)))
	})
}

// adminOnly lets through callers whose token carries the ADMIN role.
// It must run after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := utils.GetAuthClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin() {
			logger.FromRequest(r).Warn().Str("path", r.URL.Path).Msg("admin route called without ADMIN role")
			utils.WriteError(w, http.StatusForbidden, app.MsgAccessDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}
