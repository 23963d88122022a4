package http

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-bank-cards/internal/app"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
)

// withRecover turns a panic in a handler into a 500 JSON reply.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.FromRequest(r).Error().
				Any("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			utils.WriteError(w, http.StatusInternalServerError, app.MsgInternalError)
		}()

		next.ServeHTTP(w, r)
	})
}
