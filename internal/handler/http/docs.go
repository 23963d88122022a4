package http

import (
	_ "embed"
	"net/http"
)

const swaggerUIPath = "/swagger-ui"

//go:embed apidocs/openapi.json
var openAPIDocument []byte

//go:embed apidocs/swagger.html
var swaggerUIPage []byte

func (h *Handler) apiDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDocument)
}

func (h *Handler) swaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(swaggerUIPage)
}
