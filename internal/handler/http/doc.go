// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, role checks, request
// tracing, access logging, compression, CORS and security headers are
// handled in this package before requests are delegated to the service layer.
// Every error reply is a JSON body of the form {"message": ..., "code": ...}.
package http
