package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/article-catalog/internal/handler/gen"
	"github.com/pkordes/article-catalog/openapi"
)

// Mount registers the generated API routes and GET /openapi.yaml on r.
// Request decoding, parameter binding and unexpected errors all answer with
// the JSON error envelope.
func Mount(r chi.Router, srv *Server, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	strict := gen.NewStrictHandlerWithOptions(srv, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler,
		ResponseErrorHandlerFunc: responseErrorHandler(logger),
	})
	gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: paramErrorHandler,
	})
	r.Get("/openapi.yaml", serveOpenAPI)
}

// NewHTTPHandler returns a standalone router serving the API.
func NewHTTPHandler(srv *Server, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	Mount(r, srv, logger)
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.Document)
}
