package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/handler/gen"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message because the handler knows what was looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is taken from the domain.ValidationError in err's chain.
func validationBody(err error) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: validationMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: message}}
}

// validationMessage returns the caller-facing message of a validation error,
// however deeply the service layer wrapped it.
func validationMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	return "invalid request"
}

// writeError writes an ErrorResponse with the given status.
func writeError(w http.ResponseWriter, status int, body gen.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestErrorHandler answers bodies the strict handler could not decode.
// A body cut off by http.MaxBytesReader is reported as 413.
func requestErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, gen.ErrorResponse{
			Error: gen.ErrorDetail{Code: "payload_too_large", Message: "request body too large"},
		})
		return
	}
	writeError(w, http.StatusBadRequest, requestBody("malformed request body"))
}

// paramErrorHandler answers path and query parameters that failed binding.
func paramErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var invalid *gen.InvalidParamFormatError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, requestBody("invalid "+invalid.ParamName))
		return
	}
	writeError(w, http.StatusBadRequest, requestBody(err.Error()))
}

// responseErrorHandler logs unexpected handler errors and hides them behind
// a generic 500.
func responseErrorHandler(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, gen.ErrorResponse{
			Error: gen.ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}
