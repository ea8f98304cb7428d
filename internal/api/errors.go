package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/joestump/joe-bookmarks/internal/logger"
)

// writeError writes {"error": {"message": message}} with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorMessage{Message: message}})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ServerError reports an unexpected failure as a 500. The error is always
// logged; its text only reaches the client when dev is true.
func ServerError(w http.ResponseWriter, r *http.Request, log logger.Logger, dev bool, err error) {
	log.Error("unhandled error",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err),
	)
	if dev {
		writeJSON(w, http.StatusInternalServerError, DevErrorResponse{
			Message: err.Error(),
			Error:   ErrorMessage{Message: err.Error()},
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "server error")
}
