package api

// ErrorMessage carries the human-readable reason for a failed request.
type ErrorMessage struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx response, and of 5xx responses
// outside development.
type ErrorResponse struct {
	Error ErrorMessage `json:"error"`
}

// DevErrorResponse is the 500 body in development. It repeats the internal
// error text at the top level.
type DevErrorResponse struct {
	Message string       `json:"message"`
	Error   ErrorMessage `json:"error"`
}

const (
	msgBookmarkDoesNotExist = "Bookmark doesn't exist"
	msgBookmarkNotFound     = "Bookmark not found"
	msgInvalidBody          = "Invalid request body"
	msgRouteNotFound        = "Not found"
	msgMethodNotAllowed     = "Method not allowed"
)
