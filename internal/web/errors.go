package web

// errors.go provides unified error response handling for the web layer.
//
// Errors are logged with full technical details and the request id, then
// mapped via core.MapError to a coded message with an action suggestion.
// JSON clients get an ErrorResponse; browsers get an HTML alert.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/logging"
	"github.com/JonMunkholm/novareport/internal/web/templates"
)

// ErrorResponse is the JSON body of a failed API request. Error is the
// generic failure, Details the underlying error text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Message string `json:"message,omitempty"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a user-facing error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, r, statusCode, ErrorResponse{
			Error:   core.ReportFailure,
			Details: err.Error(),
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
		return
	}
	respondErrorHTML(w, r, userMsg, statusCode)
}

// statusFor is the HTTP status for a failed report: 503 when the server is
// busy building other reports, 500 otherwise.
func statusFor(err error) int {
	if errors.Is(err, core.ErrTooManyReports) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondErrorHTML writes an HTML error alert.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error alert", "error", err)
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
