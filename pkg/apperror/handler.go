package apperror

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteError renders err as the JSON error envelope {"error":{"code","message"}}.
// 5xx errors are logged at error level, including the internal cause.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	code, body := ToHTTPError(err)

	if code >= 500 {
		log.Error("request error",
			slog.Int("status", code),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// NotFoundHandler answers unknown routes with ErrNotFound.
func NotFoundHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, log, ErrNotFound)
	}
}

// MethodNotAllowedHandler answers routes hit with the wrong verb.
func MethodNotAllowedHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, log, New(http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed"))
	}
}
