package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/corvino/textroom/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeOK renders an empty 200, matching the original's ok_response (no
// body) for the create/destroy actions.
func writeOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// writeError renders err as {"message": ...} with its carried status, or a
// generic 500 if err isn't an *apperr.Error.
func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperr.Error); ok {
		writeJSON(w, appErr.Status, map[string]string{"message": appErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
}
