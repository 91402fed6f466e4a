//go:build debug

package httpapi

import (
	"net/http"
	"runtime"
)

// registerDebug exposes task counts, mirroring the original's
// #[cfg(debug_assertions)] endpoint. Only compiled into debug builds
// (`go build -tags debug`).
func registerDebug(mux *http.ServeMux) {
	mux.HandleFunc("/debug", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"tasks": runtime.NumGoroutine()})
	})
}
