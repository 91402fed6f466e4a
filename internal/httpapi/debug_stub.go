//go:build !debug

package httpapi

import "net/http"

// registerDebug is a no-op outside debug builds; /debug 404s like any
// other unmatched route.
func registerDebug(mux *http.ServeMux) {}
