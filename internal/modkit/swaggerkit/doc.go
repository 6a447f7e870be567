package swaggerkit

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var docJSON []byte

// serveDocJSON serves the embedded OpenAPI document the UI loads
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(docJSON)
	}
}
