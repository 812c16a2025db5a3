package handler

import (
	"net/http"

	"github.com/webtilians/backA/api"
)

// ServiceName and Version are reported by GET /. Version is overridden at
// build time with -ldflags "-X github.com/webtilians/backA/internal/handler.Version=...".
var (
	ServiceName = "hotel-reservations"
	Version     = "dev"
)

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles GET /.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	n := 0
	if s.tools != nil {
		n = len(s.tools.Definitions())
	}
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:    ServiceName,
		Version: Version,
		Status:  "running",
		Tools:   n,
	})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPI)
}
