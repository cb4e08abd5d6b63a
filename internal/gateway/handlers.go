package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/calliof/switchboard/internal/version"
)

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	Connections   int    `json:"connections"`
	AgentsOnline  int    `json:"agentsOnline"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{
		Status:        "ok",
		Version:       version.Version,
		Connections:   s.hub.ConnectionCount(),
		AgentsOnline:  s.hub.OnlineAgentCount(),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}
