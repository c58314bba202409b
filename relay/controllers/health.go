package controllers

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthController struct {
	authEnabled bool
}

func NewHealthController(authEnabled bool) *HealthController {
	return &HealthController{authEnabled: authEnabled}
}

// HealthCheck is the one unauthenticated route; it always answers 200,
// even when the verifier is fully unconfigured.
func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"authEnabled": h.authEnabled,
	})
}
