package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"relay/relay/controllers"
	"relay/relay/middlewares"
	"relay/relay/services/agent"
	"relay/relay/types"
	"relay/relay/utils/logging"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ChatRoutes(ctrl *controllers.ChatController, verifier middlewares.TokenVerifier) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(verifier))

		// POST /api/chat : send one message, reply with the buffered completion
		gr.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req types.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			ident := middlewares.IdentityFrom(r.Context())

			resp, err := ctrl.Chat(r.Context(), ident, req)
			switch {
			case errors.Is(err, agent.ErrEmptyMessage):
				writeError(w, http.StatusBadRequest, "Message is required")
			case errors.Is(err, agent.ErrNotConfigured):
				logging.ErrorLogger.Error("agent settings missing; check BEDROCK_AGENT_ID, BEDROCK_AGENT_ALIAS_ID and AWS_REGION")
				writeError(w, http.StatusInternalServerError, "Agent configuration missing")
			case err != nil:
				// Log the cause, never echo upstream detail to the client.
				logging.ErrorLogger.Error("agent invocation failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to get response from agent.")
			default:
				writeJSON(w, http.StatusOK, resp)
			}
		})
	})
	return r
}
