package routes

import (
	"encoding/json"
	"net/http"

	"relay/relay/controllers"
	"relay/relay/middlewares"
	"relay/relay/types"

	"github.com/go-chi/chi/v5"
)

func CustomerRoutes(ctrl *controllers.CustomerController, verifier middlewares.TokenVerifier, allowedGroups []string) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(verifier))
		gr.Use(middlewares.RequireGroups(allowedGroups...))

		gr.Post("/search", func(w http.ResponseWriter, r *http.Request) {
			var req types.CustomerSearchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			writeJSON(w, http.StatusOK, ctrl.Search(req))
		})
	})
	return r
}
