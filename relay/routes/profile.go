package routes

import (
	"net/http"

	"relay/relay/controllers"
	"relay/relay/middlewares"

	"github.com/go-chi/chi/v5"
)

func ProfileRoutes(ctrl *controllers.ProfileController, verifier middlewares.TokenVerifier) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(verifier))

		gr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			ident := middlewares.IdentityFrom(r.Context())
			writeJSON(w, http.StatusOK, ctrl.Profile(ident))
		})
	})
	return r
}
