package api

import (
	"net/http"

	"github.com/aeolab/beacon/pkg/handlers"
	"github.com/aeolab/beacon/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Brands.Handler().Routes(),
		domain.Questions.Handler().Routes(),
		domain.Contents.Handler().Routes(),
		domain.Experiments.Handler().Routes(),
		domain.Checks.Handler().Routes(),
	)

	mux.HandleFunc("GET /providers", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, runtime.LLM.Providers())
	})
}
