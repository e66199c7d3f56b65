package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scorelab-api/internal/api"
	apiMiddleware "github.com/phrazzld/scorelab-api/internal/api/middleware"
	"github.com/phrazzld/scorelab-api/internal/api/shared"
)

// setupRouter builds the chi router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	sessionHandler := api.NewSessionHandler(app.profileService, app.jwtService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.logger)
	simulationHandler := api.NewSimulationHandler(app.profileService, app.logger)
	explanationHandler := api.NewExplanationHandler(app.profileService, app.explainer, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", sessionHandler.CreateSession)

		r.Route("/profile", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/", profileHandler.GetProfile)
			r.Delete("/", profileHandler.DeleteProfile)

			r.Post("/accounts", profileHandler.AddAccount)
			r.Patch("/accounts/{id}", profileHandler.UpdateAccount)
			r.Delete("/accounts/{id}", profileHandler.RemoveAccount)

			r.Post("/inquiries", profileHandler.AddInquiry)
			r.Delete("/inquiries/{id}", profileHandler.RemoveInquiry)

			r.Put("/bankruptcies", profileHandler.SetBankruptcies)

			r.Post("/simulations", simulationHandler.Simulate)
			r.Get("/simulations", simulationHandler.ListSimulations)
			r.Delete("/simulations", simulationHandler.ResetSimulations)

			r.Get("/score-history", profileHandler.ScoreHistory)
			r.Post("/explanation", explanationHandler.Explain)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
