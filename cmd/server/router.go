package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/msoledad/aula-api/internal/api/middleware"
	"github.com/msoledad/aula-api/internal/api/shared"
)

// newRouter builds the HTTP route tree. Auth endpoints for obtaining
// tokens are public; everything else under /api requires a valid access
// token.
func (app *application) newRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.authHandler.Register)
			r.Post("/login", app.authHandler.Login)
			r.Post("/refresh", app.authHandler.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", app.authHandler.Me)
			r.Post("/auth/password", app.authHandler.ChangePassword)

			r.Route("/students/profile", func(r chi.Router) {
				r.Post("/", app.studentHandler.CreateProfile)
				r.Get("/", app.studentHandler.GetProfile)
				r.Put("/", app.studentHandler.UpdateProfile)
			})

			r.Route("/content", func(r chi.Router) {
				r.Get("/subjects", app.contentHandler.ListSubjects)
				r.Post("/generate", app.contentHandler.GenerateContent)
				r.Get("/tasks/{id}", app.contentHandler.GetTask)
				r.Get("/resources", app.contentHandler.ListResources)
			})

			r.Route("/progress", func(r chi.Router) {
				r.Put("/", app.progressHandler.UpdateProgress)
				r.Get("/", app.progressHandler.ListProgress)
				r.Post("/evaluations", app.progressHandler.SubmitEvaluation)
				r.Get("/evaluations", app.progressHandler.ListEvaluations)
				r.Post("/evaluate", app.progressHandler.Evaluate)
				r.Post("/analyze", app.progressHandler.Analyze)
			})

			r.Route("/agents", func(r chi.Router) {
				r.Post("/ask", app.agentHandler.Ask)
				r.Get("/interactions", app.agentHandler.ListInteractions)
			})
		})
	})

	return r
}
