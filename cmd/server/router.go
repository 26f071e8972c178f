package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/repeatry/leitner-api/internal/api"
	apimiddleware "github.com/repeatry/leitner-api/internal/api/middleware"
)

// setupRouter builds the HTTP router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	cardHandler := api.NewCardHandler(app.cardStore)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.reviewStore)
	scheduleHandler := api.NewScheduleHandler(app.scheduleService)
	progressHandler := api.NewProgressHandler(app.progressService)
	holidayHandler := api.NewHolidayHandler(app.holidayTracker)
	memoHandler := api.NewMemoHandler(app.taskFactory, app.taskRunner)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/cards", cardHandler.ListCards)

			r.Post("/reviews", reviewHandler.SubmitReview)
			r.Get("/history", reviewHandler.GetHistory)

			r.Get("/daily", scheduleHandler.GetDaily)
			r.Get("/dashboard", progressHandler.GetDashboard)

			r.Post("/holidays", holidayHandler.CreateHoliday)
			r.Get("/holidays/status", holidayHandler.GetStatus)
			r.Post("/holidays/extend", holidayHandler.ExtendHoliday)
			r.Post("/holidays/skip-catchup", holidayHandler.SetSkipCatchup)

			r.Post("/memos", memoHandler.CreateMemo)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
