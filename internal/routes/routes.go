package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tarcanfarm/farm-backend/internal/handlers"
	"github.com/tarcanfarm/farm-backend/internal/middleware"
)

// Setup mounts every API route. The credential routes are public;
// everything else sits behind the session gate, which rejects with 401
// before any resource handler runs.
func Setup(r chi.Router, api *handlers.API) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", api.Register)
		r.Post("/auth/login", api.Login)
		// Logout stays outside the gate so a client with an expired
		// session can still clear its cookie.
		r.Post("/auth/logout", api.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(api.Sessions))

			r.Get("/auth/me", api.Me)

			r.Get("/users/{id}", api.GetUser)

			r.Route("/fields", func(r chi.Router) {
				r.Get("/", api.ListFields)
				r.Post("/", api.CreateField)

				// Static segment before the {id} routes so "health" is
				// never parsed as a field id.
				r.Get("/health", api.HealthOverview)

				r.Get("/{id}", api.GetField)
				r.Patch("/{id}", api.UpdateField)
				r.Put("/{id}", api.UpdateField)
				r.Delete("/{id}", api.DeleteField)
				r.Get("/{id}/tasks", api.ListFieldTasks)
				r.Get("/{id}/health", api.GetFieldHealth)
				r.Post("/{id}/health", api.CreateFieldHealth)
			})

			r.Route("/crops", func(r chi.Router) {
				r.Get("/", api.ListCrops)
				r.Post("/", api.CreateCrop)
				r.Get("/{id}", api.GetCrop)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", api.ListTasks)
				r.Post("/", api.CreateTask)
				r.Get("/{id}", api.GetTask)
				r.Patch("/{id}", api.UpdateTask)
				r.Put("/{id}", api.UpdateTask)
				r.Delete("/{id}", api.DeleteTask)
				r.Patch("/{id}/complete", api.CompleteTask)
			})

			r.Get("/weather", api.GetWeather)
			r.Get("/weather/history", api.WeatherHistory)

			r.Post("/upload", api.Upload)
		})
	})
}
