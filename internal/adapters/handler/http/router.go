package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewHandler(authHandler *AuthHandler, noteHandler *NoteHandler, authMiddleware func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.With(authMiddleware).Get("/me", authHandler.Me)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", noteHandler.CreateNote)
		r.Get("/", noteHandler.ListNotes)
		r.Patch("/{id}", noteHandler.UpdateNote)
	})

	return r
}
