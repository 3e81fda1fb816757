package http

import (
	"net/http"

	"bookmarker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter constructs and returns an HTTP handler that serves the
// bookmarking API. It applies JSON content-type enforcement, panic
// recovery and request logging, and mounts the public auth endpoints next
// to the bearer-token-protected user and bookmark endpoints.
//
// Routes:
//
//	POST   /auth/signup     → authHandler.SignUp
//	POST   /auth/signin     → authHandler.SignIn
//	GET    /users/me        → userHandler.Me        (bearer token)
//	PATCH  /users           → userHandler.Edit      (bearer token)
//	POST   /bookmarks       → bookmarkHandler.Create (bearer token)
//	GET    /bookmarks       → bookmarkHandler.List   (bearer token)
//	GET    /bookmarks/{id}  → bookmarkHandler.GetOne (bearer token)
//	PATCH  /bookmarks/{id}  → bookmarkHandler.Edit   (bearer token)
//	DELETE /bookmarks/{id}  → bookmarkHandler.Delete (bearer token)
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	bookmarkHandler *BookmarkHandler,
	resolver middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Use(chiMiddleware.Recoverer)

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
	})

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(resolver))

		r.Get("/users/me", userHandler.Me)
		r.Patch("/users", userHandler.Edit)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Post("/", bookmarkHandler.Create)
			r.Get("/", bookmarkHandler.List)
			r.Get("/{id}", bookmarkHandler.GetOne)
			r.Patch("/{id}", bookmarkHandler.Edit)
			r.Delete("/{id}", bookmarkHandler.Delete)
		})
	})

	return r
}
