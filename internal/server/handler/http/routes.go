package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jdavril/brocante/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler serving the
// marketplace API.
//
// Routes:
//
//	POST /user/signup    → userHandler.Signup   (JSON)
//	POST /user/login     → userHandler.Login    (JSON)
//	GET  /offers         → offerHandler.List    (public)
//	POST /offer/publish  → offerHandler.Publish (bearer token, multipart)
//	POST /offer/update   → offerHandler.Update  (bearer token, multipart)
//
// Every request is logged; unmatched routes answer with a JSON
// "Page not found" message.
func NewRouter(
	userHandler *UserHandler,
	offerHandler *OfferHandler,
	resolver middleware.TokenResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its outcome
	r.Use(middleware.WithRequestLogging(logger))

	// Account routes carry JSON bodies only
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Post("/user/signup", userHandler.Signup)
		r.Post("/user/login", userHandler.Login)
	})

	// Public search
	r.Get("/offers", offerHandler.List)

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(resolver))
		r.Post("/offer/publish", offerHandler.Publish)
		r.Post("/offer/update", offerHandler.Update)
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Page not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
