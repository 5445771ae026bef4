package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
)

// Controllers bundles every controller the router wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	PublicEvents *controllers.PublicEventController
	OwnerEvents  *controllers.PrivateEventController
	AdminEvents  *controllers.AdminEventController
	Requests     *controllers.RequestController
	Categories   *controllers.CategoryController
	Users        *controllers.UserAdminController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Public
	mux.HandleFunc("GET /events", c.PublicEvents.Search)
	mux.HandleFunc("GET /events/{eventID}", c.PublicEvents.Get)
	mux.HandleFunc("GET /categories", c.Categories.List)
	mux.HandleFunc("GET /categories/{catID}", c.Categories.Get)

	// Owner
	mux.HandleFunc("POST /users/{userID}/events", auth(c.OwnerEvents.Create))
	mux.HandleFunc("GET /users/{userID}/events", auth(c.OwnerEvents.List))
	mux.HandleFunc("GET /users/{userID}/events/{eventID}", auth(c.OwnerEvents.Get))
	mux.HandleFunc("PATCH /users/{userID}/events/{eventID}", auth(c.OwnerEvents.Update))
	mux.HandleFunc("GET /users/{userID}/events/{eventID}/requests", auth(c.OwnerEvents.ListRequests))
	mux.HandleFunc("PATCH /users/{userID}/events/{eventID}/requests", auth(c.OwnerEvents.ResolveRequests))

	// Participation requests
	mux.HandleFunc("GET /users/{userID}/requests", auth(c.Requests.List))
	mux.HandleFunc("POST /users/{userID}/requests", auth(c.Requests.Create))
	mux.HandleFunc("PATCH /users/{userID}/requests/{requestID}/cancel", auth(c.Requests.Cancel))

	// Admin
	mux.HandleFunc("GET /admin/events", auth(c.AdminEvents.Search))
	mux.HandleFunc("PATCH /admin/events/{eventID}", auth(c.AdminEvents.Update))
	mux.HandleFunc("POST /admin/categories", auth(c.Categories.Create))
	mux.HandleFunc("PATCH /admin/categories/{catID}", auth(c.Categories.Update))
	mux.HandleFunc("DELETE /admin/categories/{catID}", auth(c.Categories.Delete))
	mux.HandleFunc("POST /admin/users", auth(c.Users.Create))
	mux.HandleFunc("GET /admin/users", auth(c.Users.List))
	mux.HandleFunc("DELETE /admin/users/{userID}", auth(c.Users.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
