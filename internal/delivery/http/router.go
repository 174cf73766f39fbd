package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventboard/internal/delivery/http/controllers"
)

// Controllers groups the handlers of the main service.
type Controllers struct {
	Events       *controllers.EventController
	PublicEvents *controllers.PublicEventController
	Requests     *controllers.RequestController
	Users        *controllers.UserController
	Categories   *controllers.CategoryController
	Compilations *controllers.CompilationController
}

// NewRouter initializes the HTTP router with all application routes.
// adminGuard wraps every /admin route; nil leaves them open.
func NewRouter(c Controllers, adminGuard func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	admin := func(pattern string, h http.HandlerFunc) {
		if adminGuard == nil {
			mux.Handle(pattern, h)
			return
		}
		mux.Handle(pattern, adminGuard(h))
	}

	// Admin
	admin("POST /admin/users", c.Users.CreateUser)
	admin("GET /admin/users", c.Users.ListUsers)
	admin("DELETE /admin/users/{userId}", c.Users.DeleteUser)

	admin("POST /admin/categories", c.Categories.CreateCategory)
	admin("PATCH /admin/categories/{catId}", c.Categories.RenameCategory)
	admin("DELETE /admin/categories/{catId}", c.Categories.DeleteCategory)

	admin("GET /admin/events", c.Events.SearchEvents)
	admin("PATCH /admin/events/{eventId}", c.Events.UpdateEventByAdmin)

	admin("POST /admin/compilations", c.Compilations.CreateCompilation)
	admin("PATCH /admin/compilations/{compId}", c.Compilations.UpdateCompilation)
	admin("DELETE /admin/compilations/{compId}", c.Compilations.DeleteCompilation)

	// Private
	mux.HandleFunc("POST /users/{userId}/events", c.Events.CreateEvent)
	mux.HandleFunc("GET /users/{userId}/events", c.Events.ListUserEvents)
	mux.HandleFunc("GET /users/{userId}/events/{eventId}", c.Events.GetUserEvent)
	mux.HandleFunc("PATCH /users/{userId}/events/{eventId}", c.Events.UpdateUserEvent)
	mux.HandleFunc("GET /users/{userId}/events/{eventId}/requests", c.Requests.ListEventRequests)
	mux.HandleFunc("PATCH /users/{userId}/events/{eventId}/requests", c.Requests.UpdateRequestsStatus)

	mux.HandleFunc("POST /users/{userId}/requests", c.Requests.CreateRequest)
	mux.HandleFunc("GET /users/{userId}/requests", c.Requests.ListUserRequests)
	mux.HandleFunc("PATCH /users/{userId}/requests/{requestId}/cancel", c.Requests.CancelRequest)

	// Public
	mux.HandleFunc("GET /categories", c.Categories.ListCategories)
	mux.HandleFunc("GET /categories/{catId}", c.Categories.GetCategory)
	mux.HandleFunc("GET /compilations", c.Compilations.ListCompilations)
	mux.HandleFunc("GET /compilations/{compId}", c.Compilations.GetCompilation)
	mux.HandleFunc("GET /events", c.PublicEvents.ListEvents)
	mux.HandleFunc("GET /events/{id}", c.PublicEvents.GetEvent)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewStatsRouter initializes the router of the statistics service.
func NewStatsRouter(stats *controllers.StatsController) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hit", stats.Hit)
	mux.HandleFunc("GET /stats", stats.Stats)
	return mux
}
