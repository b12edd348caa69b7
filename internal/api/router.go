package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nextlogicai/nextlogic-be/internal/api/handlers"
	"github.com/nextlogicai/nextlogic-be/internal/auth"
	"github.com/nextlogicai/nextlogic-be/internal/ledger"
	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/nextlogicai/nextlogic-be/internal/services"
	"github.com/nextlogicai/nextlogic-be/internal/websocket"
)

// Deps bundles everything the router needs.
type Deps struct {
	Users          services.UserServiceProvider
	Remix          services.RemixServiceProvider
	Monitor        services.MonitorServiceProvider
	Assignments    services.AssignmentServiceProvider
	UsageLog       *ledger.Ledger
	Hub            *websocket.Hub
	UserLookup     auth.UserLookup
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.SecureCookies)
	remixHandler := handlers.NewRemixHandler(deps.Remix)
	teacherHandler := handlers.NewTeacherHandler(deps.Monitor, deps.Users, deps.UsageLog)
	assignmentHandler := handlers.NewAssignmentHandler(deps.Assignments)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	requireAuth := auth.Middleware(deps.UserLookup)
	requireAdmin := auth.RequireRole(models.RoleAdmin)

	r.Get("/", root)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/remix", remixHandler.Remix)
	})

	r.Route("/teacher", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(requireAdmin)
		r.Get("/activity", teacherHandler.Activity)
		r.Get("/students", teacherHandler.Students)
		r.Get("/students/{id}/history", teacherHandler.StudentHistory)
		r.Get("/live", wsHandler.Serve)
	})

	r.Route("/student", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/assignments", assignmentHandler.List)
	})

	return r
}

// root reports service liveness for load balancers and the frontend.
func root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"NextLogicAI Educational Platform API","status":"running","version":"2.0"}`))
}
