package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/propnest/realty/backend/internal/handler/admin"
	"github.com/propnest/realty/backend/internal/handler/calculator"
	"github.com/propnest/realty/backend/internal/handler/chat"
	"github.com/propnest/realty/backend/internal/handler/contact"
	"github.com/propnest/realty/backend/internal/handler/property"
	"github.com/propnest/realty/backend/internal/handler/report"
	"github.com/propnest/realty/backend/internal/handler/stream"
	"github.com/propnest/realty/backend/internal/handler/ws"
	leadModel "github.com/propnest/realty/backend/internal/model/lead"
	propertyModel "github.com/propnest/realty/backend/internal/model/property"
	reportModel "github.com/propnest/realty/backend/internal/model/report"
	authService "github.com/propnest/realty/backend/internal/service/auth"
	chatService "github.com/propnest/realty/backend/internal/service/chat"
	contactService "github.com/propnest/realty/backend/internal/service/contact"
	"github.com/propnest/realty/backend/pkg/utils"
)

// Dependencies groups the services the HTTP layer is built on.
type Dependencies struct {
	Chat           *chatService.Service
	Contact        *contactService.Service
	Auth           *authService.Service
	Properties     propertyModel.Repository
	Leads          leadModel.Repository
	Reports        *reportModel.Library
	AllowedOrigins []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		chat.New(deps.Chat).RegisterRoutes(api)
		stream.New(deps.Chat).RegisterRoutes(api)
		ws.New(deps.Chat).RegisterRoutes(api)

		property.New(deps.Properties).RegisterRoutes(api)
		calculator.New().RegisterRoutes(api)
		report.New(deps.Reports).RegisterRoutes(api)
		contact.New(deps.Contact).RegisterRoutes(api)

		if deps.Auth != nil {
			admin.New(deps.Auth, deps.Properties, deps.Leads).RegisterRoutes(api)
		} else {
			api.HandleFunc("/admin/*", func(w http.ResponseWriter, r *http.Request) {
				utils.RespondError(w, http.StatusServiceUnavailable, "admin panel is not configured")
			})
		}
	})

	return r
}
