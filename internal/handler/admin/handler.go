package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	propertyHandler "github.com/propnest/realty/backend/internal/handler/property"
	"github.com/propnest/realty/backend/internal/model/lead"
	"github.com/propnest/realty/backend/internal/model/property"
	"github.com/propnest/realty/backend/internal/service/auth"
	"github.com/propnest/realty/backend/pkg/utils"
)

type ctxKey struct{}

// Handler backs the admin panel: login, listing management and the lead inbox.
type Handler struct {
	authSvc    *auth.Service
	properties property.Repository
	leads      lead.Repository
	validate   *validator.Validate
}

func New(authSvc *auth.Service, properties property.Repository, leads lead.Repository) *Handler {
	return &Handler{
		authSvc:    authSvc,
		properties: properties,
		leads:      leads,
		validate:   validator.New(),
	}
}

// RegisterRoutes mounts the login route and the bearer-protected admin routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)
			r.Get("/properties", h.handleListProperties)
			r.Post("/properties", h.handleCreateProperty)
			r.Put("/properties/{propertyID}", h.handleUpdateProperty)
			r.Delete("/properties/{propertyID}", h.handleDeleteProperty)
			r.Get("/leads", h.handleListLeads)
		})
	})
}

// RequireAdmin rejects requests without a valid bearer token.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		username, err := h.authSvc.Authenticate(strings.TrimSpace(token))
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, username)))
	})
}

// Username returns the admin bound to the request by RequireAdmin.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(ctxKey{}).(string)
	return name
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := h.authSvc.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("[admin] failed login for %q", payload.Username)
			utils.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("[admin] login error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := propertyHandler.ParseFilter(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.properties.List(r.Context(), filter)
	if err != nil {
		log.Printf("[admin] list properties failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProperty(w, r)
	if !ok {
		return
	}
	p.ID = ""

	created, err := h.properties.Create(r.Context(), p)
	if err != nil {
		log.Printf("[admin] create property failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create property")
		return
	}
	log.Printf("[admin] %s created property %s", Username(r.Context()), created.ID)
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProperty(w, r)
	if !ok {
		return
	}
	p.ID = chi.URLParam(r, "propertyID")

	updated, err := h.properties.Update(r.Context(), p)
	if err != nil {
		h.respondStoreError(w, "update", err)
		return
	}
	log.Printf("[admin] %s updated property %s", Username(r.Context()), updated.ID)
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")
	if err := h.properties.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, "delete", err)
		return
	}
	log.Printf("[admin] %s deleted property %s", Username(r.Context()), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.ListLeads(r.Context())
	if err != nil {
		log.Printf("[admin] list leads failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	utils.RespondJSON(w, http.StatusOK, leads)
}

func (h *Handler) decodeProperty(w http.ResponseWriter, r *http.Request) (property.Property, bool) {
	var p property.Property
	if err := utils.DecodeJSON(r, &p); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return property.Property{}, false
	}
	p.Type = property.Type(strings.ToLower(string(p.Type)))
	if err := h.validate.Struct(p); err != nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return property.Property{}, false
	}
	return p, true
}

func (h *Handler) respondStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, property.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("[admin] %s property failed: %v", op, err)
	utils.RespondError(w, http.StatusInternalServerError, "failed to "+op+" property")
}
