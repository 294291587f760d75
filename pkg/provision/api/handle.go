package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/errors"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/keycloak"
	"github.com/faintdeception/ruff-registrar-community-sub000/pkg/provision"
)

// Handler exposes the provisioning service over HTTP for the registrar's
// CRUD layer.
type Handler struct {
	service *provision.Service
}

// NewHandler creates a new provisioning API handler
func NewHandler(service *provision.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Routes mounts the provisioning endpoints on a chi router
func (h *Handler) Routes(r chi.Router) {
	r.Post("/provision", h.ProvisionMember)
	r.Get("/users/exists", h.UserExists)
	r.Put("/users/{userID}/deactivate", h.DeactivateUser)
	r.Put("/users/{userID}/reactivate", h.ReactivateUser)
}

// ProvisionMember handles POST /provision
func (h *Handler) ProvisionMember(w http.ResponseWriter, r *http.Request) {
	var req ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.ProvisionMember(r.Context(), provision.Request{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      keycloak.Role(req.Role),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	var resp ProvisionResponse
	if err := copier.Copy(&resp, result); err != nil {
		slog.Error("Failed to map provisioning result", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Failed to build response"})
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// UserExists handles GET /users/exists?email=...
func (h *Handler) UserExists(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	exists, err := h.service.Exists(r.Context(), email)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, UserExistsResponse{Email: email, Exists: exists})
}

// DeactivateUser handles PUT /users/{userID}/deactivate
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.service.Deactivate(r.Context(), userID); err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, StatusResponse{UserID: userID, Message: "User deactivated"})
}

// ReactivateUser handles PUT /users/{userID}/reactivate
func (h *Handler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.service.Reactivate(r.Context(), userID); err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, StatusResponse{UserID: userID, Message: "User reactivated"})
}

// renderError maps coded errors onto HTTP statuses. Error text is safe to
// return: the core never puts credential material in error messages.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := errors.MapErrorCodeToHTTPStatus(code)

	if status >= http.StatusInternalServerError {
		slog.Error("Provisioning request failed", "code", code, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error(), Code: string(code)})
}
