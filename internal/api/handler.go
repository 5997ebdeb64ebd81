package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marcuskbra/skeleton-challenge/internal/domain"
	"github.com/marcuskbra/skeleton-challenge/internal/service"
)

// Handler translates HTTP requests into service calls and result variants
// back into status codes. The mapping is exhaustive per union; an unknown
// variant is a programming error and panics.
type Handler struct {
	entities *service.EntityService
	logger   *slog.Logger
}

func NewHandler(entities *service.EntityService, logger *slog.Logger) *Handler {
	return &Handler{
		entities: entities,
		logger:   logger,
	}
}

type CreateEntityRequest struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type UpdateEntityRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

func (h *Handler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req CreateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.entities.Create(r.Context(), service.CreateEntityInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Metadata:    req.Metadata,
	})

	switch v := result.(type) {
	case domain.CreateEntitySuccess:
		h.respondJSON(w, http.StatusCreated, v.Entity)
	case *domain.ValidationError:
		h.respondFailure(w, http.StatusUnprocessableEntity, v)
	case *domain.ConflictError:
		h.respondFailure(w, http.StatusConflict, v)
	case *domain.UnauthorizedError:
		h.respondFailure(w, http.StatusUnauthorized, v)
	default:
		panic("unhandled create result variant")
	}
}

func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch v := h.entities.Get(r.Context(), id).(type) {
	case domain.GetEntitySuccess:
		h.respondJSON(w, http.StatusOK, v.Entity)
	case *domain.NotFoundError:
		h.respondFailure(w, http.StatusNotFound, v)
	case *domain.UnauthorizedError:
		h.respondFailure(w, http.StatusUnauthorized, v)
	default:
		panic("unhandled get result variant")
	}
}

type UpdateEntityResponse struct {
	domain.Entity
	UpdatedFields []string `json:"updated_fields"`
}

func (h *Handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.entities.Update(r.Context(), id, service.UpdateEntityInput{
		Name:        req.Name,
		Description: req.Description,
		Metadata:    req.Metadata,
		IsActive:    req.IsActive,
	})

	switch v := result.(type) {
	case domain.UpdateEntitySuccess:
		h.respondJSON(w, http.StatusOK, UpdateEntityResponse{
			Entity:        v.Entity,
			UpdatedFields: v.UpdatedFields,
		})
	case *domain.NotFoundError:
		h.respondFailure(w, http.StatusNotFound, v)
	case *domain.ValidationError:
		h.respondFailure(w, http.StatusUnprocessableEntity, v)
	case *domain.ConflictError:
		h.respondFailure(w, http.StatusConflict, v)
	case *domain.BusinessRuleViolationError:
		h.respondFailure(w, http.StatusUnprocessableEntity, v)
	case *domain.UnauthorizedError:
		h.respondFailure(w, http.StatusUnauthorized, v)
	default:
		panic("unhandled update result variant")
	}
}

func (h *Handler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch v := h.entities.Delete(r.Context(), id).(type) {
	case domain.DeleteEntitySuccess:
		w.WriteHeader(http.StatusNoContent)
	case *domain.NotFoundError:
		h.respondFailure(w, http.StatusNotFound, v)
	case *domain.BusinessRuleViolationError:
		h.respondFailure(w, http.StatusUnprocessableEntity, v)
	case *domain.UnauthorizedError:
		h.respondFailure(w, http.StatusUnauthorized, v)
	default:
		panic("unhandled delete result variant")
	}
}

type ListEntitiesResponse struct {
	Entities []*domain.Entity `json:"entities"`
	Count    int              `json:"count"`
}

func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := h.entities.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list entities", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}

	h.respondJSON(w, http.StatusOK, ListEntitiesResponse{
		Entities: entities,
		Count:    len(entities),
	})
}

type errorResponse struct {
	Error any `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// respondFailure serializes an error variant inside the error envelope. The
// variant's own JSON tags expose its payload (field_errors, rule_name, and so
// on) alongside the shared code and message.
func (h *Handler) respondFailure(w http.ResponseWriter, status int, variant any) {
	h.respondJSON(w, status, errorResponse{Error: variant})
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: map[string]string{"message": message}})
}
