package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marcuskbra/skeleton-challenge/internal/clock"
	"github.com/marcuskbra/skeleton-challenge/internal/domain"
	"github.com/marcuskbra/skeleton-challenge/internal/repository/memory"
	"github.com/marcuskbra/skeleton-challenge/internal/service"
)

func newTestHandler() (*Handler, *memory.EntityStore) {
	store := memory.NewEntityStore()
	clk := &clock.MockClock{NowTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewEntityService(store, clk, logger)
	return NewHandler(svc, logger), store
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/entities", func(r chi.Router) {
		r.Post("/", h.CreateEntity)
		r.Get("/", h.ListEntities)
		r.Get("/{id}", h.GetEntity)
		r.Patch("/{id}", h.UpdateEntity)
		r.Delete("/{id}", h.DeleteEntity)
	})
	return r
}

func seedEntity(t *testing.T, store *memory.EntityStore, id string, active bool) {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	err := store.Create(context.Background(), &domain.Entity{
		AggregateRoot: domain.AggregateRoot{ID: id, Version: 1, CreatedAt: now, UpdatedAt: now},
		Name:          "Seeded",
		IsActive:      active,
		Metadata:      map[string]any{},
	})
	if err != nil {
		t.Fatalf("failed to seed entity: %v", err)
	}
}

func TestHandler_CreateEntity(t *testing.T) {
	h, _ := newTestHandler()
	router := newTestRouter(h)

	body := `{"name": "Important Item", "description": "test", "metadata": {"k": "v"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}

	var resp domain.Entity
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID == "" {
		t.Error("expected a generated id")
	}

	if resp.Name != "Important Item" {
		t.Errorf("expected name 'Important Item', got %q", resp.Name)
	}

	if !resp.IsActive {
		t.Error("expected new entity to be active")
	}
}

func TestHandler_CreateEntity_ValidationError(t *testing.T) {
	h, _ := newTestHandler()
	router := newTestRouter(h)

	body := `{"name": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	var resp struct {
		Error struct {
			Code        string            `json:"error_code"`
			FieldErrors map[string]string `json:"field_errors"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %q", resp.Error.Code)
	}

	if _, ok := resp.Error.FieldErrors["name"]; !ok {
		t.Errorf("expected a field error for 'name', got %v", resp.Error.FieldErrors)
	}
}

func TestHandler_CreateEntity_Conflict(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_dup", true)

	body := `{"id": "ent_dup", "name": "Duplicate"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	var resp struct {
		Error struct {
			Code             string `json:"error_code"`
			ConflictingField string `json:"conflicting_field"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "CONFLICT" {
		t.Errorf("expected code CONFLICT, got %q", resp.Error.Code)
	}

	if resp.Error.ConflictingField != "id" {
		t.Errorf("expected conflicting field 'id', got %q", resp.Error.ConflictingField)
	}
}

func TestHandler_CreateEntity_BadJSON(t *testing.T) {
	h, _ := newTestHandler()
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_GetEntity(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_get", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities/ent_get", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp domain.Entity
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID != "ent_get" {
		t.Errorf("expected id 'ent_get', got %q", resp.ID)
	}
}

func TestHandler_GetEntity_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities/nonexistent", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	var resp struct {
		Error struct {
			Code       string `json:"error_code"`
			ResourceID string `json:"resource_id"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("expected code NOT_FOUND, got %q", resp.Error.Code)
	}

	if resp.Error.ResourceID != "nonexistent" {
		t.Errorf("expected resource_id 'nonexistent', got %q", resp.Error.ResourceID)
	}
}

func TestHandler_UpdateEntity(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_upd", true)

	body := `{"name": "Renamed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/entities/ent_upd", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp UpdateEntityResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Name != "Renamed" {
		t.Errorf("expected name 'Renamed', got %q", resp.Name)
	}

	if resp.Version != 2 {
		t.Errorf("expected version 2 after update, got %d", resp.Version)
	}

	if len(resp.UpdatedFields) != 1 || resp.UpdatedFields[0] != "name" {
		t.Errorf("expected updated_fields ['name'], got %v", resp.UpdatedFields)
	}
}

func TestHandler_UpdateEntity_ArchivedIsFrozen(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_frozen", false)

	body := `{"name": "Renamed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/entities/ent_frozen", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	var resp struct {
		Error struct {
			Code     string `json:"error_code"`
			RuleName string `json:"rule_name"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error.Code != "BUSINESS_RULE_VIOLATION" {
		t.Errorf("expected code BUSINESS_RULE_VIOLATION, got %q", resp.Error.Code)
	}

	if resp.Error.RuleName != "archived_entity_is_frozen" {
		t.Errorf("expected rule 'archived_entity_is_frozen', got %q", resp.Error.RuleName)
	}
}

func TestHandler_DeleteEntity(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_del", false)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/entities/ent_del", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if _, err := store.GetByID(context.Background(), "ent_del"); err == nil {
		t.Error("expected entity to be removed from the store")
	}
}

func TestHandler_DeleteEntity_ActiveIsRejected(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_active", true)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/entities/ent_active", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
}

func TestHandler_ListEntities(t *testing.T) {
	h, store := newTestHandler()
	router := newTestRouter(h)
	seedEntity(t, store, "ent_a", true)
	seedEntity(t, store, "ent_b", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp ListEntitiesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
}
