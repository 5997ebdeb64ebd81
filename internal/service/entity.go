// Package service implements the domain operations of the skeleton. Every
// operation returns one variant of its sealed result union; errors that have
// domain meaning are returned, never thrown.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/marcuskbra/skeleton-challenge/internal/clock"
	"github.com/marcuskbra/skeleton-challenge/internal/domain"
	"github.com/marcuskbra/skeleton-challenge/internal/repository"
)

const maxNameLength = 200

// ResultRecorder counts operation outcomes, keyed by operation name and
// either "success" or the variant's error code.
type ResultRecorder interface {
	RecordOperationResult(operation, outcome string)
}

type EntityService struct {
	repo     repository.EntityRepository
	clock    clock.Clock
	logger   *slog.Logger
	recorder ResultRecorder
}

func NewEntityService(repo repository.EntityRepository, clk clock.Clock, logger *slog.Logger) *EntityService {
	return &EntityService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// WithMetrics enables per-operation outcome counters.
func (s *EntityService) WithMetrics(recorder ResultRecorder) *EntityService {
	s.recorder = recorder
	return s
}

type CreateEntityInput struct {
	ID          string
	Name        string
	Description string
	Metadata    map[string]any
}

// UpdateEntityInput carries partial updates; nil pointers mean "leave as is".
type UpdateEntityInput struct {
	Name        *string
	Description *string
	Metadata    map[string]any
	IsActive    *bool
}

// Create validates the input and stores a new entity. A duplicate identifier
// is a ConflictError, not an exception.
func (s *EntityService) Create(ctx context.Context, input CreateEntityInput) domain.CreateEntityResult {
	if fieldErrors := validateCreate(input); len(fieldErrors) > 0 {
		return s.createResult(domain.NewValidationError(fieldErrors))
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := s.clock.Now()
	entity := domain.Entity{
		AggregateRoot: domain.AggregateRoot{ID: id, Version: 1, CreatedAt: now, UpdatedAt: now},
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		IsActive:      true,
		Metadata:      input.Metadata,
	}

	if err := s.repo.Create(ctx, &entity); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return s.createResult(domain.NewConflictError("id", fmt.Sprintf("entity %q already exists", id)))
		}
		panic(infraFault("create entity", err))
	}

	s.logger.Info("entity created", "entity_id", id)
	return s.createResult(domain.CreateEntitySuccess{EntityID: id, Entity: entity.Clone()})
}

// Get looks an entity up by ID. A missing entity is a NotFoundError carrying
// the resource kind and the identifier that was not found.
func (s *EntityService) Get(ctx context.Context, id string) domain.GetEntityResult {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.getResult(domain.NewNotFoundError("Entity", id))
		}
		panic(infraFault("get entity", err))
	}
	return s.getResult(domain.GetEntitySuccess{Entity: entity.Clone()})
}

// Update applies a partial update, bumping the optimistic-lock version.
// Archived entities are frozen: any change other than reactivation violates
// the archived_entity_is_frozen rule.
func (s *EntityService) Update(ctx context.Context, id string, input UpdateEntityInput) domain.UpdateEntityResult {
	if fieldErrors := validateUpdate(input); len(fieldErrors) > 0 {
		return s.updateResult(domain.NewValidationError(fieldErrors))
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.updateResult(domain.NewNotFoundError("Entity", id))
		}
		panic(infraFault("get entity", err))
	}

	mutatesContent := input.Name != nil || input.Description != nil || input.Metadata != nil
	reactivating := input.IsActive != nil && *input.IsActive
	if !entity.IsActive && mutatesContent && !reactivating {
		return s.updateResult(domain.NewBusinessRuleViolationError(
			"archived_entity_is_frozen",
			fmt.Sprintf("entity %q is archived; reactivate it before editing", id),
		))
	}

	var updated []string
	if input.Name != nil && strings.TrimSpace(*input.Name) != entity.Name {
		entity.Name = strings.TrimSpace(*input.Name)
		updated = append(updated, "name")
	}
	if input.Description != nil && *input.Description != entity.Description {
		entity.Description = *input.Description
		updated = append(updated, "description")
	}
	if input.Metadata != nil {
		entity.Metadata = input.Metadata
		updated = append(updated, "metadata")
	}
	if input.IsActive != nil && *input.IsActive != entity.IsActive {
		entity.IsActive = *input.IsActive
		updated = append(updated, "is_active")
	}

	if len(updated) > 0 {
		entity.IncrementVersion(s.clock.Now())
		if err := s.repo.Update(ctx, entity); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return s.updateResult(domain.NewNotFoundError("Entity", id))
			}
			panic(infraFault("update entity", err))
		}
	}

	s.logger.Info("entity updated", "entity_id", id, "updated_fields", updated)
	return s.updateResult(domain.UpdateEntitySuccess{Entity: entity.Clone(), UpdatedFields: updated})
}

// Delete removes an archived entity. Deleting an active entity violates the
// entity_must_be_inactive rule; deactivate first.
func (s *EntityService) Delete(ctx context.Context, id string) domain.DeleteEntityResult {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.deleteResult(domain.NewNotFoundError("Entity", id))
		}
		panic(infraFault("get entity", err))
	}

	if entity.IsActive {
		return s.deleteResult(domain.NewBusinessRuleViolationError(
			"entity_must_be_inactive",
			fmt.Sprintf("entity %q is active; deactivate it before deleting", id),
		))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.deleteResult(domain.NewNotFoundError("Entity", id))
		}
		panic(infraFault("delete entity", err))
	}

	s.logger.Info("entity deleted", "entity_id", id)
	return s.deleteResult(domain.DeleteEntitySuccess{EntityID: id})
}

// List returns all stored entities in creation order.
func (s *EntityService) List(ctx context.Context) ([]*domain.Entity, error) {
	return s.repo.List(ctx)
}

func validateCreate(input CreateEntityInput) map[string]string {
	fieldErrors := make(map[string]string)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors["name"] = "name is required"
	} else if len(name) > maxNameLength {
		fieldErrors["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLength)
	}
	if input.ID != "" && strings.TrimSpace(input.ID) == "" {
		fieldErrors["id"] = "id must not be blank"
	}
	return fieldErrors
}

func validateUpdate(input UpdateEntityInput) map[string]string {
	fieldErrors := make(map[string]string)
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			fieldErrors["name"] = "name must not be blank"
		} else if len(name) > maxNameLength {
			fieldErrors["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLength)
		}
	}
	return fieldErrors
}

func (s *EntityService) createResult(r domain.CreateEntityResult) domain.CreateEntityResult {
	s.record("create_entity", r)
	return r
}

func (s *EntityService) getResult(r domain.GetEntityResult) domain.GetEntityResult {
	s.record("get_entity", r)
	return r
}

func (s *EntityService) updateResult(r domain.UpdateEntityResult) domain.UpdateEntityResult {
	s.record("update_entity", r)
	return r
}

func (s *EntityService) deleteResult(r domain.DeleteEntityResult) domain.DeleteEntityResult {
	s.record("delete_entity", r)
	return r
}

func (s *EntityService) record(operation string, r domain.Outcome) {
	if s.recorder == nil {
		return
	}
	outcome := "success"
	if !r.Succeeded() {
		if coded, ok := r.(interface{ ErrorCode() domain.ErrorCode }); ok {
			outcome = string(coded.ErrorCode())
		} else {
			outcome = "error"
		}
	}
	s.recorder.RecordOperationResult(operation, outcome)
}

// infraFault marks a repository failure that is not one of the sentinel
// conditions. It cannot be shaped into a domain outcome; the HTTP Recoverer
// middleware turns the panic into a 500.
func infraFault(operation string, err error) error {
	return fmt.Errorf("%s: unexpected repository error: %w", operation, err)
}
