// Package repository defines the storage ports consumed by the service
// layer. Implementations signal the well-known conditions through the
// sentinel errors below; everything else is an infrastructure fault.
package repository

import (
	"context"
	"errors"

	"github.com/marcuskbra/skeleton-challenge/internal/domain"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a resource with the same identifier already exists.
	ErrAlreadyExists = errors.New("resource already exists")
)

type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) error
	GetByID(ctx context.Context, id string) (*domain.Entity, error)
	Update(ctx context.Context, entity *domain.Entity) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Entity, error)
}
