package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcuskbra/skeleton-challenge/internal/domain"
	"github.com/marcuskbra/skeleton-challenge/internal/repository"
)

func newEntity(id string, createdAt time.Time) *domain.Entity {
	return &domain.Entity{
		AggregateRoot: domain.AggregateRoot{ID: id, Version: 1, CreatedAt: createdAt, UpdatedAt: createdAt},
		Name:          "Test Entity",
		IsActive:      true,
		Metadata:      map[string]any{},
	}
}

func TestEntityStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewEntityStore()
	e := newEntity("e-1", time.Now())

	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, e); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("duplicate Create() error = %v, want ErrAlreadyExists", err)
	}

	got, err := store.GetByID(ctx, "e-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ID != "e-1" || got.Name != "Test Entity" {
		t.Errorf("GetByID() = %+v", got)
	}

	// the store must not hand out shared state
	got.Metadata["k"] = "v"
	again, _ := store.GetByID(ctx, "e-1")
	if _, ok := again.Metadata["k"]; ok {
		t.Error("store leaked a shared metadata map")
	}
}

func TestEntityStore_GetMissing(t *testing.T) {
	store := NewEntityStore()
	if _, err := store.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestEntityStore_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := NewEntityStore()
	e := newEntity("e-1", time.Now())

	if err := store.Update(ctx, e); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update() on missing = %v, want ErrNotFound", err)
	}

	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	e.Name = "Renamed"
	if err := store.Update(ctx, e); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := store.GetByID(ctx, "e-1")
	if got.Name != "Renamed" {
		t.Errorf("Name = %q after update", got.Name)
	}

	if err := store.Delete(ctx, "e-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "e-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestEntityStore_NotifyCount(t *testing.T) {
	ctx := context.Background()
	var counts []int
	store := NewEntityStore().NotifyCount(func(count int) {
		counts = append(counts, count)
	})

	if err := store.Create(ctx, newEntity("e-1", time.Now())); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, newEntity("e-2", time.Now())); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Delete(ctx, "e-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// a failed mutation must not notify
	if err := store.Delete(ctx, "e-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}

	want := []int{1, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("got %d notifications %v, want %v", len(counts), counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("notification %d = %d, want %d", i, counts[i], want[i])
		}
	}
}

func TestEntityStore_ListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	store := NewEntityStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		if err := store.Create(ctx, newEntity(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d entities, want 3", len(list))
	}
	want := []string{"c", "a", "b"}
	for i, e := range list {
		if e.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, e.ID, want[i])
		}
	}
}
