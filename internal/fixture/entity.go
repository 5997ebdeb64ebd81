package fixture

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcuskbra/skeleton-challenge/internal/domain"
)

// EntityBuilder builds domain.Entity fixtures.
//
// Defaults: generated UUID, name "Test Entity", a description, current UTC
// timestamps, active, empty metadata.
type EntityBuilder struct {
	base
}

func Entity() *EntityBuilder {
	now := time.Now().UTC()
	b := &EntityBuilder{}
	b.fields = Fields{
		"id":          uuid.NewString(),
		"version":     1,
		"name":        "Test Entity",
		"description": "Test entity description",
		"created_at":  now,
		"updated_at":  now,
		"is_active":   true,
		"metadata":    map[string]any{},
	}
	return b
}

// WithField overrides any schema field by name; the escape hatch for fields
// without a named setter.
func (b *EntityBuilder) WithField(name string, value any) *EntityBuilder {
	b.set(name, value)
	return b
}

func (b *EntityBuilder) WithID(id string) *EntityBuilder {
	b.set("id", id)
	return b
}

func (b *EntityBuilder) WithName(name string) *EntityBuilder {
	b.set("name", name)
	return b
}

func (b *EntityBuilder) WithDescription(description string) *EntityBuilder {
	b.set("description", description)
	return b
}

func (b *EntityBuilder) WithMetadata(metadata map[string]any) *EntityBuilder {
	b.set("metadata", metadata)
	return b
}

// Inactive marks the entity as archived.
func (b *EntityBuilder) Inactive() *EntityBuilder {
	b.set("is_active", false)
	return b
}

func (b *EntityBuilder) CreatedAt(ts time.Time) *EntityBuilder {
	b.set("created_at", ts)
	return b
}

func (b *EntityBuilder) Build() (domain.Entity, error) {
	return buildEntity(b.snapshot())
}

func (b *EntityBuilder) BuildMany(count int, modifier Modifier) ([]domain.Entity, error) {
	return buildMany(b.snapshot(), count, modifier, buildEntity)
}

func buildEntity(fields Fields) (domain.Entity, error) {
	d := newDecoder("Entity", fields,
		"id", "version", "name", "description", "created_at", "updated_at", "is_active", "metadata")

	e := domain.Entity{
		AggregateRoot: domain.AggregateRoot{
			ID:        d.str("id"),
			Version:   int(d.integer("version")),
			CreatedAt: d.instant("created_at"),
			UpdatedAt: d.instant("updated_at"),
		},
		Name:        d.str("name"),
		Description: d.str("description"),
		IsActive:    d.boolean("is_active"),
		Metadata:    d.anyMap("metadata"),
	}

	if strings.TrimSpace(e.ID) == "" {
		d.fail("id", "id must not be blank")
	}
	if strings.TrimSpace(e.Name) == "" {
		d.fail("name", "name must not be blank")
	}
	if e.Version < 1 {
		d.fail("version", "version must be at least 1")
	}

	if err := d.finish(); err != nil {
		return domain.Entity{}, err
	}
	return e, nil
}
