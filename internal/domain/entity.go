// Package domain contains the core business types: entities, value objects,
// domain events, and the result variants returned by domain operations.
package domain

import "time"

// AggregateRoot carries the identity and optimistic-locking fields shared by
// every aggregate. Embed it in concrete aggregates.
type AggregateRoot struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IncrementVersion bumps the optimistic-lock version and refreshes the
// update timestamp. Call it after every mutation of the owning aggregate.
func (a *AggregateRoot) IncrementVersion(now time.Time) {
	a.Version++
	a.UpdatedAt = now
}

// Entity is the demonstration aggregate of the skeleton. Real services swap
// it for their own aggregates while keeping the same conventions.
type Entity struct {
	AggregateRoot
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active"`
	Metadata    map[string]any `json:"metadata"`
}

// Clone returns an independently-owned copy. Metadata is copied one level
// deep, which is as far as the skeleton ever nests it.
func (e Entity) Clone() Entity {
	out := e
	if e.Metadata != nil {
		out.Metadata = make(map[string]any, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Deactivate archives the entity. Archived entities are frozen: only
// reactivation may touch them afterwards.
func (e *Entity) Deactivate(now time.Time) {
	e.IsActive = false
	e.IncrementVersion(now)
}

// Activate restores an archived entity.
func (e *Entity) Activate(now time.Time) {
	e.IsActive = true
	e.IncrementVersion(now)
}
