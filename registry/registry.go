// Package registry persists registers and their schemas. Writes go
// through Service, which gates every schema on property validation.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a register or schema does not exist.
var ErrNotFound = errors.New("registry: not found")

// Register groups schemas under one data-registration namespace.
type Register struct {
	ID      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

// Schema is a stored record structure definition. Properties holds the
// raw property tree exactly as validated.
type Schema struct {
	ID         uuid.UUID      `json:"id"`
	RegisterID uuid.UUID      `json:"registerId,omitempty"`
	Title      string         `json:"title"`
	Version    string         `json:"version,omitempty"`
	Properties map[string]any `json:"properties"`
	Created    time.Time      `json:"created"`
	Updated    time.Time      `json:"updated"`
}

// Store abstracts schema and register persistence.
type Store interface {
	PutSchema(ctx context.Context, s *Schema) error
	GetSchema(ctx context.Context, id uuid.UUID) (*Schema, error)
	DeleteSchema(ctx context.Context, id uuid.UUID) error
	ListSchemas(ctx context.Context) ([]*Schema, error)

	PutRegister(ctx context.Context, r *Register) error
	GetRegister(ctx context.Context, id uuid.UUID) (*Register, error)
	DeleteRegister(ctx context.Context, id uuid.UUID) error
	ListRegisters(ctx context.Context) ([]*Register, error)

	Close() error
}
