package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	propcheck "github.com/openregister/propcheck"
)

// Service wraps a Store behind the validation gate: a schema is only
// persisted after its root properties map validates.
type Service struct {
	store     Store
	validator *propcheck.Validator
	logger    *slog.Logger
}

// NewService builds a Service. A nil validator gets the default fail-fast
// Validator; a nil logger gets slog.Default.
func NewService(store Store, v *propcheck.Validator, logger *slog.Logger) *Service {
	if v == nil {
		v = propcheck.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, validator: v, logger: logger}
}

// RegisterSchema validates and persists a schema. Validation Issues
// propagate unchanged so callers can render path-annotated diagnostics.
func (s *Service) RegisterSchema(ctx context.Context, sc *Schema) error {
	if err := s.validator.ValidateProperties(sc.Properties, ""); err != nil {
		s.logger.InfoContext(ctx, "schema rejected",
			"title", sc.Title,
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
		sc.Created = now
	}
	sc.Updated = now

	if err := s.store.PutSchema(ctx, sc); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "schema registered",
		"id", sc.ID.String(),
		"title", sc.Title,
		"properties", len(sc.Properties),
	)
	return nil
}

// GetSchema fetches a stored schema.
func (s *Service) GetSchema(ctx context.Context, id uuid.UUID) (*Schema, error) {
	return s.store.GetSchema(ctx, id)
}

// DeleteSchema removes a stored schema.
func (s *Service) DeleteSchema(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteSchema(ctx, id)
}

// ListSchemas returns every stored schema.
func (s *Service) ListSchemas(ctx context.Context) ([]*Schema, error) {
	return s.store.ListSchemas(ctx)
}

// CreateRegister persists a register, assigning an ID when absent.
func (s *Service) CreateRegister(ctx context.Context, r *Register) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
		r.Created = time.Now().UTC()
	}
	return s.store.PutRegister(ctx, r)
}

// GetRegister fetches a register.
func (s *Service) GetRegister(ctx context.Context, id uuid.UUID) (*Register, error) {
	return s.store.GetRegister(ctx, id)
}

// DeleteRegister removes a register.
func (s *Service) DeleteRegister(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteRegister(ctx, id)
}

// ListRegisters returns every register.
func (s *Service) ListRegisters(ctx context.Context) ([]*Register, error) {
	return s.store.ListRegisters(ctx)
}
