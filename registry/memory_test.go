package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/openregister/propcheck/registry"
)

func TestMemoryStore_SchemaLifecycle(t *testing.T) {
	store := registry.NewMemoryStore()
	ctx := context.Background()

	sc := &registry.Schema{
		ID:         uuid.New(),
		Title:      "invoice",
		Properties: map[string]any{"amount": map[string]any{"type": "number"}},
	}
	if err := store.PutSchema(ctx, sc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.GetSchema(ctx, sc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "invoice" {
		t.Fatalf("unexpected schema: %+v", got)
	}

	// stored value is isolated from caller mutation
	got.Title = "mutated"
	again, _ := store.GetSchema(ctx, sc.ID)
	if again.Title != "invoice" {
		t.Fatalf("store must copy on get")
	}

	list, err := store.ListSchemas(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, %d entries", err, len(list))
	}

	if err := store.DeleteSchema(ctx, sc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetSchema(ctx, sc.ID); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteSchema(ctx, sc.ID); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("double delete should report ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_RegisterLifecycle(t *testing.T) {
	store := registry.NewMemoryStore()
	ctx := context.Background()

	r := &registry.Register{ID: uuid.New(), Slug: "orgs", Title: "Organisations"}
	if err := store.PutRegister(ctx, r); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.GetRegister(ctx, r.ID)
	if err != nil || got.Slug != "orgs" {
		t.Fatalf("get: %v, %+v", err, got)
	}
	list, err := store.ListRegisters(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, %d entries", err, len(list))
	}
	if err := store.DeleteRegister(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetRegister(ctx, r.ID); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
