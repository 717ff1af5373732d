package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/repository/memory"
)

func TestStore_RoundTripCopies(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if _, err := store.Get(ctx, "employees"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	data := []byte("abc")
	if err := store.Put(ctx, "employees", data); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data[0] = 'z'

	got, err := store.Get(ctx, "employees")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("expected stored copy abc, got %s", got)
	}
}
