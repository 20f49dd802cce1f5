package store

import (
	"context"
	"testing"

	"github.com/patchmarket/patch/internal/db"
)

func TestGetJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	// Later calls return the persisted secret, not a new candidate.
	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret again: %v", err)
	}
	if second != first {
		t.Error("expected the stored secret to be stable across calls")
	}
}
