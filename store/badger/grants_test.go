package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
)

func TestGrantRecordBasics(t *testing.T) {
	grantRepo, userRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		userRepo.Close()
		grantRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	grant := &core.GrantRecord{
		Source:      "otf",
		ProgramName: "Seed Grant",
		Description: "Funding for community seed projects.",
		ScrapedAt:   time.Now().UTC(),
	}

	added, err := grantRepo.AddGrants(ctx, grant)
	if err != nil {
		t.Fatalf("Failed to add grant: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	count, err := grantRepo.CountGrants(ctx)
	if err != nil {
		t.Fatalf("Failed to count grants: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 grant, got %d", count)
	}
}

func TestListDescribedGrantsOrder(t *testing.T) {
	grantRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		grantRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of chronological order
	grants := []*core.GrantRecord{
		{ProgramName: "Middle", Description: "middle grant", ScrapedAt: base.Add(1 * time.Hour)},
		{ProgramName: "Newest", Description: "newest grant", ScrapedAt: base.Add(2 * time.Hour)},
		{ProgramName: "Oldest", Description: "oldest grant", ScrapedAt: base},
	}
	if _, err := grantRepo.AddGrants(ctx, grants...); err != nil {
		t.Fatalf("Failed to add grants: %v", err)
	}

	listed, err := grantRepo.ListDescribedGrants(ctx)
	if err != nil {
		t.Fatalf("Failed to list grants: %v", err)
	}

	if len(listed) != 3 {
		t.Fatalf("Expected 3 grants, got %d", len(listed))
	}

	wantOrder := []string{"Newest", "Middle", "Oldest"}
	for i, want := range wantOrder {
		if listed[i].ProgramName != want {
			t.Fatalf("Position %d: expected %q, got %q", i, want, listed[i].ProgramName)
		}
	}
}

func TestListDescribedGrantsFiltersEmptyDescription(t *testing.T) {
	grantRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		grantRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	grants := []*core.GrantRecord{
		{ProgramName: "Described", Description: "has a description"},
		{ProgramName: "Blank", Description: "   "},
		{ProgramName: "Missing"},
	}
	if _, err := grantRepo.AddGrants(ctx, grants...); err != nil {
		t.Fatalf("Failed to add grants: %v", err)
	}

	listed, err := grantRepo.ListDescribedGrants(ctx)
	if err != nil {
		t.Fatalf("Failed to list grants: %v", err)
	}

	if len(listed) != 1 {
		t.Fatalf("Expected 1 described grant, got %d", len(listed))
	}
	if listed[0].ProgramName != "Described" {
		t.Fatalf("Expected 'Described', got %q", listed[0].ProgramName)
	}

	// Undescribed grants still count toward the total
	count, err := grantRepo.CountGrants(ctx)
	if err != nil {
		t.Fatalf("Failed to count grants: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 grants, got %d", count)
	}
}

func TestAddGrantsValidation(t *testing.T) {
	grantRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		grantRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = grantRepo.AddGrants(ctx, &core.GrantRecord{Description: "no name"})
	if !errors.Is(err, core.ErrEmptyProgramName) {
		t.Fatalf("Expected ErrEmptyProgramName, got %v", err)
	}
}

func TestUserProfileRoundTrip(t *testing.T) {
	_, userRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		userRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	user := &core.UserProfile{
		UserID:          "demo_1",
		Name:            "Mahi Singh",
		Age:             23,
		EligibilityTags: []string{"student", "youth"},
	}

	if err := userRepo.PutUser(ctx, user); err != nil {
		t.Fatalf("Failed to put user: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	got, err := userRepo.GetUser(ctx, "demo_1")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got.Name != "Mahi Singh" {
		t.Fatalf("Expected 'Mahi Singh', got %q", got.Name)
	}
	if len(got.EligibilityTags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(got.EligibilityTags))
	}

	// Replacing keeps the same key
	user.Name = "M. Singh"
	if err := userRepo.PutUser(ctx, user); err != nil {
		t.Fatalf("Failed to replace user: %v", err)
	}
	got, err = userRepo.GetUser(ctx, "demo_1")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got.Name != "M. Singh" {
		t.Fatalf("Expected 'M. Singh', got %q", got.Name)
	}
}

func TestGetUserNotFound(t *testing.T) {
	_, userRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		userRepo.Close()
		backend.Close()
	}()

	_, err = userRepo.GetUser(context.Background(), "nobody")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}
