package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/user/catalog-crawler/internal/repository"
)

func TestPlan_AutoResumeUsesLexicographicMax(t *testing.T) {
	planner := NewResumePlanner(newFakeCatalog("Apple", "Banana", "Cherry"))

	cursor, err := planner.Plan(context.Background(), "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor == nil || cursor.From != "Cherry" {
		t.Fatalf("cursor = %+v, want derived from Cherry", cursor)
	}
}

func TestPlan_ExplicitStartWinsOverResume(t *testing.T) {
	planner := NewResumePlanner(newFakeCatalog("Apple", "Banana", "Cherry"))

	cursor, err := planner.Plan(context.Background(), "Zebra", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor == nil || cursor.From != "Zebra" {
		t.Fatalf("cursor = %+v, want derived from Zebra", cursor)
	}
}

func TestPlan_EmptyCatalogStartsFromBeginning(t *testing.T) {
	planner := NewResumePlanner(newFakeCatalog())

	cursor, err := planner.Plan(context.Background(), "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("cursor = %+v, want nil (start of sequence)", cursor)
	}
}

func TestPlan_NoResumeNoExplicitStart(t *testing.T) {
	planner := NewResumePlanner(newFakeCatalog("Apple"))

	cursor, err := planner.Plan(context.Background(), "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("cursor = %+v, want nil", cursor)
	}
}

func TestPlan_PropagatesStoreErrors(t *testing.T) {
	catalog := newFakeCatalog("Apple")
	catalog.failMax = fmt.Errorf("%w: connection reset", repository.ErrPersistence)
	planner := NewResumePlanner(catalog)

	_, err := planner.Plan(context.Background(), "", true)
	if !errors.Is(err, repository.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
}
