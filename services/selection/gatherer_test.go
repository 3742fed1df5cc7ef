package selection

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	catalogRepo "coursecart/database/repository/catalog"
	"coursecart/models"
)

// fakeCatalog serves canned sessions per calendar day and counts fetches.
type fakeCatalog struct {
	byDate     map[string][]models.Session
	byCycle    map[string][]models.Session
	downDates  map[string]bool
	dateCalls  int
	cycleCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		byDate:    make(map[string][]models.Session),
		byCycle:   make(map[string][]models.Session),
		downDates: make(map[string]bool),
	}
}

func (f *fakeCatalog) add(s models.Session) {
	key := s.Date().Format("2006-01-02")
	f.byDate[key] = append(f.byDate[key], s)
	f.byCycle[s.CycleID] = append(f.byCycle[s.CycleID], s)
}

func (f *fakeCatalog) FetchByDate(ctx context.Context, date time.Time) ([]models.Session, error) {
	f.dateCalls++
	key := date.Format("2006-01-02")
	if f.downDates[key] {
		return nil, fmt.Errorf("%w: fetch by date %s", catalogRepo.ErrCatalogUnavailable, key)
	}
	return f.byDate[key], nil
}

func (f *fakeCatalog) FetchByCycle(ctx context.Context, cycleID string) ([]models.Session, error) {
	f.cycleCalls++
	return f.byCycle[cycleID], nil
}

func TestResolveAllNothingMissing(t *testing.T) {
	state := testState(0)
	cache := NewSessionCache()
	mustAdd(t, state, cache, testSession("s1", 0, 9))

	catalog := newFakeCatalog()
	resolved, err := ResolveAll(context.Background(), state, cache, catalog, baseDay, 31)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "s1" {
		t.Fatalf("unexpected resolved set: %v", resolved)
	}
	if catalog.dateCalls != 0 {
		t.Fatalf("expected no fetches when nothing is missing, got %d", catalog.dateCalls)
	}
}

func TestResolveAllWalksForwardAndStopsEarly(t *testing.T) {
	state := testState(0)
	state.Package = &models.Package{ID: "pkg-1"}
	state.SelectedIDs = []string{"s1", "s2"}
	cache := NewSessionCache()

	catalog := newFakeCatalog()
	catalog.add(testSession("s1", 2, 9))
	catalog.add(testSession("s2", 5, 9))

	resolved, err := ResolveAll(context.Background(), state, cache, catalog, baseDay, 31)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved sessions, got %d", len(resolved))
	}
	// Day offsets 0..5 inclusive, then stop.
	if catalog.dateCalls != 6 {
		t.Fatalf("expected 6 fetches, got %d", catalog.dateCalls)
	}
}

func TestResolveAllBoundedWindow(t *testing.T) {
	state := testState(0)
	state.Package = &models.Package{ID: "pkg-1"}
	state.SelectedIDs = []string{"ghost"}
	cache := NewSessionCache()

	catalog := newFakeCatalog()
	_, err := ResolveAll(context.Background(), state, cache, catalog, baseDay, 7)

	var partial *PartialFailureError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialFailureError, got %v", err)
	}
	if len(partial.StillMissing) != 1 || partial.StillMissing[0] != "ghost" {
		t.Fatalf("unexpected still-missing set: %v", partial.StillMissing)
	}
	if catalog.dateCalls != 7 {
		t.Fatalf("expected exactly 7 fetches, got %d", catalog.dateCalls)
	}
}

func TestResolveAllUnavailableDayCountsAsEmpty(t *testing.T) {
	state := testState(0)
	state.Package = &models.Package{ID: "pkg-1"}
	state.SelectedIDs = []string{"s1"}
	cache := NewSessionCache()

	catalog := newFakeCatalog()
	catalog.add(testSession("s1", 3, 9))
	catalog.downDates[baseDay.AddDate(0, 0, 1).Format("2006-01-02")] = true

	resolved, err := ResolveAll(context.Background(), state, cache, catalog, baseDay, 31)
	if err != nil {
		t.Fatalf("resolve all should skip the unavailable day: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved session, got %d", len(resolved))
	}
}

func TestResolveAllCancelled(t *testing.T) {
	state := testState(0)
	state.Package = &models.Package{ID: "pkg-1"}
	state.SelectedIDs = []string{"s1"}
	cache := NewSessionCache()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveAll(ctx, state, cache, newFakeCatalog(), baseDay, 31)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
