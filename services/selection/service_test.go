package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"coursecart/models"
)

// In-memory fakes for the collaborators around the service.

type fakeStore struct {
	episodes map[string]*models.SelectionState
}

func newFakeStore() *fakeStore {
	return &fakeStore{episodes: make(map[string]*models.SelectionState)}
}

func (f *fakeStore) Save(ctx context.Context, state *models.SelectionState) error {
	cp := *state
	f.episodes[state.EpisodeID] = &cp
	return nil
}

func (f *fakeStore) Get(ctx context.Context, episodeID string) (*models.SelectionState, error) {
	state, ok := f.episodes[episodeID]
	if !ok {
		return nil, ErrEpisodeNotFound
	}
	cp := *state
	return &cp, nil
}

func (f *fakeStore) Delete(ctx context.Context, episodeID string) error {
	delete(f.episodes, episodeID)
	return nil
}

type fakePackages struct {
	pkgs map[string]models.Package
}

func (f *fakePackages) GetByID(ctx context.Context, id string) (*models.Package, error) {
	pkg, ok := f.pkgs[id]
	if !ok {
		return nil, errors.New("package not found")
	}
	return &pkg, nil
}

func (f *fakePackages) List(ctx context.Context) ([]models.Package, error) {
	out := make([]models.Package, 0, len(f.pkgs))
	for _, p := range f.pkgs {
		out = append(out, p)
	}
	return out, nil
}

type fakeFacts struct {
	enrolled map[string]bool
}

func (f *fakeFacts) IsEnrolled(ctx context.Context, userID, sessionID string) (bool, error) {
	return f.enrolled[sessionID], nil
}

type fakeCart struct {
	items []*models.LineItem
}

func (f *fakeCart) AddLineItem(ctx context.Context, item *models.LineItem) error {
	f.items = append(f.items, item)
	return nil
}

func newTestService(catalog *fakeCatalog) (*DefaultSelectionService, *fakeStore, *fakeCart) {
	store := newFakeStore()
	cart := &fakeCart{}
	svc := &DefaultSelectionService{
		Catalog: catalog,
		Packages: &fakePackages{pkgs: map[string]models.Package{
			"pkg-1": {ID: "pkg-1", Name: "4-class pass", ClassCount: 4, Price: 100, Currency: "EUR"},
			"pkg-u": {ID: "pkg-u", Name: "monthly unlimited", ClassCount: 0, Price: 80, Currency: "EUR"},
		}},
		Enrollments: &fakeFacts{enrolled: map[string]bool{}},
		Cart:        cart,
		Store:       store,
		WindowDays:  31,
	}
	return svc, store, cart
}

func TestStartEpisode(t *testing.T) {
	svc, store, _ := newTestService(newFakeCatalog())

	state, err := svc.StartEpisode(context.Background(), "user-1", "pkg-1")
	if err != nil {
		t.Fatalf("start episode: %v", err)
	}
	if state.Package == nil || state.Package.ID != "pkg-1" {
		t.Fatalf("package not attached to episode")
	}
	if _, err := store.Get(context.Background(), state.EpisodeID); err != nil {
		t.Fatalf("episode not stored: %v", err)
	}
}

func TestAddSessionWithDateHint(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSession("s1", 2, 9))
	svc, _, _ := newTestService(catalog)

	state, err := svc.StartEpisode(context.Background(), "user-1", "pkg-1")
	if err != nil {
		t.Fatalf("start episode: %v", err)
	}

	hint := baseDay.AddDate(0, 0, 2)
	updated, err := svc.AddSession(context.Background(), state.EpisodeID, "s1", &hint)
	if err != nil {
		t.Fatalf("add session: %v", err)
	}
	if !updated.Selected("s1") {
		t.Fatalf("s1 not selected")
	}
	if updated.RequiredCycleID != "cycle-1" {
		t.Fatalf("cycle not locked")
	}
	if len(updated.Resolved) != 1 {
		t.Fatalf("resolved cache not persisted with the episode")
	}
}

func TestAddSessionNotFound(t *testing.T) {
	svc, _, _ := newTestService(newFakeCatalog())
	state, _ := svc.StartEpisode(context.Background(), "user-1", "pkg-1")

	hint := baseDay
	_, err := svc.AddSession(context.Background(), state.EpisodeID, "ghost", &hint)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAddSessionRejectedLeavesEpisodeUnchanged(t *testing.T) {
	catalog := newFakeCatalog()
	full := testSession("s1", 0, 9)
	full.SeatsAvailable = 0
	catalog.add(full)
	svc, store, _ := newTestService(catalog)

	state, _ := svc.StartEpisode(context.Background(), "user-1", "pkg-1")
	hint := baseDay
	_, err := svc.AddSession(context.Background(), state.EpisodeID, "s1", &hint)
	var noSeats *NoSeatsAvailableError
	if !errors.As(err, &noSeats) {
		t.Fatalf("expected NoSeatsAvailableError, got %v", err)
	}

	stored, _ := store.Get(context.Background(), state.EpisodeID)
	if len(stored.SelectedIDs) != 0 {
		t.Fatalf("rejected add mutated the stored episode")
	}
}

func TestImportHandoff(t *testing.T) {
	svc, _, _ := newTestService(newFakeCatalog())

	payload := models.HandoffPayload{
		Version:    models.HandoffVersion,
		PackageID:  "pkg-1",
		SessionIDs: []string{"s1", "s2", "s1"},
		CycleID:    "cycle-1",
		OfferID:    "offer-1",
	}
	state, err := svc.ImportHandoff(context.Background(), "user-1", payload)
	if err != nil {
		t.Fatalf("import hand-off: %v", err)
	}
	if len(state.SelectedIDs) != 2 {
		t.Fatalf("duplicate ids not collapsed: %v", state.SelectedIDs)
	}
	if state.RequiredCycleID != "cycle-1" || state.RequiredOfferID != "offer-1" {
		t.Fatalf("cycle/offer not pre-locked")
	}
	for _, id := range state.SelectedIDs {
		if state.Origin[id] != models.OriginAutomatic {
			t.Fatalf("imported session %s not marked automatic", id)
		}
	}
}

func TestImportHandoffRejectsUnknownVersion(t *testing.T) {
	svc, _, _ := newTestService(newFakeCatalog())

	_, err := svc.ImportHandoff(context.Background(), "user-1", models.HandoffPayload{
		Version:    99,
		PackageID:  "pkg-1",
		SessionIDs: []string{"s1"},
	})
	if err == nil {
		t.Fatalf("expected version rejection")
	}
}

func TestImportHandoffRejectsOverfilledPackage(t *testing.T) {
	svc, _, _ := newTestService(newFakeCatalog())

	_, err := svc.ImportHandoff(context.Background(), "user-1", models.HandoffPayload{
		Version:    models.HandoffVersion,
		PackageID:  "pkg-1",
		SessionIDs: []string{"a", "b", "c", "d", "e"},
	})
	var limit *PackageLimitReachedError
	if !errors.As(err, &limit) {
		t.Fatalf("expected PackageLimitReachedError, got %v", err)
	}
}

func TestConfirmResolvesImportedIDsAndEmitsLineItem(t *testing.T) {
	catalog := newFakeCatalog()
	for i, id := range []string{"s1", "s2", "s3", "s4"} {
		catalog.add(testSession(id, i*3, 9))
	}
	svc, store, cart := newTestService(catalog)

	state, err := svc.ImportHandoff(context.Background(), "user-1", models.HandoffPayload{
		Version:     models.HandoffVersion,
		PackageID:   "pkg-1",
		SessionIDs:  []string{"s1", "s2", "s3", "s4"},
		CycleID:     "cycle-1",
		OfferID:     "offer-1",
		OriginDates: []time.Time{baseDay},
	})
	if err != nil {
		t.Fatalf("import hand-off: %v", err)
	}

	item, err := svc.Confirm(context.Background(), state.EpisodeID, nil)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(item.SessionIDs) != 4 {
		t.Fatalf("expected 4 sessions on the line item, got %v", item.SessionIDs)
	}
	if item.FinalPrice != 100 {
		t.Fatalf("unexpected price %v", item.FinalPrice)
	}
	if len(cart.items) != 1 {
		t.Fatalf("line item not handed to cart")
	}
	if _, err := store.Get(context.Background(), state.EpisodeID); !errors.Is(err, ErrEpisodeNotFound) {
		t.Fatalf("episode should be destroyed after checkout, got %v", err)
	}
}

func TestConfirmIncomplete(t *testing.T) {
	catalog := newFakeCatalog()
	for i, id := range []string{"s1", "s2", "s3"} {
		catalog.add(testSession(id, i, 9))
	}
	svc, _, cart := newTestService(catalog)

	state, err := svc.ImportHandoff(context.Background(), "user-1", models.HandoffPayload{
		Version:    models.HandoffVersion,
		PackageID:  "pkg-1",
		SessionIDs: []string{"s1", "s2", "s3"},
		CycleID:    "cycle-1",
		OfferID:    "offer-1",
	})
	if err != nil {
		t.Fatalf("import hand-off: %v", err)
	}

	_, err = svc.Confirm(context.Background(), state.EpisodeID, nil)
	var incomplete *IncompleteSelectionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteSelectionError, got %v", err)
	}
	if incomplete.Required != 4 || incomplete.Got != 3 {
		t.Fatalf("unexpected payload: required %d got %d", incomplete.Required, incomplete.Got)
	}
	if len(cart.items) != 0 {
		t.Fatalf("incomplete selection must not reach the cart")
	}
}

func TestConfirmPartialFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.add(testSession("s1", 0, 9))
	svc, _, cart := newTestService(catalog)
	svc.WindowDays = 5

	state, err := svc.ImportHandoff(context.Background(), "user-1", models.HandoffPayload{
		Version:     models.HandoffVersion,
		PackageID:   "pkg-u",
		SessionIDs:  []string{"s1", "ghost"},
		CycleID:     "cycle-1",
		OfferID:     "offer-1",
		OriginDates: []time.Time{baseDay},
	})
	if err != nil {
		t.Fatalf("import hand-off: %v", err)
	}

	_, err = svc.Confirm(context.Background(), state.EpisodeID, nil)
	var partial *PartialFailureError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialFailureError, got %v", err)
	}
	if len(cart.items) != 0 {
		t.Fatalf("partial failure must not reach the cart")
	}
}

func TestCancelDestroysEpisode(t *testing.T) {
	svc, store, _ := newTestService(newFakeCatalog())
	state, _ := svc.StartEpisode(context.Background(), "user-1", "pkg-u")

	if err := svc.Cancel(context.Background(), state.EpisodeID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := store.Get(context.Background(), state.EpisodeID); !errors.Is(err, ErrEpisodeNotFound) {
		t.Fatalf("episode should be gone after cancel")
	}
}
