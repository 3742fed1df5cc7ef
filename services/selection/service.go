package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursecart/models"
	"coursecart/utils"
)

// ErrSessionNotFound is returned when a session id cannot be located in the
// cache, the cycle snapshot, or the catalog.
var ErrSessionNotFound = errors.New("session not found in catalog")

// DefaultWindowDays bounds the confirm-time gathering walk: the 30-day
// selection invariant plus one day of slack.
const DefaultWindowDays = MaxSpanDays + 1

// StartEpisode creates a selection episode for the chosen package and stores
// it. The episode expires on its own unless confirmed or cancelled.
func (s *DefaultSelectionService) StartEpisode(ctx context.Context, userID, packageID string) (*models.SelectionState, error) {
	pkg, err := s.Packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("start episode: %w", err)
	}

	state := &models.SelectionState{
		EpisodeID:   uuid.New().String(),
		UserID:      userID,
		Package:     pkg,
		SelectedIDs: []string{},
		CreatedAt:   time.Now(),
	}
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// ImportHandoff pre-seeds an episode from a hand-off payload built on
// another screen. Phase one records intent only: the selected ids and the
// locked cycle/offer are accepted without their session objects, which are
// resolved lazily at confirm time.
func (s *DefaultSelectionService) ImportHandoff(ctx context.Context, userID string, payload models.HandoffPayload) (*models.SelectionState, error) {
	if payload.Version != models.HandoffVersion {
		return nil, fmt.Errorf("unsupported hand-off payload version %d", payload.Version)
	}
	pkg, err := s.Packages.GetByID(ctx, payload.PackageID)
	if err != nil {
		return nil, fmt.Errorf("import hand-off: %w", err)
	}

	seen := make(map[string]struct{}, len(payload.SessionIDs))
	ids := make([]string, 0, len(payload.SessionIDs))
	origin := make(map[string]string, len(payload.SessionIDs))
	for _, id := range payload.SessionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		origin[id] = models.OriginAutomatic
	}
	if !pkg.Unlimited() && len(ids) > pkg.ClassCount {
		return nil, &PackageLimitReachedError{ClassCount: pkg.ClassCount}
	}

	state := &models.SelectionState{
		EpisodeID:       uuid.New().String(),
		UserID:          userID,
		Package:         pkg,
		RequiredCycleID: payload.CycleID,
		RequiredOfferID: payload.OfferID,
		SelectedIDs:     ids,
		Origin:          origin,
		OriginDates:     payload.OriginDates,
		CreatedAt:       time.Now(),
	}
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, err
	}
	if s.Warmer != nil && state.RequiredCycleID != "" {
		s.Warmer.WarmCycle(state.RequiredCycleID)
	}
	return state, nil
}

// AddSession resolves the candidate session and runs it through the
// constraint engine. date is an optional hint for locating the session in
// the catalog when it has not been seen this episode.
func (s *DefaultSelectionService) AddSession(ctx context.Context, episodeID, sessionID string, date *time.Time) (*models.SelectionState, error) {
	state, err := s.Store.Get(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	cache := NewSessionCacheFrom(state.Resolved)
	if state.Selected(sessionID) {
		return state, nil
	}

	candidate, err := s.lookupSession(ctx, state, cache, sessionID, date)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.Enrollments.IsEnrolled(ctx, state.UserID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	unlocked := state.RequiredCycleID == ""
	if err := TryAdd(state, cache, candidate, enrolled); err != nil {
		return nil, err
	}
	if unlocked && state.RequiredCycleID != "" && s.Warmer != nil {
		s.Warmer.WarmCycle(state.RequiredCycleID)
	}

	state.Resolved = cache.All()
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// RemoveSession drops the session from the selection. Removing an id that
// was never selected is a no-op.
func (s *DefaultSelectionService) RemoveSession(ctx context.Context, episodeID, sessionID string) (*models.SelectionState, error) {
	state, err := s.Store.Get(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	TryRemove(state, sessionID)
	if err := s.Store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetEpisode returns the current state of an episode.
func (s *DefaultSelectionService) GetEpisode(ctx context.Context, episodeID string) (*models.SelectionState, error) {
	return s.Store.Get(ctx, episodeID)
}

// Confirm completes the episode: phase two resolves every selected id
// through the warm snapshot and the bounded cross-day walk, assembles the
// line item, hands it to the cart collaborator and destroys the episode.
func (s *DefaultSelectionService) Confirm(ctx context.Context, episodeID string, promo *models.PromotionContext) (*models.LineItem, error) {
	state, err := s.Store.Get(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if !IsComplete(state) {
		required := 1
		if state.Package != nil && !state.Package.Unlimited() {
			required = state.Package.ClassCount
		}
		return nil, &IncompleteSelectionError{Required: required, Got: len(state.SelectedIDs)}
	}

	cache := NewSessionCacheFrom(state.Resolved)
	s.applySnapshot(ctx, state, cache)

	windowDays := s.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	resolved, err := ResolveAll(ctx, state, cache, s.Catalog, s.windowStart(state, cache), windowDays)
	if err != nil {
		return nil, err
	}

	item, err := Assemble(state, resolved, promo)
	if err != nil {
		return nil, err
	}
	if err := s.Cart.AddLineItem(ctx, item); err != nil {
		return nil, fmt.Errorf("hand line item to cart: %w", err)
	}
	if err := s.Store.Delete(ctx, episodeID); err != nil {
		utils.GetLogger().Warn("failed to delete confirmed episode",
			zap.String("episodeId", episodeID), zap.Error(err))
	}
	return item, nil
}

// Cancel destroys an episode without assembling anything.
func (s *DefaultSelectionService) Cancel(ctx context.Context, episodeID string) error {
	return s.Store.Delete(ctx, episodeID)
}

// lookupSession finds the candidate session, cheapest source first: episode
// cache, warm cycle snapshot, then the catalog (by date hint if given,
// otherwise by the locked cycle).
func (s *DefaultSelectionService) lookupSession(ctx context.Context, state *models.SelectionState, cache *SessionCache, sessionID string, date *time.Time) (models.Session, error) {
	if sess, ok := cache.Get(sessionID); ok {
		return sess, nil
	}
	if s.Snapshots != nil && state.RequiredCycleID != "" {
		if sessions, ok := s.Snapshots.Load(ctx, state.RequiredCycleID); ok {
			for _, sess := range sessions {
				if sess.ID == sessionID {
					return sess, nil
				}
			}
		}
	}

	var sessions []models.Session
	var err error
	switch {
	case date != nil:
		sessions, err = s.Catalog.FetchByDate(ctx, *date)
	case state.RequiredCycleID != "":
		sessions, err = s.Catalog.FetchByCycle(ctx, state.RequiredCycleID)
	default:
		return models.Session{}, fmt.Errorf("%w: %s (no date hint and no locked cycle)", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return models.Session{}, err
	}
	for _, sess := range sessions {
		if sess.ID == sessionID {
			return sess, nil
		}
	}
	return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
}

// applySnapshot fills missing selected ids from the warm cycle snapshot.
func (s *DefaultSelectionService) applySnapshot(ctx context.Context, state *models.SelectionState, cache *SessionCache) {
	if s.Snapshots == nil || state.RequiredCycleID == "" {
		return
	}
	missing := cache.Missing(state.SelectedIDs)
	if len(missing) == 0 {
		return
	}
	sessions, ok := s.Snapshots.Load(ctx, state.RequiredCycleID)
	if !ok {
		return
	}
	wanted := make(map[string]struct{}, len(missing))
	for _, id := range missing {
		wanted[id] = struct{}{}
	}
	for _, sess := range sessions {
		if _, w := wanted[sess.ID]; w {
			cache.Put(sess)
		}
	}
}

// windowStart picks the first day of the gathering walk: the earliest known
// date across resolved sessions and hand-off origin dates, falling back to
// today.
func (s *DefaultSelectionService) windowStart(state *models.SelectionState, cache *SessionCache) time.Time {
	var start time.Time
	for _, id := range state.SelectedIDs {
		if sess, ok := cache.Get(id); ok {
			d := sess.Date()
			if start.IsZero() || d.Before(start) {
				start = d
			}
		}
	}
	for _, d := range state.OriginDates {
		day := truncateToDay(d)
		if start.IsZero() || day.Before(start) {
			start = day
		}
	}
	if start.IsZero() {
		start = truncateToDay(time.Now().UTC())
	}
	return start
}
