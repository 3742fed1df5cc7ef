package selection

import (
	"time"

	"coursecart/models"
)

// MaxSpanDays is the widest allowed gap, in whole calendar days, between the
// earliest and latest selected sessions. A span of exactly MaxSpanDays is
// accepted; one day more is rejected.
const MaxSpanDays = 30

// TryAdd decides whether candidate may join the in-progress selection.
// It is a pure state transition: on acceptance it appends the id, caches the
// session and locks the cycle/offer keys; on rejection it returns a typed
// error and leaves both state and cache untouched. Adding an id that is
// already selected is a no-op success.
//
// enrolled is the externally supplied fact that the user already holds a
// place in this session.
func TryAdd(state *models.SelectionState, cache *SessionCache, candidate models.Session, enrolled bool) error {
	if state.Selected(candidate.ID) {
		return nil
	}
	if state.Package == nil {
		return &NoActivePackageError{}
	}
	if enrolled || candidate.Cancelled() {
		return &SessionUnavailableError{
			SessionID: candidate.ID,
			Cancelled: candidate.Cancelled(),
			Enrolled:  enrolled,
		}
	}
	if state.RequiredCycleID != "" &&
		(candidate.CycleID != state.RequiredCycleID || candidate.OfferID != state.RequiredOfferID) {
		return &CycleOfferMismatchError{
			WantCycleID: state.RequiredCycleID,
			WantOfferID: state.RequiredOfferID,
			GotCycleID:  candidate.CycleID,
			GotOfferID:  candidate.OfferID,
		}
	}
	if minDate, maxDate, span, ok := spanWith(state, cache, candidate.Date()); ok && span > MaxSpanDays {
		return &DateRangeExceededError{
			MinDate:       minDate,
			MaxDate:       maxDate,
			AttemptedDate: candidate.Date(),
			SpanDays:      span,
		}
	}
	if candidate.SeatsAvailable == 0 {
		return &NoSeatsAvailableError{SessionID: candidate.ID}
	}
	if !state.Package.Unlimited() && len(state.SelectedIDs) >= state.Package.ClassCount {
		return &PackageLimitReachedError{ClassCount: state.Package.ClassCount}
	}

	state.SelectedIDs = append(state.SelectedIDs, candidate.ID)
	cache.Put(candidate)
	if state.RequiredCycleID == "" {
		state.RequiredCycleID = candidate.CycleID
		state.RequiredOfferID = candidate.OfferID
	}
	if state.Origin == nil {
		state.Origin = make(map[string]string)
	}
	state.Origin[candidate.ID] = models.OriginManual
	return nil
}

// TryRemove drops id from the selection. Removal can never violate an
// invariant, so it always succeeds; removing an id that was never selected
// is a no-op. The session record stays in the cache for reuse but no longer
// counts toward any constraint.
func TryRemove(state *models.SelectionState, id string) {
	for i, sel := range state.SelectedIDs {
		if sel == id {
			state.SelectedIDs = append(state.SelectedIDs[:i], state.SelectedIDs[i+1:]...)
			delete(state.Origin, id)
			return
		}
	}
}

// IsComplete reports whether the selection satisfies the package: an
// unlimited package needs at least one session, a limited one needs its
// class count filled exactly.
func IsComplete(state *models.SelectionState) bool {
	if state.Package == nil {
		return false
	}
	if state.Package.Unlimited() {
		return len(state.SelectedIDs) > 0
	}
	return len(state.SelectedIDs) == state.Package.ClassCount
}

// spanWith computes the whole-day span over the resolved selected sessions
// plus one extra date. ok is false when no date is known at all.
func spanWith(state *models.SelectionState, cache *SessionCache, extra time.Time) (minDate, maxDate time.Time, span int, ok bool) {
	minDate, maxDate = extra, extra
	ok = !extra.IsZero()
	for _, id := range state.SelectedIDs {
		s, resolved := cache.Get(id)
		if !resolved {
			continue
		}
		d := s.Date()
		if !ok {
			minDate, maxDate, ok = d, d, true
			continue
		}
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	if !ok {
		return minDate, maxDate, 0, false
	}
	span = int(maxDate.Sub(minDate).Hours() / 24)
	return minDate, maxDate, span, true
}
