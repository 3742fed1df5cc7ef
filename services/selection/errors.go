package selection

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEpisodeNotFound is returned when an episode id does not resolve to a
// stored SelectionState (missing, expired, or already checked out).
var ErrEpisodeNotFound = errors.New("selection episode not found or expired")

// NoActivePackageError rejects an add attempted before a package was chosen.
// The client should never let this happen; the engine guards it anyway.
type NoActivePackageError struct{}

func (e *NoActivePackageError) Error() string {
	return "no active package for this selection episode"
}

// SessionUnavailableError rejects a cancelled session or one the user is
// already enrolled in.
type SessionUnavailableError struct {
	SessionID string `json:"sessionId"`
	Cancelled bool   `json:"cancelled"`
	Enrolled  bool   `json:"enrolled"`
}

func (e *SessionUnavailableError) Error() string {
	switch {
	case e.Cancelled:
		return fmt.Sprintf("session %s is cancelled", e.SessionID)
	case e.Enrolled:
		return fmt.Sprintf("already enrolled in session %s", e.SessionID)
	}
	return fmt.Sprintf("session %s is unavailable", e.SessionID)
}

// CycleOfferMismatchError rejects a candidate from a different billing cycle
// or course offering than the one locked by the first accepted session.
type CycleOfferMismatchError struct {
	WantCycleID string `json:"wantCycleId"`
	WantOfferID string `json:"wantOfferId"`
	GotCycleID  string `json:"gotCycleId"`
	GotOfferID  string `json:"gotOfferId"`
}

func (e *CycleOfferMismatchError) Error() string {
	return fmt.Sprintf("session belongs to cycle %s / offer %s, selection is locked to cycle %s / offer %s",
		e.GotCycleID, e.GotOfferID, e.WantCycleID, e.WantOfferID)
}

// DateRangeExceededError rejects a candidate that would stretch the selection
// past the maximum day span. It carries the boundary dates so the client can
// word the message precisely.
type DateRangeExceededError struct {
	MinDate       time.Time `json:"minDate"`
	MaxDate       time.Time `json:"maxDate"`
	AttemptedDate time.Time `json:"attemptedDate"`
	SpanDays      int       `json:"spanDays"`
}

func (e *DateRangeExceededError) Error() string {
	return fmt.Sprintf("selection would span %d days (%s to %s), limit is %d",
		e.SpanDays, e.MinDate.Format("2006-01-02"), e.MaxDate.Format("2006-01-02"), MaxSpanDays)
}

// NoSeatsAvailableError rejects a candidate whose capacity is exhausted.
type NoSeatsAvailableError struct {
	SessionID string `json:"sessionId"`
}

func (e *NoSeatsAvailableError) Error() string {
	return fmt.Sprintf("session %s has no seats available", e.SessionID)
}

// PackageLimitReachedError rejects an add beyond the package's class count.
type PackageLimitReachedError struct {
	ClassCount int `json:"classCount"`
}

func (e *PackageLimitReachedError) Error() string {
	return fmt.Sprintf("package limit of %d classes reached", e.ClassCount)
}

// IncompleteSelectionError gates assembly: a limited package must be filled
// exactly, an unlimited one needs at least one session.
type IncompleteSelectionError struct {
	Required int `json:"required"`
	Got      int `json:"got"`
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("selection incomplete: have %d of %d required sessions", e.Got, e.Required)
}

// PartialFailureError reports ids that could not be resolved within the
// gathering window. Checkout assembly must not proceed while it is non-empty.
type PartialFailureError struct {
	StillMissing []string `json:"stillMissing"`
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("could not resolve sessions: %s", strings.Join(e.StillMissing, ", "))
}
