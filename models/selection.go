package models

import "time"

// Origin markers record how a session joined the selection. They feed the
// receipt text only; validation never looks at them.
const (
	OriginAutomatic = "automatic"
	OriginManual    = "manual"
)

// SelectionState holds context for one in-progress selection episode,
// from package choice to checkout assembly or cancellation. It is stored
// between engine calls as JSON in the episode store.
type SelectionState struct {
	EpisodeID       string            `json:"episodeId"`
	UserID          string            `json:"userId"`
	Package         *Package          `json:"package,omitempty"`
	RequiredCycleID string            `json:"requiredCycleId,omitempty"`
	RequiredOfferID string            `json:"requiredOfferId,omitempty"`
	SelectedIDs     []string          `json:"selectedIds"`
	Origin          map[string]string `json:"origin,omitempty"`
	// Resolved carries the episode's session cache across store round-trips.
	// It may lag behind SelectedIDs: ids without a resolved session yet are
	// completed lazily at confirm time.
	Resolved []Session `json:"resolved,omitempty"`
	// OriginDates are the calendar days a hand-off payload was gathered
	// from; they seed the forward walk that re-resolves imported ids.
	OriginDates []time.Time `json:"originDates,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Selected reports whether the session id is part of the selection.
func (s *SelectionState) Selected(id string) bool {
	for _, sel := range s.SelectedIDs {
		if sel == id {
			return true
		}
	}
	return false
}

// HandoffPayload pre-seeds a SelectionState so a booking started on one
// screen can be completed on another. Session ids may arrive before their
// session objects have ever been fetched on this side.
type HandoffPayload struct {
	Version     int         `json:"version"`
	PackageID   string      `json:"packageId"`
	SessionIDs  []string    `json:"sessionIds"`
	CycleID     string      `json:"cycleId"`
	OfferID     string      `json:"offerId"`
	OriginDates []time.Time `json:"originDates,omitempty"`
}

// HandoffVersion is the payload version this server understands.
const HandoffVersion = 1
