package models

import "time"

// Session lifecycle statuses.
const (
	SessionStatusActive    = "active"
	SessionStatusCancelled = "cancelled"
)

// Session represents a single bookable class occurrence. Seat counts are a
// point-in-time snapshot taken when the session was fetched; the engine never
// mutates them.
type Session struct {
	ID             string    `bson:"id" json:"id"`
	CourseName     string    `bson:"courseName" json:"courseName"`
	Instructor     string    `bson:"instructor" json:"instructor"`
	Start          time.Time `bson:"start" json:"start"`
	End            time.Time `bson:"end" json:"end"`
	SeatsTotal     int       `bson:"seatsTotal" json:"seatsTotal"`
	SeatsAvailable int       `bson:"seatsAvailable" json:"seatsAvailable"`
	CycleID        string    `bson:"cycleId" json:"cycleId"`
	OfferID        string    `bson:"offerId" json:"offerId"`
	Status         string    `bson:"status" json:"status"`
}

// Cancelled reports whether the session has been called off.
func (s Session) Cancelled() bool {
	return s.Status == SessionStatusCancelled
}

// Date returns the calendar day the session starts on, truncated to midnight
// UTC. Date-range arithmetic works on civil dates only, so two sessions on
// the same day always compare equal regardless of their start hour.
func (s Session) Date() time.Time {
	y, m, d := s.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
