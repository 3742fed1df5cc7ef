package enrollmentRepo

import "context"

// EnrollmentRepository answers whether a user already holds a place in a
// session. The selection engine only ever consumes it as a boolean fact.
type EnrollmentRepository interface {
	IsEnrolled(ctx context.Context, userID, sessionID string) (bool, error)
}
