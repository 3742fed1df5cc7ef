package selection

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"coursecart/models"
)

// Assemble turns a completed selection into a checkout line item: resolved
// sessions are deduplicated by id, ordered by start time, partitioned into
// automatically pre-selected vs manually added per the state's origin map,
// and priced against the attached promotion context (if any).
//
// Completeness is a hard gate: a selection that does not satisfy the package
// fails with IncompleteSelectionError and is never silently truncated.
func Assemble(state *models.SelectionState, resolved []models.Session, promo *models.PromotionContext) (*models.LineItem, error) {
	if !IsComplete(state) {
		required := 1
		if state.Package != nil && !state.Package.Unlimited() {
			required = state.Package.ClassCount
		}
		return nil, &IncompleteSelectionError{Required: required, Got: len(state.SelectedIDs)}
	}

	// Inputs may merge two partially overlapping resolved sets; keep the
	// first record seen per id.
	seen := make(map[string]struct{}, len(resolved))
	sessions := make([]models.Session, 0, len(resolved))
	for _, s := range resolved {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})

	var automatic, manual []models.Session
	for _, s := range sessions {
		if state.Origin[s.ID] == models.OriginAutomatic {
			automatic = append(automatic, s)
		} else {
			manual = append(manual, s)
		}
	}

	finalPrice := state.Package.Price
	var discount float64
	var promotionID string
	if promo != nil && promo.PackageID == state.Package.ID {
		discount = finalPrice * (promo.DiscountPercent / 100)
		finalPrice -= discount
		promotionID = promo.PromotionID
	}

	sessionIDs := make([]string, len(sessions))
	for i, s := range sessions {
		sessionIDs[i] = s.ID
	}

	var firstDate time.Time
	if len(sessions) > 0 {
		firstDate = sessions[0].Date()
	}

	return &models.LineItem{
		ID:               uuid.New().String(),
		UserID:           state.UserID,
		PackageID:        state.Package.ID,
		SessionIDs:       sessionIDs,
		FinalPrice:       finalPrice,
		Discount:         discount,
		Currency:         state.Package.Currency,
		PromotionID:      promotionID,
		FirstSessionDate: firstDate,
		AutomaticDetails: formatDetails(automatic),
		ManualDetails:    formatDetails(manual),
		CreatedAt:        time.Now(),
	}, nil
}

// formatDetails renders one receipt line per session.
func formatDetails(sessions []models.Session) string {
	if len(sessions) == 0 {
		return ""
	}
	lines := make([]string, len(sessions))
	for i, s := range sessions {
		lines[i] = fmt.Sprintf("%s %s - %s (%s)",
			s.Start.Format("2006-01-02"), s.Start.Format("15:04"), s.CourseName, s.Instructor)
	}
	return strings.Join(lines, "\n")
}
