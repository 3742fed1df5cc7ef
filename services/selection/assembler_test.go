package selection

import (
	"errors"
	"strings"
	"testing"

	"coursecart/models"
)

func TestAssembleIncompleteGate(t *testing.T) {
	state := testState(3)
	cache := NewSessionCache()
	mustAdd(t, state, cache, testSession("s1", 0, 9))
	mustAdd(t, state, cache, testSession("s2", 1, 9))

	_, err := Assemble(state, cache.All(), nil)
	var incomplete *IncompleteSelectionError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteSelectionError, got %v", err)
	}
	if incomplete.Required != 3 || incomplete.Got != 2 {
		t.Fatalf("unexpected payload: required %d got %d", incomplete.Required, incomplete.Got)
	}

	mustAdd(t, state, cache, testSession("s3", 2, 9))
	if _, err := Assemble(state, cache.All(), nil); err != nil {
		t.Fatalf("assemble with exact count: %v", err)
	}
}

func TestAssembleSortsAndDeduplicates(t *testing.T) {
	state := testState(0)
	cache := NewSessionCache()
	late := testSession("late", 5, 9)
	early := testSession("early", 1, 9)
	mustAdd(t, state, cache, late)
	mustAdd(t, state, cache, early)

	// Two partially overlapping resolved sets merged by the caller.
	merged := append(cache.All(), late, early)
	item, err := Assemble(state, merged, nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(item.SessionIDs) != 2 {
		t.Fatalf("expected deduplicated ids, got %v", item.SessionIDs)
	}
	if item.SessionIDs[0] != "early" || item.SessionIDs[1] != "late" {
		t.Fatalf("ids not in start-time order: %v", item.SessionIDs)
	}
	if !item.FirstSessionDate.Equal(early.Date()) {
		t.Fatalf("wrong first session date: %v", item.FirstSessionDate)
	}
}

func TestAssemblePartitionsByOrigin(t *testing.T) {
	state := testState(0)
	cache := NewSessionCache()
	mustAdd(t, state, cache, testSession("manual", 0, 9))

	auto := testSession("auto", 1, 9)
	auto.CourseName = "Ashtanga Basics"
	cache.Put(auto)
	state.SelectedIDs = append(state.SelectedIDs, "auto")
	state.Origin["auto"] = models.OriginAutomatic

	item, err := Assemble(state, cache.All(), nil)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !strings.Contains(item.AutomaticDetails, "Ashtanga Basics") {
		t.Fatalf("automatic listing missing session: %q", item.AutomaticDetails)
	}
	if !strings.Contains(item.ManualDetails, "Vinyasa Flow") {
		t.Fatalf("manual listing missing session: %q", item.ManualDetails)
	}
	if strings.Contains(item.ManualDetails, "Ashtanga Basics") {
		t.Fatalf("automatic session leaked into manual listing")
	}
}

func TestAssemblePricing(t *testing.T) {
	tests := []struct {
		name         string
		promo        *models.PromotionContext
		wantPrice    float64
		wantDiscount float64
	}{
		{name: "no promotion", promo: nil, wantPrice: 100, wantDiscount: 0},
		{
			name:         "matching promotion",
			promo:        &models.PromotionContext{PromotionID: "promo-1", PackageID: "pkg-1", DiscountPercent: 25},
			wantPrice:    75,
			wantDiscount: 25,
		},
		{
			name:         "promotion for another package",
			promo:        &models.PromotionContext{PromotionID: "promo-2", PackageID: "pkg-other", DiscountPercent: 25},
			wantPrice:    100,
			wantDiscount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := testState(0)
			cache := NewSessionCache()
			mustAdd(t, state, cache, testSession("s1", 0, 9))

			item, err := Assemble(state, cache.All(), tt.promo)
			if err != nil {
				t.Fatalf("assemble: %v", err)
			}
			if item.FinalPrice != tt.wantPrice {
				t.Fatalf("final price = %v, want %v", item.FinalPrice, tt.wantPrice)
			}
			if item.Discount != tt.wantDiscount {
				t.Fatalf("discount = %v, want %v", item.Discount, tt.wantDiscount)
			}
		})
	}
}
