package selection

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	catalogRepo "coursecart/database/repository/catalog"
	"coursecart/models"
	"coursecart/utils"
)

// ResolveAll completes the episode's cache so that every selected id has a
// session object. Ids imported from another screen may never have been
// fetched here, so the gatherer walks forward from windowStart one day at a
// time, at most windowDays fetches, stopping early once nothing is missing.
//
// A day whose fetch fails with ErrCatalogUnavailable counts as an empty day;
// if its sessions were needed the walk ends in a PartialFailureError rather
// than a silent success. The bounded window trades completeness for a hard
// cap on fetch count.
//
// On success it returns the resolved session for every selected id, in
// selection order.
func ResolveAll(ctx context.Context, state *models.SelectionState, cache *SessionCache, catalog catalogRepo.SessionCatalog, windowStart time.Time, windowDays int) ([]models.Session, error) {
	missing := cache.Missing(state.SelectedIDs)
	if len(missing) == 0 {
		return resolvedSelected(state, cache), nil
	}

	logger := utils.GetLogger()
	missingSet := make(map[string]struct{}, len(missing))
	for _, id := range missing {
		missingSet[id] = struct{}{}
	}

	day := truncateToDay(windowStart)
	for i := 0; i < windowDays && len(missingSet) > 0; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sessions, err := catalog.FetchByDate(ctx, day)
		if err != nil {
			if !errors.Is(err, catalogRepo.ErrCatalogUnavailable) {
				return nil, err
			}
			logger.Warn("gatherer: catalog unavailable for day, skipping",
				zap.String("date", day.Format("2006-01-02")), zap.Error(err))
		}
		for _, s := range sessions {
			if _, wanted := missingSet[s.ID]; wanted {
				cache.Put(s)
				delete(missingSet, s.ID)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	if len(missingSet) > 0 {
		stillMissing := make([]string, 0, len(missingSet))
		for id := range missingSet {
			stillMissing = append(stillMissing, id)
		}
		sort.Strings(stillMissing)
		return nil, &PartialFailureError{StillMissing: stillMissing}
	}
	return resolvedSelected(state, cache), nil
}

// resolvedSelected returns the cached session for each selected id, in
// selection order. Unresolved ids are skipped.
func resolvedSelected(state *models.SelectionState, cache *SessionCache) []models.Session {
	out := make([]models.Session, 0, len(state.SelectedIDs))
	for _, id := range state.SelectedIDs {
		if s, ok := cache.Get(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
