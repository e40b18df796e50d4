// Package stub provides deterministic in-memory sources for tests and
// fixture-driven pipeline runs.
package stub

import (
	"context"

	"recsys-export-lab/internal/domain"
)

// BehavioralSource serves a fixed event slice through the paginated source
// interface. FailAfter, when non-negative, makes the page starting at that
// offset fail with Err.
type BehavioralSource struct {
	Events    []*domain.RawBehavioralEvent
	FailAfter int
	Err       error

	// Calls records the limit of every FetchPage call, in order.
	Calls []int
}

// NewBehavioralSource creates a stub source over a fixed event slice.
func NewBehavioralSource(events []*domain.RawBehavioralEvent) *BehavioralSource {
	return &BehavioralSource{Events: events, FailAfter: -1}
}

// FetchPage returns the next window of events after the cursor.
func (s *BehavioralSource) FetchPage(_ context.Context, actionTypes []string, afterCursor string, limit int) ([]*domain.RawBehavioralEvent, error) {
	s.Calls = append(s.Calls, limit)

	wanted := make(map[string]struct{}, len(actionTypes))
	for _, a := range actionTypes {
		wanted[a] = struct{}{}
	}

	start := 0
	if afterCursor != "" {
		for i, e := range s.Events {
			if e.ID == afterCursor {
				start = i + 1
				break
			}
		}
	}

	if s.FailAfter >= 0 && start >= s.FailAfter {
		return nil, s.Err
	}

	var page []*domain.RawBehavioralEvent
	for _, e := range s.Events[start:] {
		if len(wanted) > 0 {
			if _, ok := wanted[e.ActionType]; !ok {
				continue
			}
		}
		page = append(page, e)
		if len(page) >= limit {
			break
		}
	}
	return page, nil
}
