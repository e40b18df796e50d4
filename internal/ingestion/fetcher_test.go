package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/ingestion/stub"
)

func makeEvents(n int) []*domain.RawBehavioralEvent {
	events := make([]*domain.RawBehavioralEvent, n)
	for i := range events {
		events[i] = &domain.RawBehavioralEvent{
			ID:         fmt.Sprintf("ev-%03d", i),
			ActorID:    "user-1",
			TargetID:   "product-1",
			ActionType: domain.ActionViewProduct,
			CreatedAt:  int64(1000 + i),
		}
	}
	return events
}

func TestFetchAll_DrainsInBatches(t *testing.T) {
	source := stub.NewBehavioralSource(makeEvents(250))
	fetcher := NewFetcher(FetcherOptions{Source: source, BatchSize: 100})

	all, err := fetcher.FetchAll(context.Background(), TrackedActionTypes, 0)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(all) != 250 {
		t.Fatalf("Expected 250 events, got %d", len(all))
	}
	// 100 + 100 + 50; the short page ends the drain.
	if len(source.Calls) != 3 {
		t.Errorf("Expected 3 page fetches, got %d (%v)", len(source.Calls), source.Calls)
	}
	if all[0].ID != "ev-000" || all[249].ID != "ev-249" {
		t.Errorf("Expected ordered drain, got first %s last %s", all[0].ID, all[249].ID)
	}
}

func TestFetchAll_ExactMultipleStopsOnEmptyPage(t *testing.T) {
	source := stub.NewBehavioralSource(makeEvents(200))
	fetcher := NewFetcher(FetcherOptions{Source: source, BatchSize: 100})

	all, err := fetcher.FetchAll(context.Background(), TrackedActionTypes, 0)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(all) != 200 {
		t.Fatalf("Expected 200 events, got %d", len(all))
	}
	// Two full pages plus the empty page that signals exhaustion.
	if len(source.Calls) != 3 {
		t.Errorf("Expected 3 page fetches, got %d", len(source.Calls))
	}
}

func TestFetchAll_LimitShrinksLastBatch(t *testing.T) {
	source := stub.NewBehavioralSource(makeEvents(500))
	fetcher := NewFetcher(FetcherOptions{Source: source, BatchSize: 100})

	all, err := fetcher.FetchAll(context.Background(), TrackedActionTypes, 150)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(all) != 150 {
		t.Fatalf("Expected 150 events under limit, got %d", len(all))
	}
	wantCalls := []int{100, 50}
	if len(source.Calls) != len(wantCalls) {
		t.Fatalf("Expected calls %v, got %v", wantCalls, source.Calls)
	}
	for i, want := range wantCalls {
		if source.Calls[i] != want {
			t.Errorf("Call %d: expected limit %d, got %d", i, want, source.Calls[i])
		}
	}
}

func TestFetchAll_ErrorReturnsAccumulated(t *testing.T) {
	wantErr := errors.New("source down")
	source := stub.NewBehavioralSource(makeEvents(250))
	source.FailAfter = 200
	source.Err = wantErr

	fetcher := NewFetcher(FetcherOptions{Source: source, BatchSize: 100})

	all, err := fetcher.FetchAll(context.Background(), TrackedActionTypes, 0)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected source error, got %v", err)
	}
	if len(all) != 200 {
		t.Errorf("Expected 200 accumulated events before failure, got %d", len(all))
	}
}

func TestFetchAll_DefaultBatchSize(t *testing.T) {
	source := stub.NewBehavioralSource(makeEvents(10))
	fetcher := NewFetcher(FetcherOptions{Source: source})

	if _, err := fetcher.FetchAll(context.Background(), TrackedActionTypes, 0); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if source.Calls[0] != DefaultBatchSize {
		t.Errorf("Expected default batch size %d, got %d", DefaultBatchSize, source.Calls[0])
	}
}
