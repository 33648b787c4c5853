package service

import (
	"context"
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 9, 30, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name    string
		last    *time.Time
		now     time.Time
		current int64
		want    int64
	}{
		{"first ever login", nil, day(10), 0, 1},
		{"same day keeps streak", ptr(day(10)), day(10).Add(8 * time.Hour), 4, 4},
		{"same day never below one", ptr(day(10)), day(10), 0, 1},
		{"next day increments", ptr(day(10)), day(11), 4, 5},
		{"two day gap resets", ptr(day(10)), day(12), 4, 1},
		{"long gap resets", ptr(day(1)), day(20), 30, 1},
		{"next day across clock times", ptr(day(10).Add(14 * time.Hour)), day(11), 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStreak(tt.last, tt.now, tt.current); got != tt.want {
				t.Errorf("nextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDispatchUnknownType(t *testing.T) {
	// Unknown event types are acknowledged, not errored: the relay would
	// retry a non-2xx forever.
	s := &WebhookService{handlers: map[string]func(ctx context.Context, ev *WebhookEvent) error{}}

	if err := s.Dispatch(context.Background(), &WebhookEvent{Type: "user.deleted"}); err != nil {
		t.Fatalf("Dispatch(unknown) = %v, want nil", err)
	}
}

func TestDispatchRoutesByType(t *testing.T) {
	var called string
	s := &WebhookService{handlers: map[string]func(ctx context.Context, ev *WebhookEvent) error{
		EventUserCreated: func(ctx context.Context, ev *WebhookEvent) error {
			called = ev.Type
			return nil
		},
	}}

	if err := s.Dispatch(context.Background(), &WebhookEvent{Type: EventUserCreated}); err != nil {
		t.Fatal(err)
	}
	if called != EventUserCreated {
		t.Errorf("handler not invoked for %s", EventUserCreated)
	}
}
