package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lingua_webapp/internal/domain"
)

// fakeTotals serves canned per-user ledger sums; users in failFor error out.
type fakeTotals struct {
	totals  map[int64]domain.ProgressTotals
	failFor map[int64]bool
}

func (f *fakeTotals) SumTotals(ctx context.Context, userID int64) (*domain.ProgressTotals, error) {
	if f.failFor[userID] {
		return nil, errors.New("connection reset")
	}
	t := f.totals[userID]
	return &t, nil
}

func TestFilterCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		filter  string
		want    time.Time
		wantErr error
	}{
		{FilterWeek, now.Add(-7 * 24 * time.Hour), nil},
		{FilterMonth, now.Add(-30 * 24 * time.Hour), nil},
		{FilterAllTime, time.Unix(0, 0), nil},
		{"", time.Unix(0, 0), nil},
		{"year", time.Time{}, ErrInvalidFilter},
		{"Week", time.Time{}, ErrInvalidFilter}, // case sensitive
	}

	for _, tt := range tests {
		got, err := filterCutoff(tt.filter, now)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("filterCutoff(%q) error = %v, want %v", tt.filter, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("filterCutoff(%q) = %v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestProjectSumsWalletAndLedgers(t *testing.T) {
	s := &LeaderboardService{
		progress: &fakeTotals{totals: map[int64]domain.ProgressTotals{
			1: {TotalXp: 50, TotalGems: 5},
		}},
		concurrency: 2,
	}

	accounts := []*domain.UserAccount{
		{ID: 1, Username: "anna", Xp: 100, Gems: 20},
		{ID: 2, Username: "bela", Xp: 200},
		{ID: 3, Username: "cato"},
	}

	rows := s.project(context.Background(), accounts)
	ranked, total := rankEntries(rows, 2)

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	// Wallet and ledger sums combine: user 1 scores 100+50.
	if ranked[0].UserID != 2 || ranked[0].TotalXp != 200 || ranked[0].Rank != 1 {
		t.Errorf("first = %+v, want user 2 with 200 xp rank 1", ranked[0])
	}
	if ranked[1].UserID != 1 || ranked[1].TotalXp != 150 || ranked[1].Rank != 2 {
		t.Errorf("second = %+v, want user 1 with 150 xp rank 2", ranked[1])
	}
	if ranked[1].TotalGems != 25 {
		t.Errorf("TotalGems = %d, want 25", ranked[1].TotalGems)
	}
}

func TestProjectDegradesToStub(t *testing.T) {
	s := &LeaderboardService{
		progress: &fakeTotals{
			totals:  map[int64]domain.ProgressTotals{2: {TotalXp: 10}},
			failFor: map[int64]bool{1: true},
		},
		concurrency: 2,
	}

	accounts := []*domain.UserAccount{
		{ID: 1, Username: "anna", Country: "GE", Xp: 500},
		{ID: 2, Username: "bela", Xp: 100},
	}

	rows := s.project(context.Background(), accounts)

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2: a failed projection must not drop the user", len(rows))
	}
	// The failed user stays on the board as a zero-stats stub with identity
	// fields intact.
	if rows[0].UserID != 1 || rows[0].Username != "anna" || rows[0].Country != "GE" {
		t.Errorf("stub identity = %+v", rows[0])
	}
	if rows[0].TotalXp != 0 || rows[0].TotalGems != 0 || rows[0].TotalGel != 0 {
		t.Errorf("stub carries stats: %+v", rows[0])
	}
	if rows[1].TotalXp != 110 {
		t.Errorf("healthy user TotalXp = %d, want 110", rows[1].TotalXp)
	}
}

func TestRankEntries(t *testing.T) {
	rows := []LeaderboardEntry{
		{UserID: 1, TotalXp: 150},
		{UserID: 2, TotalXp: 200},
		{UserID: 3, TotalXp: 0},
	}

	ranked, total := rankEntries(rows, 2)

	if total != 3 {
		t.Errorf("total = %d, want 3 (match count before truncation)", total)
	}
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].UserID != 2 || ranked[0].Rank != 1 {
		t.Errorf("first = user %d rank %d, want user 2 rank 1", ranked[0].UserID, ranked[0].Rank)
	}
	if ranked[1].UserID != 1 || ranked[1].Rank != 2 {
		t.Errorf("second = user %d rank %d, want user 1 rank 2", ranked[1].UserID, ranked[1].Rank)
	}
}

func TestRankEntriesStableTies(t *testing.T) {
	rows := []LeaderboardEntry{
		{UserID: 1, TotalXp: 100},
		{UserID: 2, TotalXp: 100},
		{UserID: 3, TotalXp: 100},
	}

	ranked, _ := rankEntries(rows, 0)

	for i, want := range []int64{1, 2, 3} {
		if ranked[i].UserID != want {
			t.Fatalf("tie order changed: position %d = user %d, want %d", i, ranked[i].UserID, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRankEntriesNoLimit(t *testing.T) {
	rows := []LeaderboardEntry{{UserID: 1, TotalXp: 5}, {UserID: 2, TotalXp: 10}}

	ranked, total := rankEntries(rows, 0)
	if len(ranked) != 2 || total != 2 {
		t.Errorf("len = %d total = %d, want 2/2", len(ranked), total)
	}
}

func TestSearchEntries(t *testing.T) {
	rows := []LeaderboardEntry{
		{UserID: 1, Username: "anna_k", Name: "Anna", Country: "GE"},
		{UserID: 2, Username: "bob", Name: "Bob Jones", Country: "US"},
		{UserID: 3, Username: "carol", Name: "Carol", Country: "germany"},
	}

	tests := []struct {
		search string
		want   []int64
	}{
		{"", []int64{1, 2, 3}},
		{"anna", []int64{1}},
		{"ANNA", []int64{1}},
		{"jones", []int64{2}},
		{"ge", []int64{1, 3}},
		{"  bob  ", []int64{2}},
		{"nobody", nil},
	}

	for _, tt := range tests {
		got := searchEntries(rows, tt.search)
		ids := make([]int64, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.UserID)
		}
		if len(ids) != len(tt.want) {
			t.Errorf("searchEntries(%q) = %v, want %v", tt.search, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("searchEntries(%q) = %v, want %v", tt.search, ids, tt.want)
				break
			}
		}
	}
}
