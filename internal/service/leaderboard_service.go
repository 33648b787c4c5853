package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/logger"
	"lingua_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Time filters.
const (
	FilterWeek    = "week"
	FilterMonth   = "month"
	FilterAllTime = "allTime"
)

// LeaderboardEntry is one ranked row. Totals combine the base wallet with the
// sum over every per-language ledger of the user.
type LeaderboardEntry struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	TotalXp   int64  `json:"totalXp"`
	TotalGems int64  `json:"totalGems"`
	TotalGel  int64  `json:"totalGel"`
	Rank      int    `json:"rank"`
}

// LeaderboardResult carries the ranked page plus the match count before
// truncation, so clients can distinguish "how many match" from "how many
// returned".
type LeaderboardResult struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
	Filter  string             `json:"filter"`
}

// totalsProvider is the slice of the progress repository the projection
// needs: per-user sums across every language ledger.
type totalsProvider interface {
	SumTotals(ctx context.Context, userID int64) (*domain.ProgressTotals, error)
}

// LeaderboardService builds the ranking projection. Read-only and stateless
// per request.
type LeaderboardService struct {
	users    *repository.UserRepository
	progress totalsProvider

	concurrency int
	now         func() time.Time
}

func NewLeaderboardService(db *pgxpool.Pool, concurrency int) *LeaderboardService {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &LeaderboardService{
		users:       repository.NewUserRepository(db),
		progress:    repository.NewProgressRepository(db),
		concurrency: concurrency,
		now:         time.Now,
	}
}

func filterCutoff(filter string, now time.Time) (time.Time, error) {
	switch filter {
	case FilterWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case FilterMonth:
		return now.Add(-30 * 24 * time.Hour), nil
	case FilterAllTime, "":
		return time.Unix(0, 0), nil
	default:
		return time.Time{}, ErrInvalidFilter
	}
}

// Build applies the fixed pipeline: time filter, substring search, sort by
// totalXp descending, truncate to limit, then assign dense ranks 1..limit.
// A user whose projection fails is kept as a zero-stats stub rather than
// dropped, trading accuracy for availability.
func (s *LeaderboardService) Build(ctx context.Context, limit int, filter, search string) (*LeaderboardResult, error) {
	cutoff, err := filterCutoff(filter, s.now())
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = FilterAllTime
	}

	accounts, err := s.users.ListCreatedSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	rows := s.project(ctx, accounts)
	rows = searchEntries(rows, search)

	res := &LeaderboardResult{Filter: filter}
	res.Entries, res.Total = rankEntries(rows, limit)
	return res, nil
}

// project fans out one totals query per user with bounded parallelism.
func (s *LeaderboardService) project(ctx context.Context, accounts []*domain.UserAccount) []LeaderboardEntry {
	rows := make([]LeaderboardEntry, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, u := range accounts {
		g.Go(func() error {
			rows[i] = projectUser(gctx, s.progress, u)
			return nil
		})
	}
	_ = g.Wait()

	return rows
}

func projectUser(ctx context.Context, progress totalsProvider, u *domain.UserAccount) LeaderboardEntry {
	entry := LeaderboardEntry{
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
		Country:  u.Country,
	}

	totals, err := progress.SumTotals(ctx, u.ID)
	if err != nil {
		// Degrade to a zero-stats stub instead of failing the whole board.
		logger.Warn("leaderboard projection failed", "user_id", u.ID, "error", err)
		return entry
	}

	entry.TotalXp = u.Xp + totals.TotalXp
	entry.TotalGems = u.Gems + totals.TotalGems
	entry.TotalGel = u.Gel + totals.TotalGel
	return entry
}

// searchEntries keeps rows whose username, name or country contains the
// query, case-insensitively. An empty query keeps everything.
func searchEntries(rows []LeaderboardEntry, search string) []LeaderboardEntry {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return rows
	}

	var out []LeaderboardEntry
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Username), q) ||
			strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Country), q) {
			out = append(out, r)
		}
	}
	return out
}

// rankEntries sorts by totalXp descending (stable on ties), truncates to
// limit and assigns rank = index + 1 after truncation. total is the match
// count before truncation; users beyond the limit are absent, not ranked.
func rankEntries(rows []LeaderboardEntry, limit int) ([]LeaderboardEntry, int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalXp > rows[j].TotalXp
	})

	total := len(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, total
}
