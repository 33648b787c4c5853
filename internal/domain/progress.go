package domain

import "time"

// LanguageProgress is the per-(user, language) ledger: a cursor into the
// catalog, append-once completion sets and accumulated currency totals.
// Created once on enrollment, mutated only by exercise-completion endpoints,
// deleted only by cascading user deletion.
type LanguageProgress struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	LanguageID       int64     `db:"language_id" json:"language_id"`
	CurrentChapterID int64     `db:"current_chapter_id" json:"current_chapter_id"`
	CurrentUnitID    int64     `db:"current_unit_id" json:"current_unit_id"`
	CurrentLessonID  int64     `db:"current_lesson_id" json:"current_lesson_id"`
	TotalXp          int64     `db:"total_xp" json:"total_xp"`
	TotalGems        int64     `db:"total_gems" json:"total_gems"`
	TotalGel         int64     `db:"total_gel" json:"total_gel"`
	TotalHeart       int64     `db:"total_heart" json:"total_heart"`
	TotalStreak      int64     `db:"total_streak" json:"total_streak"`
	IsCompleted      bool      `db:"is_completed" json:"is_completed"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// CompletionEntry records one completed lesson/unit/chapter. A given ID
// appears at most once per ledger.
type CompletionEntry struct {
	ID          int64     `json:"id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CompletedSets holds the ledger's completion state as ID sets, the form the
// cascade logic works with.
type CompletedSets struct {
	Exercises map[int64]bool
	Lessons   map[int64]bool
	Units     map[int64]bool
	Chapters  map[int64]bool
}

func NewCompletedSets() CompletedSets {
	return CompletedSets{
		Exercises: make(map[int64]bool),
		Lessons:   make(map[int64]bool),
		Units:     make(map[int64]bool),
		Chapters:  make(map[int64]bool),
	}
}

// ProgressTotals is the per-language currency sum used by the leaderboard.
type ProgressTotals struct {
	TotalXp   int64 `db:"total_xp" json:"total_xp"`
	TotalGems int64 `db:"total_gems" json:"total_gems"`
	TotalGel  int64 `db:"total_gel" json:"total_gel"`
}

// UnitStatus is the read-only unit completion projection. Progress and
// CompletedAt are mutually exclusive: progress (0-100) is present only while
// the unit is incomplete, completedAt only once it is done.
type UnitStatus struct {
	IsCompleted      bool       `json:"isCompleted"`
	CompletedLessons int        `json:"completedLessons"`
	TotalLessons     int        `json:"totalLessons"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	Progress         *int       `json:"progress,omitempty"`
}
