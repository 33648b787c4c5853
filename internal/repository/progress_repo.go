package repository

import (
	"context"
	"time"

	"lingua_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressRepository struct {
	db *pgxpool.Pool
}

func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `id, user_id, language_id, current_chapter_id, current_unit_id, current_lesson_id,
	total_xp, total_gems, total_gel, total_heart, total_streak, is_completed, created_at, updated_at`

func scanProgress(row pgx.Row) (*domain.LanguageProgress, error) {
	var p domain.LanguageProgress
	if err := row.Scan(
		&p.ID, &p.UserID, &p.LanguageID,
		&p.CurrentChapterID, &p.CurrentUnitID, &p.CurrentLessonID,
		&p.TotalXp, &p.TotalGems, &p.TotalGel, &p.TotalHeart, &p.TotalStreak,
		&p.IsCompleted, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) GetByUserAndLanguage(ctx context.Context, userID, languageID int64) (*domain.LanguageProgress, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+progressColumns+` FROM language_progress WHERE user_id = $1 AND language_id = $2`,
		userID, languageID,
	)
	return scanProgress(row)
}

func (r *ProgressRepository) GetByID(ctx context.Context, id int64) (*domain.LanguageProgress, error) {
	row := r.db.QueryRow(ctx, `SELECT `+progressColumns+` FROM language_progress WHERE id = $1`, id)
	return scanProgress(row)
}

// Create inserts the initial ledger row with the cursor at the first lesson.
// On the (user, language) conflict nothing changes and the existing row is
// returned, so repeated enrollment is idempotent.
func (r *ProgressRepository) Create(ctx context.Context, userID, languageID, chapterID, unitID, lessonID int64) (*domain.LanguageProgress, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO language_progress (user_id, language_id, current_chapter_id, current_unit_id, current_lesson_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, language_id) DO UPDATE SET updated_at = language_progress.updated_at
		 RETURNING `+progressColumns,
		userID, languageID, chapterID, unitID, lessonID,
	)
	return scanProgress(row)
}

// LoadCompletedSets reads the ledger's completion state as ID sets.
func (r *ProgressRepository) LoadCompletedSets(ctx context.Context, progressID int64) (domain.CompletedSets, error) {
	sets := domain.NewCompletedSets()

	load := func(query string, dst map[int64]bool) error {
		rows, err := r.db.Query(ctx, query, progressID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			dst[id] = true
		}
		return rows.Err()
	}

	if err := load(`SELECT exercise_id FROM progress_exercises WHERE progress_id = $1`, sets.Exercises); err != nil {
		return sets, err
	}
	if err := load(`SELECT lesson_id FROM progress_lessons WHERE progress_id = $1`, sets.Lessons); err != nil {
		return sets, err
	}
	if err := load(`SELECT unit_id FROM progress_units WHERE progress_id = $1`, sets.Units); err != nil {
		return sets, err
	}
	if err := load(`SELECT chapter_id FROM progress_chapters WHERE progress_id = $1`, sets.Chapters); err != nil {
		return sets, err
	}
	return sets, nil
}

// Append-once writers. ON CONFLICT DO NOTHING keeps re-submission a no-op.

func (r *ProgressRepository) InsertExercisesTx(ctx context.Context, tx pgx.Tx, progressID, lessonID int64, exerciseIDs []int64, at time.Time) error {
	for _, exID := range exerciseIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO progress_exercises (progress_id, lesson_id, exercise_id, completed_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (progress_id, exercise_id) DO NOTHING`,
			progressID, lessonID, exID, at,
		); err != nil {
			return err
		}
	}
	return nil
}

// InsertLessonTx reports whether the row was actually inserted. A concurrent
// transaction may have appended the same lesson first; the caller must not
// credit rewards for a row it lost the race on.
func (r *ProgressRepository) InsertLessonTx(ctx context.Context, tx pgx.Tx, progressID, lessonID int64, at time.Time) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO progress_lessons (progress_id, lesson_id, completed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (progress_id, lesson_id) DO NOTHING`,
		progressID, lessonID, at,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProgressRepository) InsertUnitTx(ctx context.Context, tx pgx.Tx, progressID, unitID int64, at time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO progress_units (progress_id, unit_id, completed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (progress_id, unit_id) DO NOTHING`,
		progressID, unitID, at,
	)
	return err
}

func (r *ProgressRepository) InsertChapterTx(ctx context.Context, tx pgx.Tx, progressID, chapterID int64, at time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO progress_chapters (progress_id, chapter_id, completed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (progress_id, chapter_id) DO NOTHING`,
		progressID, chapterID, at,
	)
	return err
}

// UpdateStateTx persists the post-cascade cursor, XP total and completion flag.
func (r *ProgressRepository) UpdateStateTx(ctx context.Context, tx pgx.Tx, progressID, chapterID, unitID, lessonID, xpDelta int64, isCompleted bool) error {
	_, err := tx.Exec(ctx,
		`UPDATE language_progress
		 SET current_chapter_id = $1,
		     current_unit_id = $2,
		     current_lesson_id = $3,
		     total_xp = total_xp + $4,
		     is_completed = $5,
		     updated_at = now()
		 WHERE id = $6`,
		chapterID, unitID, lessonID, xpDelta, isCompleted, progressID,
	)
	return err
}

// SumTotals aggregates currency totals across every ledger of one user.
func (r *ProgressRepository) SumTotals(ctx context.Context, userID int64) (*domain.ProgressTotals, error) {
	var t domain.ProgressTotals
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_xp), 0), COALESCE(SUM(total_gems), 0), COALESCE(SUM(total_gel), 0)
		 FROM language_progress
		 WHERE user_id = $1`,
		userID,
	).Scan(&t.TotalXp, &t.TotalGems, &t.TotalGel)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CountCompletedLessonsInUnit counts this ledger's completed lessons that
// belong to the given unit.
func (r *ProgressRepository) CountCompletedLessonsInUnit(ctx context.Context, progressID, unitID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM progress_lessons pl
		 JOIN lessons l ON l.id = pl.lesson_id
		 WHERE pl.progress_id = $1 AND l.unit_id = $2`,
		progressID, unitID,
	).Scan(&n)
	return n, err
}

// GetUnitCompletedAt returns the unit completion timestamp, or nil.
func (r *ProgressRepository) GetUnitCompletedAt(ctx context.Context, progressID, unitID int64) (*time.Time, error) {
	var at time.Time
	err := r.db.QueryRow(ctx,
		`SELECT completed_at FROM progress_units WHERE progress_id = $1 AND unit_id = $2`,
		progressID, unitID,
	).Scan(&at)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &at, nil
}

// ListCompletedLessons returns the ledger's completed lessons, oldest first.
func (r *ProgressRepository) ListCompletedLessons(ctx context.Context, progressID int64) ([]domain.CompletionEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT lesson_id, completed_at FROM progress_lessons WHERE progress_id = $1 ORDER BY completed_at, lesson_id`,
		progressID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.CompletionEntry
	for rows.Next() {
		var e domain.CompletionEntry
		if err := rows.Scan(&e.ID, &e.CompletedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
