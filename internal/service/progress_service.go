package service

import (
	"context"
	"errors"
	"time"

	"lingua_webapp/internal/domain"
	"lingua_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressService owns the progress ledger write path: enrollment and the
// exercise-completion cascade. Reads from the catalog, never writes to it.
type ProgressService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	catalog  *repository.CatalogRepository
	progress *repository.ProgressRepository
	audit    *AuditService
}

func NewProgressService(db *pgxpool.Pool) *ProgressService {
	return &ProgressService{
		db:       db,
		users:    repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		progress: repository.NewProgressRepository(db),
		audit:    NewAuditService(db),
	}
}

// Enroll creates the (user, language) ledger with the cursor on the first
// chapter/unit/lesson and hearts seeded at 5. Enrolling twice returns the
// existing ledger unchanged.
func (s *ProgressService) Enroll(ctx context.Context, userID, languageID int64) (*domain.LanguageProgress, error) {
	if exists, err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrUserNotFound
	}

	tree, err := s.catalog.LoadLanguageTree(ctx, languageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLanguageNotFound
		}
		return nil, err
	}

	chapterID, unitID, lessonID, ok := tree.FirstLesson()
	if !ok {
		return nil, ErrEmptyCourse
	}

	p, err := s.progress.Create(ctx, userID, languageID, chapterID, unitID, lessonID)
	if err != nil {
		return nil, err
	}

	s.audit.LogProgress(ctx, userID, domain.AuditActionEnroll, map[string]interface{}{
		"language_id": languageID,
	})
	return p, nil
}

// MarkExercisesCompleted idempotently records the exercises as done and runs
// the lesson -> unit -> chapter -> course completion cascade, advancing the
// cursor and crediting lesson XP to the ledger. Requires an existing ledger
// for the lesson's language.
func (s *ProgressService) MarkExercisesCompleted(ctx context.Context, userID, lessonID int64, exerciseIDs []int64) (*domain.LanguageProgress, error) {
	if len(exerciseIDs) == 0 {
		return nil, ErrNoExercises
	}

	lc, err := s.catalog.ResolveLesson(ctx, lessonID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	p, err := s.progress.GetByUserAndLanguage(ctx, userID, lc.LanguageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	tree, err := s.catalog.LoadLanguageTree(ctx, lc.LanguageID)
	if err != nil {
		return nil, err
	}

	sets, err := s.progress.LoadCompletedSets(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	out, err := applyCompletion(tree, sets, lessonID, exerciseIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.progress.InsertExercisesTx(ctx, tx, p.ID, lessonID, out.NewExercises, now); err != nil {
		return nil, err
	}

	// XP is credited per lesson row actually inserted in this transaction.
	// A concurrent call that computed the same outcome from its own snapshot
	// loses the append-once insert and credits nothing, so one lesson can
	// never reward twice.
	var xpDelta int64
	for _, id := range out.NewLessons {
		inserted, err := s.progress.InsertLessonTx(ctx, tx, p.ID, id, now)
		if err != nil {
			return nil, err
		}
		if inserted {
			xpDelta += lessonXpReward(tree, id)
		}
	}
	for _, id := range out.NewUnits {
		if err := s.progress.InsertUnitTx(ctx, tx, p.ID, id, now); err != nil {
			return nil, err
		}
	}
	for _, id := range out.NewChapters {
		if err := s.progress.InsertChapterTx(ctx, tx, p.ID, id, now); err != nil {
			return nil, err
		}
	}
	if err := s.progress.UpdateStateTx(ctx, tx, p.ID,
		out.NextChapterID, out.NextUnitID, out.NextLessonID,
		xpDelta, out.CourseCompleted,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	for _, id := range out.NewLessons {
		s.audit.LogProgress(ctx, userID, domain.AuditActionLessonComplete, map[string]interface{}{
			"lesson_id": id, "language_id": lc.LanguageID,
		})
	}
	for _, id := range out.NewChapters {
		s.audit.LogProgress(ctx, userID, domain.AuditActionChapterComplete, map[string]interface{}{
			"chapter_id": id, "language_id": lc.LanguageID,
		})
	}
	if out.CourseCompleted && !p.IsCompleted {
		s.audit.LogProgress(ctx, userID, domain.AuditActionCourseComplete, map[string]interface{}{
			"language_id": lc.LanguageID,
		})
	}

	return s.progress.GetByID(ctx, p.ID)
}

// UnitStatus builds the unit-completion projection. The response shape is
// asymmetric by contract: progress only while incomplete, completedAt only
// once complete.
func (s *ProgressService) UnitStatus(ctx context.Context, userID, unitID int64) (*domain.UnitStatus, error) {
	unit, err := s.catalog.GetUnit(ctx, unitID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	chapter, err := s.catalog.GetChapter(ctx, unit.ChapterID)
	if err != nil {
		return nil, err
	}

	p, err := s.progress.GetByUserAndLanguage(ctx, userID, chapter.LanguageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	lessonIDs, err := s.catalog.ListLessonIDsByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	completed, err := s.progress.CountCompletedLessonsInUnit(ctx, p.ID, unitID)
	if err != nil {
		return nil, err
	}

	completedAt, err := s.progress.GetUnitCompletedAt(ctx, p.ID, unitID)
	if err != nil {
		return nil, err
	}

	st := &domain.UnitStatus{
		IsCompleted:      completedAt != nil,
		CompletedLessons: completed,
		TotalLessons:     len(lessonIDs),
	}
	if completedAt != nil {
		st.CompletedAt = completedAt
	} else {
		pct := unitProgressPercent(completed, len(lessonIDs))
		st.Progress = &pct
	}
	return st, nil
}

// Get returns the ledger for (user, language).
func (s *ProgressService) Get(ctx context.Context, userID, languageID int64) (*domain.LanguageProgress, error) {
	p, err := s.progress.GetByUserAndLanguage(ctx, userID, languageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

// CompletedLessons lists the ledger's completed lessons, oldest first.
func (s *ProgressService) CompletedLessons(ctx context.Context, userID, languageID int64) ([]domain.CompletionEntry, error) {
	p, err := s.Get(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}
	return s.progress.ListCompletedLessons(ctx, p.ID)
}
