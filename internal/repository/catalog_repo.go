package repository

import (
	"context"

	"lingua_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads the content hierarchy. It never writes: seeding and
// admin edits happen outside the request path.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetLanguage(ctx context.Context, id int64) (*domain.Language, error) {
	var l domain.Language
	err := r.db.QueryRow(ctx,
		`SELECT id, code, title, sort_order FROM languages WHERE id = $1`, id,
	).Scan(&l.ID, &l.Code, &l.Title, &l.SortOrder)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *CatalogRepository) ListLanguages(ctx context.Context) ([]*domain.Language, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, title, sort_order FROM languages ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.ID, &l.Code, &l.Title, &l.SortOrder); err != nil {
			return nil, err
		}
		res = append(res, &l)
	}
	return res, rows.Err()
}

// ResolveLesson walks a lesson up to its language in one query.
func (r *CatalogRepository) ResolveLesson(ctx context.Context, lessonID int64) (*domain.LessonContext, error) {
	var lc domain.LessonContext
	err := r.db.QueryRow(ctx,
		`SELECT l.id, u.id, c.id, c.language_id
		 FROM lessons l
		 JOIN units u ON u.id = l.unit_id
		 JOIN chapters c ON c.id = u.chapter_id
		 WHERE l.id = $1`,
		lessonID,
	).Scan(&lc.LessonID, &lc.UnitID, &lc.ChapterID, &lc.LanguageID)
	if err != nil {
		return nil, err
	}
	return &lc, nil
}

func (r *CatalogRepository) GetChapter(ctx context.Context, chapterID int64) (*domain.Chapter, error) {
	var c domain.Chapter
	err := r.db.QueryRow(ctx,
		`SELECT id, language_id, title, sort_order FROM chapters WHERE id = $1`, chapterID,
	).Scan(&c.ID, &c.LanguageID, &c.Title, &c.SortOrder)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) GetUnit(ctx context.Context, unitID int64) (*domain.Unit, error) {
	var u domain.Unit
	err := r.db.QueryRow(ctx,
		`SELECT id, chapter_id, title, sort_order FROM units WHERE id = $1`, unitID,
	).Scan(&u.ID, &u.ChapterID, &u.Title, &u.SortOrder)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *CatalogRepository) ListLessonIDsByUnit(ctx context.Context, unitID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM lessons WHERE unit_id = $1 ORDER BY sort_order, id`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LoadLanguageTree snapshots one language's full hierarchy in catalog order.
// The cascade logic consumes this instead of issuing per-level queries.
func (r *CatalogRepository) LoadLanguageTree(ctx context.Context, languageID int64) (*domain.LanguageTree, error) {
	if _, err := r.GetLanguage(ctx, languageID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, u.id, l.id, l.xp_reward, e.id
		 FROM chapters c
		 LEFT JOIN units u ON u.chapter_id = c.id
		 LEFT JOIN lessons l ON l.unit_id = u.id
		 LEFT JOIN exercises e ON e.lesson_id = l.id
		 WHERE c.language_id = $1
		 ORDER BY c.sort_order, c.id, u.sort_order, u.id, l.sort_order, l.id, e.sort_order, e.id`,
		languageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tree := &domain.LanguageTree{LanguageID: languageID}
	var (
		curChapter *domain.TreeChapter
		curUnit    *domain.TreeUnit
		curLesson  *domain.TreeLesson
	)

	flushLesson := func() {
		if curLesson != nil && curUnit != nil {
			curUnit.Lessons = append(curUnit.Lessons, *curLesson)
			curLesson = nil
		}
	}
	flushUnit := func() {
		flushLesson()
		if curUnit != nil && curChapter != nil {
			curChapter.Units = append(curChapter.Units, *curUnit)
			curUnit = nil
		}
	}
	flushChapter := func() {
		flushUnit()
		if curChapter != nil {
			tree.Chapters = append(tree.Chapters, *curChapter)
			curChapter = nil
		}
	}

	for rows.Next() {
		var (
			chapterID  int64
			unitID     *int64
			lessonID   *int64
			xpReward   *int64
			exerciseID *int64
		)
		if err := rows.Scan(&chapterID, &unitID, &lessonID, &xpReward, &exerciseID); err != nil {
			return nil, err
		}

		if curChapter == nil || curChapter.ID != chapterID {
			flushChapter()
			curChapter = &domain.TreeChapter{ID: chapterID}
		}
		if unitID == nil {
			continue
		}
		if curUnit == nil || curUnit.ID != *unitID {
			flushUnit()
			curUnit = &domain.TreeUnit{ID: *unitID}
		}
		if lessonID == nil {
			continue
		}
		if curLesson == nil || curLesson.ID != *lessonID {
			flushLesson()
			curLesson = &domain.TreeLesson{ID: *lessonID}
			if xpReward != nil {
				curLesson.XpReward = *xpReward
			}
		}
		if exerciseID != nil {
			curLesson.ExerciseIDs = append(curLesson.ExerciseIDs, *exerciseID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	flushChapter()

	return tree, nil
}
