package domain

// Catalog types describe the read-only content hierarchy
// Language -> Chapter -> Unit -> Lesson -> Exercise. This service queries the
// catalog by ID but never mutates it outside of admin seeding.

type Language struct {
	ID        int64  `db:"id" json:"id"`
	Code      string `db:"code" json:"code"`
	Title     string `db:"title" json:"title"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type Chapter struct {
	ID         int64  `db:"id" json:"id"`
	LanguageID int64  `db:"language_id" json:"language_id"`
	Title      string `db:"title" json:"title"`
	SortOrder  int    `db:"sort_order" json:"sort_order"`
}

type Unit struct {
	ID        int64  `db:"id" json:"id"`
	ChapterID int64  `db:"chapter_id" json:"chapter_id"`
	Title     string `db:"title" json:"title"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type Lesson struct {
	ID        int64  `db:"id" json:"id"`
	UnitID    int64  `db:"unit_id" json:"unit_id"`
	Title     string `db:"title" json:"title"`
	XpReward  int64  `db:"xp_reward" json:"xp_reward"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type Exercise struct {
	ID        int64  `db:"id" json:"id"`
	LessonID  int64  `db:"lesson_id" json:"lesson_id"`
	Type      string `db:"type" json:"type"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// LessonContext is a lesson resolved up through the hierarchy, used to scope
// an exercise-completion request to its language.
type LessonContext struct {
	LessonID   int64
	UnitID     int64
	ChapterID  int64
	LanguageID int64
}

// TreeLesson and friends form an in-memory snapshot of one language's catalog,
// ordered by chapter/unit/lesson sort order. The progress cascade operates on
// this snapshot so its rules stay independent of the storage layer.
type TreeLesson struct {
	ID          int64
	XpReward    int64
	ExerciseIDs []int64
}

type TreeUnit struct {
	ID      int64
	Lessons []TreeLesson
}

type TreeChapter struct {
	ID    int64
	Units []TreeUnit
}

type LanguageTree struct {
	LanguageID int64
	Chapters   []TreeChapter
}

// FirstLesson returns the cursor position at the start of the course.
// ok is false for a language with no content.
func (t *LanguageTree) FirstLesson() (chapterID, unitID, lessonID int64, ok bool) {
	for _, ch := range t.Chapters {
		for _, u := range ch.Units {
			for _, l := range u.Lessons {
				return ch.ID, u.ID, l.ID, true
			}
		}
	}
	return 0, 0, 0, false
}
