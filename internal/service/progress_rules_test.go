package service

import (
	"errors"
	"testing"

	"lingua_webapp/internal/domain"
)

// twoChapterTree builds a small catalog: 2 chapters, 2 units each, with one
// single-lesson unit and one two-lesson unit per chapter. Lesson IDs are 1xx,
// exercise IDs are lessonID*10+n.
func twoChapterTree() *domain.LanguageTree {
	lesson := func(id int64, exercises int) domain.TreeLesson {
		l := domain.TreeLesson{ID: id, XpReward: 10}
		for n := int64(1); n <= int64(exercises); n++ {
			l.ExerciseIDs = append(l.ExerciseIDs, id*10+n)
		}
		return l
	}

	return &domain.LanguageTree{
		LanguageID: 1,
		Chapters: []domain.TreeChapter{
			{
				ID: 10,
				Units: []domain.TreeUnit{
					{ID: 21, Lessons: []domain.TreeLesson{lesson(101, 2)}},
					{ID: 22, Lessons: []domain.TreeLesson{lesson(102, 2), lesson(103, 1)}},
				},
			},
			{
				ID: 11,
				Units: []domain.TreeUnit{
					{ID: 23, Lessons: []domain.TreeLesson{lesson(104, 1)}},
				},
			},
		},
	}
}

func completeLesson(t *testing.T, tree *domain.LanguageTree, sets domain.CompletedSets, lessonID int64) *CompletionOutcome {
	t.Helper()
	l := findLesson(tree, lessonID)
	if l == nil {
		t.Fatalf("lesson %d not in tree", lessonID)
	}
	out, err := applyCompletion(tree, sets, lessonID, l.ExerciseIDs)
	if err != nil {
		t.Fatalf("applyCompletion(%d): %v", lessonID, err)
	}
	return out
}

func TestApplyCompletionPartialLesson(t *testing.T) {
	tree := twoChapterTree()
	sets := domain.NewCompletedSets()

	out, err := applyCompletion(tree, sets, 101, []int64{1011})
	if err != nil {
		t.Fatal(err)
	}

	if len(out.NewExercises) != 1 || out.NewExercises[0] != 1011 {
		t.Errorf("NewExercises = %v, want [1011]", out.NewExercises)
	}
	if len(out.NewLessons) != 0 {
		t.Errorf("lesson completed with one of two exercises done")
	}
	// Cursor stays on the first uncompleted lesson.
	if out.NextLessonID != 101 || out.NextUnitID != 21 || out.NextChapterID != 10 {
		t.Errorf("cursor = (%d, %d, %d), want (10, 21, 101)", out.NextChapterID, out.NextUnitID, out.NextLessonID)
	}
}

func TestApplyCompletionCascade(t *testing.T) {
	tree := twoChapterTree()
	sets := domain.NewCompletedSets()

	// Completing lesson 101 finishes its single-lesson unit 21.
	out := completeLesson(t, tree, sets, 101)
	if len(out.NewLessons) != 1 || out.NewLessons[0] != 101 {
		t.Fatalf("NewLessons = %v, want [101]", out.NewLessons)
	}
	if len(out.NewUnits) != 1 || out.NewUnits[0] != 21 {
		t.Fatalf("NewUnits = %v, want [21]", out.NewUnits)
	}
	if len(out.NewChapters) != 0 {
		t.Fatalf("chapter completed while unit 22 is open")
	}
	if out.NextLessonID != 102 {
		t.Errorf("NextLessonID = %d, want 102", out.NextLessonID)
	}

	// Lesson 102 alone does not close unit 22.
	out = completeLesson(t, tree, sets, 102)
	if len(out.NewUnits) != 0 {
		t.Fatalf("unit 22 completed with lesson 103 open")
	}

	// Lesson 103 closes unit 22 and with it chapter 10.
	out = completeLesson(t, tree, sets, 103)
	if len(out.NewUnits) != 1 || out.NewUnits[0] != 22 {
		t.Fatalf("NewUnits = %v, want [22]", out.NewUnits)
	}
	if len(out.NewChapters) != 1 || out.NewChapters[0] != 10 {
		t.Fatalf("NewChapters = %v, want [10]", out.NewChapters)
	}
	if out.CourseCompleted {
		t.Fatal("course completed with chapter 11 open")
	}

	// The last lesson finishes everything; the cursor stays on it.
	out = completeLesson(t, tree, sets, 104)
	if !out.CourseCompleted {
		t.Fatal("course not completed after last lesson")
	}
	if out.NextChapterID != 11 || out.NextUnitID != 23 || out.NextLessonID != 104 {
		t.Errorf("final cursor = (%d, %d, %d), want (11, 23, 104)", out.NextChapterID, out.NextUnitID, out.NextLessonID)
	}
}

func TestApplyCompletionIdempotent(t *testing.T) {
	tree := twoChapterTree()
	sets := domain.NewCompletedSets()

	completeLesson(t, tree, sets, 101)

	// Re-submitting the same exercises changes nothing.
	out, err := applyCompletion(tree, sets, 101, []int64{1011, 1012})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.NewExercises) != 0 || len(out.NewLessons) != 0 || len(out.NewUnits) != 0 {
		t.Errorf("resubmission produced changes: %+v", out)
	}
}

func TestLessonXpReward(t *testing.T) {
	tree := twoChapterTree()

	if got := lessonXpReward(tree, 101); got != 10 {
		t.Errorf("lessonXpReward(101) = %d, want 10", got)
	}
	if got := lessonXpReward(tree, 999); got != 0 {
		t.Errorf("lessonXpReward(999) = %d, want 0", got)
	}
}

func TestLessonXpCreditedPerInsertedRow(t *testing.T) {
	tree := twoChapterTree()

	// Two writers can compute the same completion outcome from their own
	// snapshots, but the append-once insert succeeds for only one of them.
	// XP follows the inserted rows, so the writer that lost the insert
	// credits nothing and the lesson rewards exactly once.
	credit := func(insertedLessonIDs []int64) int64 {
		var xp int64
		for _, id := range insertedLessonIDs {
			xp += lessonXpReward(tree, id)
		}
		return xp
	}

	if got := credit([]int64{101}); got != 10 {
		t.Errorf("winning writer credited %d, want 10", got)
	}
	if got := credit(nil); got != 0 {
		t.Errorf("losing writer credited %d, want 0", got)
	}
	if got := credit([]int64{101}) + credit(nil); got != 10 {
		t.Errorf("combined credit = %d, want 10", got)
	}
}

func TestApplyCompletionUnknownExercise(t *testing.T) {
	tree := twoChapterTree()
	sets := domain.NewCompletedSets()

	// 1021 belongs to lesson 102, not 101. Nothing may be recorded.
	_, err := applyCompletion(tree, sets, 101, []int64{1011, 1021})
	if !errors.Is(err, ErrUnknownExercise) {
		t.Fatalf("err = %v, want ErrUnknownExercise", err)
	}
	if len(sets.Exercises) != 0 {
		t.Errorf("rejected request mutated the sets: %v", sets.Exercises)
	}
}

func TestApplyCompletionLessonNotFound(t *testing.T) {
	tree := twoChapterTree()
	sets := domain.NewCompletedSets()

	if _, err := applyCompletion(tree, sets, 999, []int64{1}); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestNextCursorEmptySets(t *testing.T) {
	tree := twoChapterTree()
	ch, u, l, done := nextCursor(tree, domain.NewCompletedSets())
	if done {
		t.Fatal("empty progress reported as done")
	}
	if ch != 10 || u != 21 || l != 101 {
		t.Errorf("cursor = (%d, %d, %d), want (10, 21, 101)", ch, u, l)
	}
}

func TestUnitProgressPercent(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{1, 3, 33},
		{3, 3, 100},
		{0, 0, 100},
		{5, 4, 100},
	}
	for _, tt := range tests {
		if got := unitProgressPercent(tt.completed, tt.total); got != tt.want {
			t.Errorf("unitProgressPercent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}
