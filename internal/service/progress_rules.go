package service

import "lingua_webapp/internal/domain"

// CompletionOutcome is what one markExercisesCompleted call changes, computed
// over an in-memory catalog snapshot before anything is persisted.
type CompletionOutcome struct {
	NewExercises []int64
	NewLessons   []int64
	NewUnits     []int64
	NewChapters  []int64

	NextChapterID   int64
	NextUnitID      int64
	NextLessonID    int64
	CourseCompleted bool
}

// applyCompletion runs the completion cascade: record exercises, complete the
// lesson once every exercise in it is done, then units, then chapters, then
// the course. sets is mutated to reflect the new state. Re-submitting an
// already-completed exercise is a no-op; completion entries are append-once,
// so completed counts only ever grow.
func applyCompletion(tree *domain.LanguageTree, sets domain.CompletedSets, lessonID int64, exerciseIDs []int64) (*CompletionOutcome, error) {
	lesson := findLesson(tree, lessonID)
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	allowed := make(map[int64]bool, len(lesson.ExerciseIDs))
	for _, id := range lesson.ExerciseIDs {
		allowed[id] = true
	}
	for _, id := range exerciseIDs {
		if !allowed[id] {
			return nil, ErrUnknownExercise
		}
	}

	out := &CompletionOutcome{}
	for _, id := range exerciseIDs {
		if !sets.Exercises[id] {
			sets.Exercises[id] = true
			out.NewExercises = append(out.NewExercises, id)
		}
	}

	// Lesson completes when every exercise in it is done. XP is not decided
	// here: the reward follows the lesson row that actually lands in storage,
	// see lessonXpReward.
	if !sets.Lessons[lesson.ID] && allDone(lesson.ExerciseIDs, sets.Exercises) {
		sets.Lessons[lesson.ID] = true
		out.NewLessons = append(out.NewLessons, lesson.ID)
	}

	// Cascade upward across the whole tree; only the target lesson can have
	// changed, but checking every unit/chapter keeps the rule self-healing.
	for _, ch := range tree.Chapters {
		for _, u := range ch.Units {
			if sets.Units[u.ID] {
				continue
			}
			if len(u.Lessons) > 0 && allLessonsDone(u.Lessons, sets.Lessons) {
				sets.Units[u.ID] = true
				out.NewUnits = append(out.NewUnits, u.ID)
			}
		}
		if sets.Chapters[ch.ID] {
			continue
		}
		if len(ch.Units) > 0 && allUnitsDone(ch.Units, sets.Units) {
			sets.Chapters[ch.ID] = true
			out.NewChapters = append(out.NewChapters, ch.ID)
		}
	}

	out.NextChapterID, out.NextUnitID, out.NextLessonID, out.CourseCompleted = nextCursor(tree, sets)
	return out, nil
}

// nextCursor finds the first uncompleted lesson in catalog order. When every
// lesson is done the cursor stays on the last lesson and done is true.
func nextCursor(tree *domain.LanguageTree, sets domain.CompletedSets) (chapterID, unitID, lessonID int64, done bool) {
	var lastCh, lastU, lastL int64
	for _, ch := range tree.Chapters {
		for _, u := range ch.Units {
			for _, l := range u.Lessons {
				if !sets.Lessons[l.ID] {
					return ch.ID, u.ID, l.ID, false
				}
				lastCh, lastU, lastL = ch.ID, u.ID, l.ID
			}
		}
	}
	return lastCh, lastU, lastL, true
}

func findLesson(tree *domain.LanguageTree, lessonID int64) *domain.TreeLesson {
	for _, ch := range tree.Chapters {
		for _, u := range ch.Units {
			for i := range u.Lessons {
				if u.Lessons[i].ID == lessonID {
					return &u.Lessons[i]
				}
			}
		}
	}
	return nil
}

// lessonXpReward returns the lesson's XP reward, 0 for IDs outside the tree.
func lessonXpReward(tree *domain.LanguageTree, lessonID int64) int64 {
	if l := findLesson(tree, lessonID); l != nil {
		return l.XpReward
	}
	return 0
}

func allDone(ids []int64, done map[int64]bool) bool {
	for _, id := range ids {
		if !done[id] {
			return false
		}
	}
	return true
}

func allLessonsDone(lessons []domain.TreeLesson, done map[int64]bool) bool {
	for _, l := range lessons {
		if !done[l.ID] {
			return false
		}
	}
	return true
}

func allUnitsDone(units []domain.TreeUnit, done map[int64]bool) bool {
	for _, u := range units {
		if !done[u.ID] {
			return false
		}
	}
	return true
}

// unitProgressPercent is the integer 0-100 share of completed lessons.
func unitProgressPercent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	p := (completed * 100) / total
	if p > 100 {
		p = 100
	}
	return p
}
