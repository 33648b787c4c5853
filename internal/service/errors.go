package service

import "errors"

// Validation errors carry a specific message: callers need the reason to
// decide between retry and abort.
var (
	ErrInvalidAmount    = errors.New("amount must be a positive integer")
	ErrInvalidAction    = errors.New("action must be inc or dec")
	ErrInsufficientGems = errors.New("insufficient gems")
	ErrGemLimit         = errors.New("gem balance cannot exceed 999999")
	ErrNoExercises      = errors.New("exercise_ids must not be empty")
	ErrUnknownExercise  = errors.New("exercise does not belong to lesson")
	ErrInvalidFilter    = errors.New("filter must be week, month or allTime")
	ErrEmptyCourse      = errors.New("language has no lessons")
)

// Not-found errors.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrLanguageNotFound = errors.New("language not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrUnitNotFound     = errors.New("unit not found")
	ErrProgressNotFound = errors.New("user progress not found")
	ErrItemNotFound     = errors.New("shop item not found")
)

// IsValidation reports whether err is one of the validation errors above.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInsufficientGems),
		errors.Is(err, ErrGemLimit),
		errors.Is(err, ErrNoExercises),
		errors.Is(err, ErrUnknownExercise),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, ErrEmptyCourse):
		return true
	}
	return false
}

// IsNotFound reports whether err is one of the not-found errors above.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrLanguageNotFound),
		errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrUnitNotFound),
		errors.Is(err, ErrProgressNotFound),
		errors.Is(err, ErrItemNotFound):
		return true
	}
	return false
}
