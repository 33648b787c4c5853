package service

import (
	"errors"
	"testing"

	"lingua_webapp/internal/domain"
)

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		amount  int64
		want    int64
		wantErr error
	}{
		{"increment", domain.ActionInc, 50, 50, nil},
		{"decrement", domain.ActionDec, 50, -50, nil},
		{"zero amount", domain.ActionInc, 0, 0, ErrInvalidAmount},
		{"negative amount", domain.ActionDec, -10, 0, ErrInvalidAmount},
		{"unknown action", "transfer", 10, 0, ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := signedDelta(tt.action, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("signedDelta() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("signedDelta() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClampHearts(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
	}{
		{"within range", 3, 1, 4},
		{"overflow clamps to max", 4, 3, 5},
		{"exact max", 2, 3, 5},
		{"underflow clamps to zero", 1, -3, 0},
		{"exact zero", 3, -3, 0},
		{"already at max", 5, 1, 5},
		{"already at zero", 0, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampHearts(tt.current, tt.delta); got != tt.want {
				t.Errorf("clampHearts(%d, %d) = %d, want %d", tt.current, tt.delta, got, tt.want)
			}
		})
	}
}

func TestClassifyGemRejection(t *testing.T) {
	storageErr := errors.New("connection reset")

	tests := []struct {
		name   string
		exists bool
		exErr  error
		delta  int64
		want   error
	}{
		{"missing user", false, nil, -5, ErrUserNotFound},
		{"decrement past floor", true, nil, -5, ErrInsufficientGems},
		{"increment past ceiling", true, nil, 5, ErrGemLimit},
		{"failed existence check propagates", false, storageErr, -5, storageErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyGemRejection(tt.exists, tt.exErr, tt.delta)
			if !errors.Is(got, tt.want) {
				t.Fatalf("classifyGemRejection() = %v, want %v", got, tt.want)
			}
		})
	}

	// The storage error must surface as a 500, not a wallet rejection.
	got := classifyGemRejection(false, storageErr, -5)
	if IsValidation(got) || IsNotFound(got) {
		t.Errorf("storage error classified as client error: %v", got)
	}
}

func TestErrorClassification(t *testing.T) {
	validation := []error{ErrInvalidAmount, ErrInvalidAction, ErrInsufficientGems, ErrGemLimit, ErrNoExercises, ErrUnknownExercise, ErrInvalidFilter}
	for _, err := range validation {
		if !IsValidation(err) {
			t.Errorf("IsValidation(%v) = false, want true", err)
		}
		if IsNotFound(err) {
			t.Errorf("IsNotFound(%v) = true, want false", err)
		}
	}

	notFound := []error{ErrUserNotFound, ErrLanguageNotFound, ErrLessonNotFound, ErrUnitNotFound, ErrProgressNotFound, ErrItemNotFound}
	for _, err := range notFound {
		if !IsNotFound(err) {
			t.Errorf("IsNotFound(%v) = false, want true", err)
		}
		if IsValidation(err) {
			t.Errorf("IsValidation(%v) = true, want false", err)
		}
	}
}
