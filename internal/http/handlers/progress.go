package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EnrollRequest struct {
	LanguageID int64 `json:"language_id"`
}

// Enroll starts a language course for the authenticated user. Enrolling in
// the same language again returns the existing ledger.
func (h *Handler) Enroll(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req EnrollRequest
	if err := c.BindJSON(&req); err != nil || req.LanguageID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language_id is required"})
		return
	}

	progress, err := h.Progress.Enroll(c.Request.Context(), userID, req.LanguageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

type CompleteExercisesRequest struct {
	ExerciseIDs []int64 `json:"exercise_ids"`
}

// CompleteExercises marks exercises of a lesson as done and returns the
// updated ledger after the completion cascade.
func (h *Handler) CompleteExercises(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	lessonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	var req CompleteExercisesRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	progress, err := h.Progress.MarkExercisesCompleted(c.Request.Context(), userID, lessonID, req.ExerciseIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// UnitStatus returns the unit-completion projection for the authenticated
// user. progress and completedAt are mutually exclusive in the response.
func (h *Handler) UnitStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	unitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	status, err := h.Progress.UnitStatus(c.Request.Context(), userID, unitID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// MyProgress returns the ledger plus completed lessons for one language.
func (h *Handler) MyProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	languageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid language id"})
		return
	}

	ctx := c.Request.Context()
	progress, err := h.Progress.Get(ctx, userID, languageID)
	if err != nil {
		respondError(c, err)
		return
	}

	lessons, err := h.Progress.CompletedLessons(ctx, userID, languageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":          progress,
		"completed_lessons": lessons,
	})
}

// Languages lists the courses available for enrollment.
func (h *Handler) Languages(c *gin.Context) {
	languages, err := h.CatalogRepo.ListLanguages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list languages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": languages})
}
