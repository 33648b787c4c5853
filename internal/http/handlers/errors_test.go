package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"lingua_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation keeps message", service.ErrInsufficientGems, 400, "insufficient gems"},
		{"gem ceiling", service.ErrGemLimit, 400, "gem balance cannot exceed 999999"},
		{"not found keeps message", service.ErrProgressNotFound, 404, "user progress not found"},
		{"unknown error is masked", errors.New("pq: connection refused"), 500, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest("GET", "/", nil)

			respondError(c, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error message = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}
