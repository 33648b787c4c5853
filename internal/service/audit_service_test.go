package service

import (
	"testing"

	"lingua_webapp/internal/domain"
)

func TestBalanceAction(t *testing.T) {
	tests := []struct {
		change int64
		want   string
	}{
		{50, domain.AuditActionBalanceCredit},
		{-50, domain.AuditActionBalanceDebit},
		{0, domain.AuditActionBalanceCredit}, // clamped no-op audits as credit
	}
	for _, tt := range tests {
		if got := balanceAction(tt.change); got != tt.want {
			t.Errorf("balanceAction(%d) = %q, want %q", tt.change, got, tt.want)
		}
	}
}
