package domain

import "testing"

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{RoleFree, false},
		{RolePaid, false},
		{"", false},
	}
	for _, tt := range tests {
		u := &UserAccount{Role: tt.role}
		if got := u.IsAdmin(); got != tt.want {
			t.Errorf("IsAdmin() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}
