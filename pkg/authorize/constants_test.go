package authorize

import "testing"

func TestRoleSubject(t *testing.T) {
	tests := []struct {
		name string
		role string
		want GroupSubject
	}{
		{"admin", "ADMIN", GroupSubject(RoleAdmin)},
		{"staff", "STAFF", GroupSubject(RoleStaff)},
		{"lowercase admin", "admin", GroupSubject(RoleAdmin)},
		{"mixed case staff", "Staff", GroupSubject(RoleStaff)},
		{"unknown role", "SUPERUSER", ""},
		{"empty role", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleSubject(tt.role); got != tt.want {
				t.Errorf("RoleSubject(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}
