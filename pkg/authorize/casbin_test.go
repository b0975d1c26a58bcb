package authorize

import (
	"context"
	"errors"
	"testing"
)

func TestEnforceRolePolicies(t *testing.T) {
	auth, err := NewAuthorization()
	if err != nil {
		t.Fatalf("NewAuthorization() error = %v", err)
	}

	ctx := context.Background()

	tests := []struct {
		name    string
		subject GroupSubject
		object  Resource
		action  Action
		want    bool
	}{
		{"admin manages users", GroupSubject(RoleAdmin), ResourceUser, ActionDelete, true},
		{"admin updates settings", GroupSubject(RoleAdmin), ResourceSettings, ActionUpdate, true},
		{"staff manages patients", GroupSubject(RoleStaff), ResourcePatient, ActionCreate, true},
		{"staff manages appointments", GroupSubject(RoleStaff), ResourceAppointment, ActionUpdate, true},
		{"staff uploads files", GroupSubject(RoleStaff), ResourceFile, ActionCreate, true},
		{"staff reads settings", GroupSubject(RoleStaff), ResourceSettings, ActionRead, true},
		{"staff cannot update settings", GroupSubject(RoleStaff), ResourceSettings, ActionUpdate, false},
		{"staff cannot touch users", GroupSubject(RoleStaff), ResourceUser, ActionList, false},
		{"unknown subject denied", GroupSubject("role:visitor"), ResourcePatient, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, tt.subject, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.subject, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestEnforceGuardrails(t *testing.T) {
	auth, err := NewAuthorization()
	if err != nil {
		t.Fatalf("NewAuthorization() error = %v", err)
	}

	ctx := context.Background()

	if _, err := auth.Enforce(ctx, "", ResourcePatient, ActionRead); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("empty subject: error = %v, want ErrInvalidArgs", err)
	}
	if _, err := auth.Enforce(ctx, GroupSubject(RoleAdmin), "spaceship", ActionRead); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("unknown resource: error = %v, want ErrInvalidArgs", err)
	}
	if _, err := auth.Enforce(ctx, GroupSubject(RoleAdmin), ResourcePatient, "launch"); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("unknown action: error = %v, want ErrInvalidArgs", err)
	}
}

func TestMustEnforce(t *testing.T) {
	auth, err := NewAuthorization()
	if err != nil {
		t.Fatalf("NewAuthorization() error = %v", err)
	}

	ctx := context.Background()

	if err := auth.MustEnforce(ctx, GroupSubject(RoleAdmin), ResourceUser, ActionCreate); err != nil {
		t.Errorf("MustEnforce(admin) error = %v, want nil", err)
	}
	if err := auth.MustEnforce(ctx, GroupSubject(RoleStaff), ResourceUser, ActionCreate); !errors.Is(err, ErrForbidden) {
		t.Errorf("MustEnforce(staff on users) error = %v, want ErrForbidden", err)
	}
}
