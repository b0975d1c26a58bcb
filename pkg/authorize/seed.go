package authorize

import (
	"fmt"

	casbin "github.com/casbin/casbin/v2"
)

// staffResources are the resources STAFF can fully manage. User
// accounts stay admin-only, and settings are read-only for staff.
var staffResources = []Resource{
	ResourcePatient,
	ResourceAppointment,
	ResourceService,
	ResourceDoctor,
	ResourceBlog,
	ResourceSpecialtyClinic,
	ResourceFile,
}

func seedPolicies(e *casbin.Enforcer) error {
	policies := [][]string{
		{string(RoleAdmin), string(WildcardResource), string(WildcardAction)},
		{string(RoleStaff), string(ResourceSettings), string(ActionRead)},
	}
	for _, r := range staffResources {
		policies = append(policies, []string{string(RoleStaff), string(r), string(WildcardAction)})
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("seed policy %v: %w", p, err)
		}
	}
	return nil
}
