package authorize

import "strings"

type Action string
type Resource string
type Role string

// GroupSubject is what lands in casbin as the request subject.
type GroupSubject string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	ResourceUser            Resource = "user"
	ResourcePatient         Resource = "patient"
	ResourceAppointment     Resource = "appointment"
	ResourceService         Resource = "service"
	ResourceDoctor          Resource = "doctor"
	ResourceBlog            Resource = "blog"
	ResourceSpecialtyClinic Resource = "specialty_clinic"
	ResourceSettings        Resource = "settings"
	ResourceFile            Resource = "file"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourcePatient: {}, ResourceAppointment: {},
	ResourceService: {}, ResourceDoctor: {}, ResourceBlog: {},
	ResourceSpecialtyClinic: {}, ResourceSettings: {}, ResourceFile: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// These are the "policy subjects" requests are evaluated as.

const (
	RoleAdmin Role = "role:admin"
	RoleStaff Role = "role:staff"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin: {}, RoleStaff: {},
}

// RoleSubject maps a stored account role (ADMIN/STAFF) to its casbin
// subject. Unknown roles map to the empty subject, which never matches
// any policy.
func RoleSubject(role string) GroupSubject {
	switch strings.ToUpper(role) {
	case "ADMIN":
		return GroupSubject(RoleAdmin)
	case "STAFF":
		return GroupSubject(RoleStaff)
	}
	return ""
}
