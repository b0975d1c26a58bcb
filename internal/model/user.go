package model

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a back-office account (admin or staff).
type User struct {
	Base
	Email        string  `gorm:"type:varchar(320);not null;uniqueIndex:uq_users_email" json:"email"`
	Name         *string `gorm:"type:varchar(200)" json:"name"`
	Role         Role    `gorm:"type:varchar(20);not null" json:"role"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
}

func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
