package models

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleWrite UserRole = "WRITE"
	UserRoleRead  UserRole = "READ"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin: "Administrator",
	UserRoleWrite: "Editor",
	UserRoleRead:  "Viewer",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// CanWrite reports whether the role is allowed to mutate registry data.
func (r UserRole) CanWrite() bool {
	return r == UserRoleAdmin || r == UserRoleWrite
}

const SystemUser = "system"
