package user

type Role string

const (
	RoleCustomer        Role = "customer"
	RoleServiceProvider Role = "serviceProvider"
	RoleAdmin           Role = "admin"
	// RoleSystem is never issued in tokens; it marks transitions driven by timers.
	RoleSystem Role = "system"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleServiceProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
