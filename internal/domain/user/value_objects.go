package user

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidActor = errors.New("invalid actor")
)

// Actor is the authenticated identity performing an action.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) (Actor, error) {
	if id == uuid.Nil || !role.IsValid() {
		return Actor{}, ErrInvalidActor
	}
	return Actor{ID: id, Role: role}, nil
}

func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: RoleSystem}
}

func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
func (a Actor) IsProvider() bool { return a.Role == RoleServiceProvider }
func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }
func (a Actor) IsSystem() bool   { return a.Role == RoleSystem }
