//go:build unit

package user_test

import (
	"testing"

	"ghar-ko-sathi/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	cases := []struct {
		in    string
		errIs error
	}{
		{in: "customer"},
		{in: "serviceProvider"},
		{in: "admin"},
		{in: "system", errIs: user.ErrInvalidRole},
		{in: "", errIs: user.ErrInvalidRole},
		{in: "ServiceProvider", errIs: user.ErrInvalidRole},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			role, err := user.NewRole(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.in, role.String())
		})
	}
}

func TestNewActor(t *testing.T) {
	t.Run("valid customer", func(t *testing.T) {
		a, err := user.NewActor(uuid.New(), user.RoleCustomer)
		require.NoError(t, err)
		assert.True(t, a.IsCustomer())
		assert.False(t, a.IsProvider())
	})

	t.Run("nil id rejected", func(t *testing.T) {
		_, err := user.NewActor(uuid.Nil, user.RoleCustomer)
		require.ErrorIs(t, err, user.ErrInvalidActor)
	})

	t.Run("system role cannot be constructed from input", func(t *testing.T) {
		_, err := user.NewActor(uuid.New(), user.RoleSystem)
		require.ErrorIs(t, err, user.ErrInvalidActor)
	})

	t.Run("system actor", func(t *testing.T) {
		assert.True(t, user.SystemActor().IsSystem())
	})
}
