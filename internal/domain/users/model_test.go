package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleMeets(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleDefault, RoleDefault, true},
		{RoleDefault, RoleAdmin, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleSuperadmin, false},
		{RoleSuperadmin, RoleAdmin, true},
		{RoleSuperadmin, RoleOwner, false},
		{RoleOwner, RoleSuperadmin, true},
		{RoleOwner, RoleOwner, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.Meets(tc.required),
			"%s meets %s", tc.role, tc.required)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.False(t, Role("root").Valid())
}

func TestStateRoundTrip(t *testing.T) {
	cases := []State{
		{Name: StateDefault},
		{Name: StateConstAwaitName},
		{Name: StateConstAwaitText, EntityID: 15},
		{Name: StateTempAwaitDate, EntityID: 9000000001},
	}
	for _, st := range cases {
		parsed, err := ParseState(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}
}

func TestParseStateEmpty(t *testing.T) {
	st, err := ParseState("")
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), st)
}

func TestParseStateBadEntityID(t *testing.T) {
	_, err := ParseState("const_await_text:abc")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		id   Identity
		want string
	}{
		{Identity{FirstName: "Иван", LastName: "Петров", Username: "ivan"}, "Иван Петров @ivan"},
		{Identity{FirstName: "Иван"}, "Иван"},
		{Identity{Username: "ghost"}, "@ghost"},
		{Identity{}, "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.id.DisplayName())
	}
}
