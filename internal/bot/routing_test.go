package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Spok95/community-bot/internal/domain/users"
)

func TestParseItemCallback(t *testing.T) {
	cases := []struct {
		data   string
		prefix string
		action string
		id     int64
		ok     bool
	}{
		{"const:send:15", "const", "send", 15, true},
		{"const:del:7", "const", "del", 7, true},
		{"temp:send:3", "temp", "send", 3, true},
		{"temp:send:3", "const", "", 0, false},
		{"const:send", "const", "", 0, false},
		{"const:send:abc", "const", "", 0, false},
	}
	for _, tc := range cases {
		action, id, ok := parseItemCallback(tc.data, tc.prefix)
		assert.Equal(t, tc.ok, ok, tc.data)
		assert.Equal(t, tc.action, action, tc.data)
		assert.Equal(t, tc.id, id, tc.data)
	}
}

func TestHelpTextByRole(t *testing.T) {
	def := helpText(users.RoleDefault)
	assert.Contains(t, def, "/files")
	assert.NotContains(t, def, "/addadmin")
	assert.NotContains(t, def, "/newconst")
	assert.NotContains(t, def, "/addfile")

	admin := helpText(users.RoleAdmin)
	assert.Contains(t, admin, "/newconst")
	assert.NotContains(t, admin, "/addadmin")
	assert.NotContains(t, admin, "/addfile")

	super := helpText(users.RoleSuperadmin)
	assert.Contains(t, super, "/addadmin")
	assert.Contains(t, super, "/addfile")
	assert.NotContains(t, super, "/export")

	owner := helpText(users.RoleOwner)
	assert.Contains(t, owner, "/export")
}

func TestRoleRU(t *testing.T) {
	assert.Equal(t, "участник", roleRU(users.RoleDefault))
	assert.Equal(t, "админ", roleRU(users.RoleAdmin))
	assert.Equal(t, "суперадмин", roleRU(users.RoleSuperadmin))
	assert.Equal(t, "владелец", roleRU(users.RoleOwner))
}
