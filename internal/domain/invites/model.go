package invites

import "github.com/Spok95/community-bot/internal/domain/users"

// Invite — одноразовый код повышения роли. После погашения was_used
// назад не откатывается, код навсегда остаётся использованным.
type Invite struct {
	Code       string
	WasUsed    bool
	Role       users.Role
	MadeByID   int64
	MadeByName string
	UsedByID   int64
	UsedByName string
}
