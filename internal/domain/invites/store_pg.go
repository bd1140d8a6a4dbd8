package invites

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/community-bot/internal/domain/users"
	"github.com/Spok95/community-bot/internal/infra/db"
)

// PgStore реализует Store поверх pgx: один вызов InTx — одна транзакция.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore { return &PgStore{pool: pool} }

func (s *PgStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return db.WithTx(ctx, s.pool, func(ptx pgx.Tx) error {
		return fn(pgTx{
			invites: NewRepo(ptx),
			users:   users.NewRepo(ptx),
		})
	})
}

type pgTx struct {
	invites *Repo
	users   *users.Repo
}

func (t pgTx) AddInvite(ctx context.Context, inv Invite) error {
	return t.invites.Add(ctx, inv)
}

func (t pgTx) InviteByCode(ctx context.Context, code string) (*Invite, error) {
	return t.invites.GetByCode(ctx, code)
}

func (t pgTx) UserByID(ctx context.Context, userID int64) (*users.User, error) {
	return t.users.GetByID(ctx, userID)
}

func (t pgTx) UpsertUserRole(ctx context.Context, id users.Identity, role users.Role) (*users.User, error) {
	return t.users.UpsertRole(ctx, id, role)
}

func (t pgTx) MarkInviteUsed(ctx context.Context, code string, usedByID int64, usedByName string) (bool, error) {
	return t.invites.MarkUsed(ctx, code, usedByID, usedByName)
}
