package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Spok95/community-bot/internal/infra/db"
)

type Repo struct {
	q db.Querier
}

// NewRepo принимает пул или открытую транзакцию — запросы одни и те же.
func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

func (r *Repo) GetByID(ctx context.Context, userID int64) (*User, error) {
	row := r.q.QueryRow(ctx, `
		SELECT user_id, first_name, last_name, username, state, role
		FROM users WHERE user_id = $1
	`, userID)

	u, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpsertRole создаёт пользователя с указанной ролью либо, если он уже
// есть, меняет только роль — имя/состояние не трогаем.
func (r *Repo) UpsertRole(ctx context.Context, id Identity, role Role) (*User, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO users (user_id, first_name, last_name, username, state, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING user_id, first_name, last_name, username, state, role
	`, id.ID, id.FirstName, id.LastName, id.Username, DefaultState().String(), role)

	return scanUser(row)
}

// EnsureDefault регистрирует нового пользователя с ролью default; для
// существующего ничего не меняет и возвращает его как есть.
func (r *Repo) EnsureDefault(ctx context.Context, id Identity) (*User, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (user_id, first_name, last_name, username, state, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO NOTHING
	`, id.ID, id.FirstName, id.LastName, id.Username, DefaultState().String(), RoleDefault)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id.ID)
}

// Seed заводит пользователя с заданной ролью, если его ещё нет; для
// существующего — ничего не меняет. Используется для стартовых владельцев.
func (r *Repo) Seed(ctx context.Context, id Identity, role Role) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (user_id, first_name, last_name, username, state, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO NOTHING
	`, id.ID, id.FirstName, id.LastName, id.Username, DefaultState().String(), role)
	return err
}

func (r *Repo) UpdateState(ctx context.Context, userID int64, state State) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE users SET state = $2 WHERE user_id = $1
	`, userID, state.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, db.ErrNotFound)
	}
	return nil
}

// ListElevated — все пользователи с ролью выше default, для выгрузки.
func (r *Repo) ListElevated(ctx context.Context) ([]User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT user_id, first_name, last_name, username, state, role
		FROM users WHERE role <> $1 ORDER BY role, user_id
	`, RoleDefault)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var rawState string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &rawState, &u.Role); err != nil {
		return nil, err
	}
	st, err := ParseState(rawState)
	if err != nil {
		// битое состояние в БД не должно ронять обработку апдейта
		st = DefaultState()
	}
	u.State = st
	return &u, nil
}
