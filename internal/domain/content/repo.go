package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Spok95/community-bot/internal/infra/db"
)

type Repo struct {
	q db.Querier
}

func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

func (r *Repo) AddConst(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO const_messages (name, text) VALUES ($1, '') RETURNING id
	`, name).Scan(&id)
	return id, err
}

func (r *Repo) SetConstText(ctx context.Context, id int64, text string) error {
	tag, err := r.q.Exec(ctx, `UPDATE const_messages SET text = $2 WHERE id = $1`, id, text)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("const message %d: %w", id, db.ErrNotFound)
	}
	return nil
}

func (r *Repo) GetConst(ctx context.Context, id int64) (*ConstMessage, error) {
	row := r.q.QueryRow(ctx, `SELECT id, name, text FROM const_messages WHERE id = $1`, id)
	var m ConstMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Text); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListConst(ctx context.Context) ([]ConstMessage, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, text FROM const_messages ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConstMessage
	for rows.Next() {
		var m ConstMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Text); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteConst(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM const_messages WHERE id = $1`, id)
	return err
}

func (r *Repo) AddTemp(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO temp_messages (name, text, expires_at) VALUES ($1, '', now()) RETURNING id
	`, name).Scan(&id)
	return id, err
}

func (r *Repo) SetTempExpiry(ctx context.Context, id int64, expiresAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE temp_messages SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("temp message %d: %w", id, db.ErrNotFound)
	}
	return nil
}

func (r *Repo) SetTempText(ctx context.Context, id int64, text string) error {
	tag, err := r.q.Exec(ctx, `UPDATE temp_messages SET text = $2 WHERE id = $1`, id, text)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("temp message %d: %w", id, db.ErrNotFound)
	}
	return nil
}

func (r *Repo) GetTemp(ctx context.Context, id int64) (*TempMessage, error) {
	row := r.q.QueryRow(ctx, `SELECT id, name, text, expires_at FROM temp_messages WHERE id = $1`, id)
	var m TempMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Text, &m.ExpiresAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListTemp(ctx context.Context) ([]TempMessage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, text, expires_at FROM temp_messages ORDER BY expires_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TempMessage
	for rows.Next() {
		var m TempMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &m.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteTemp(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM temp_messages WHERE id = $1`, id)
	return err
}

// PurgeExpired удаляет просроченные временные записи, возвращает число
// удалённых строк.
func (r *Repo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM temp_messages WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
