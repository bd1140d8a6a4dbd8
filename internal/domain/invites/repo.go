package invites

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/Spok95/community-bot/internal/infra/db"
)

type Repo struct {
	q db.Querier
}

func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

func (r *Repo) Add(ctx context.Context, inv Invite) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO admin_invites (code, was_used, role, made_by_id, made_by_name)
		VALUES ($1,$2,$3,$4,$5)
	`, inv.Code, inv.WasUsed, inv.Role, inv.MadeByID, inv.MadeByName)
	return err
}

func (r *Repo) GetByCode(ctx context.Context, code string) (*Invite, error) {
	row := r.q.QueryRow(ctx, `
		SELECT code, was_used, role, made_by_id, made_by_name, used_by_id, used_by_name
		FROM admin_invites WHERE code = $1
	`, code)

	var inv Invite
	var usedByID sql.NullInt64
	var usedByName sql.NullString
	err := row.Scan(&inv.Code, &inv.WasUsed, &inv.Role, &inv.MadeByID, &inv.MadeByName,
		&usedByID, &usedByName)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	inv.UsedByID = usedByID.Int64
	inv.UsedByName = usedByName.String
	return &inv, nil
}

// MarkUsed гасит код условным апдейтом: was_used = false в WHERE —
// это и есть защита от двойного погашения. false в ответе значит,
// что параллельный погасивший успел раньше.
func (r *Repo) MarkUsed(ctx context.Context, code string, usedByID int64, usedByName string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE admin_invites
		SET was_used = TRUE, used_by_id = $2, used_by_name = $3
		WHERE code = $1 AND was_used = FALSE
	`, code, usedByID, usedByName)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByIssuer — коды, выписанные конкретным админом.
func (r *Repo) ListByIssuer(ctx context.Context, madeByID int64) ([]Invite, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, was_used, role, made_by_id, made_by_name, used_by_id, used_by_name
		FROM admin_invites WHERE made_by_id = $1 ORDER BY code
	`, madeByID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invite
	for rows.Next() {
		var inv Invite
		var usedByID sql.NullInt64
		var usedByName sql.NullString
		if err := rows.Scan(&inv.Code, &inv.WasUsed, &inv.Role, &inv.MadeByID, &inv.MadeByName,
			&usedByID, &usedByName); err != nil {
			return nil, err
		}
		inv.UsedByID = usedByID.Int64
		inv.UsedByName = usedByName.String
		out = append(out, inv)
	}
	return out, rows.Err()
}
