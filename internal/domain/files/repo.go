package files

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Spok95/community-bot/internal/infra/db"
)

type Repo struct {
	q db.Querier
}

func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

// Add заводит незавершённую запись до прихода самого файла; вернувшийся id
// привязывается к диалогу загрузки.
func (r *Repo) Add(ctx context.Context, category string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO files (category, status) VALUES ($1, $2) RETURNING id
	`, category, StatusUnfinished).Scan(&id)
	return id, err
}

// FinishUpload дописывает file_id и имя, запись становится видимой в списках.
func (r *Repo) FinishUpload(ctx context.Context, id int64, tgFileID, name string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE files SET tg_file_id = $2, name = $3, status = $4 WHERE id = $1
	`, id, tgFileID, name, StatusUploaded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", id, db.ErrNotFound)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*File, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, tg_file_id, name, category, status FROM files WHERE id = $1
	`, id)
	var f File
	if err := row.Scan(&f.ID, &f.TgFileID, &f.Name, &f.Category, &f.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// ListUploaded — завершённые файлы раздела; незаконченные загрузки не видны.
func (r *Repo) ListUploaded(ctx context.Context, category string) ([]File, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tg_file_id, name, category, status
		FROM files WHERE category = $1 AND status = $2 ORDER BY name
	`, category, StatusUploaded)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.TgFileID, &f.Name, &f.Category, &f.Status); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	return err
}
