package models

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type sqlOrganizerRepo struct{ db *sql.DB }

func NewSQLOrganizerRepository(db *sql.DB) OrganizerRepository { return &sqlOrganizerRepo{db} }

const organizerColumns = `id, name, email, phone, password`

func (r *sqlOrganizerRepo) GetAll(ctx context.Context) ([]Organizer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+organizerColumns+` FROM organizers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Organizer{}
	for rows.Next() {
		var o Organizer
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Password); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *sqlOrganizerRepo) GetByID(ctx context.Context, id string) (Organizer, error) {
	return r.getOne(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE id=$1`, id)
}

func (r *sqlOrganizerRepo) GetByEmail(ctx context.Context, email string) (Organizer, error) {
	return r.getOne(ctx, `SELECT `+organizerColumns+` FROM organizers WHERE email=$1`, email)
}

func (r *sqlOrganizerRepo) getOne(ctx context.Context, query string, arg any) (Organizer, error) {
	var o Organizer
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return Organizer{}, ErrNotFound
	}
	if err != nil {
		return Organizer{}, err
	}
	return o, nil
}

func (r *sqlOrganizerRepo) Create(ctx context.Context, o *Organizer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizers(id, name, email, phone, password) VALUES ($1,$2,$3,$4,$5)`,
		o.ID, o.Name, o.Email, o.Phone, o.Password)
	return mapPQError(err)
}

func (r *sqlOrganizerRepo) Update(ctx context.Context, o *Organizer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE organizers SET name=$2, email=$3, phone=$4, password=$5 WHERE id=$1`,
		o.ID, o.Name, o.Email, o.Phone, o.Password)
	return affectedOne(res, mapPQError(err))
}

// ON DELETE CASCADE 會一併刪掉 events / tickets
func (r *sqlOrganizerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organizers WHERE id=$1`, id)
	return affectedOne(res, err)
}

// 23505 = unique_violation（organizers.email）
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// UPDATE / DELETE 沒碰到任何 row 就當作找不到
func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
