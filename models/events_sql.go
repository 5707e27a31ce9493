package models

import (
	"context"
	"database/sql"
	"errors"
)

type sqlEventRepo struct{ db *sql.DB }

func NewSQLEventRepository(db *sql.DB) EventRepository { return &sqlEventRepo{db} }

const eventColumns = `id, title, date, venue, capacity, organizer_id`

func (r *sqlEventRepo) GetAll(ctx context.Context) ([]Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at, id`)
}

func (r *sqlEventRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE organizer_id=$1 ORDER BY created_at, id`, organizerID)
}

func (r *sqlEventRepo) list(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Venue, &e.Capacity, &e.OrganizerID); err != nil {
			return nil, err
		}
		e.Date = e.Date.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *sqlEventRepo) GetByID(ctx context.Context, id string) (Event, error) {
	var e Event
	err := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id=$1`, id).
		Scan(&e.ID, &e.Title, &e.Date, &e.Venue, &e.Capacity, &e.OrganizerID)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	e.Date = e.Date.UTC()
	return e, nil
}

func (r *sqlEventRepo) Create(ctx context.Context, e *Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events(id, title, date, venue, capacity, organizer_id) VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.Title, e.Date, e.Venue, e.Capacity, e.OrganizerID)
	return err
}

func (r *sqlEventRepo) Update(ctx context.Context, e *Event) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET title=$2, date=$3, venue=$4, capacity=$5, organizer_id=$6 WHERE id=$1`,
		e.ID, e.Title, e.Date, e.Venue, e.Capacity, e.OrganizerID)
	return affectedOne(res, err)
}

func (r *sqlEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id)
	return affectedOne(res, err)
}
