package models

import (
	"context"
	"database/sql"
	"errors"
)

type sqlTicketRepo struct{ db *sql.DB }

func NewSQLTicketRepository(db *sql.DB) TicketRepository { return &sqlTicketRepo{db} }

const ticketColumns = `id, seat_number, price, status, event_id`

func (r *sqlTicketRepo) GetAll(ctx context.Context) ([]Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Ticket{}
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.SeatNumber, &t.Price, &t.Status, &t.EventID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *sqlTicketRepo) GetByID(ctx context.Context, id string) (Ticket, error) {
	var t Ticket
	err := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id).
		Scan(&t.ID, &t.SeatNumber, &t.Price, &t.Status, &t.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return Ticket{}, ErrNotFound
	}
	if err != nil {
		return Ticket{}, err
	}
	return t, nil
}

func (r *sqlTicketRepo) Create(ctx context.Context, t *Ticket) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets(id, seat_number, price, status, event_id) VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.SeatNumber, t.Price, string(t.Status), t.EventID)
	return err
}

func (r *sqlTicketRepo) Update(ctx context.Context, t *Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET seat_number=$2, price=$3, status=$4 WHERE id=$1`,
		t.ID, t.SeatNumber, t.Price, string(t.Status))
	return affectedOne(res, err)
}

func (r *sqlTicketRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	return affectedOne(res, err)
}

// 沒有票也不算錯
func (r *sqlTicketRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE event_id=$1`, eventID)
	return err
}
