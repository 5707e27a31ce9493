package models

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// ===== Organizers =====
type OrganizerRepository interface {
	GetAll(ctx context.Context) ([]Organizer, error)
	GetByID(ctx context.Context, id string) (Organizer, error)
	GetByEmail(ctx context.Context, email string) (Organizer, error)
	Create(ctx context.Context, o *Organizer) error
	Update(ctx context.Context, o *Organizer) error
	Delete(ctx context.Context, id string) error
}

// ===== Events =====
type EventRepository interface {
	GetAll(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

// ===== Tickets =====
type TicketRepository interface {
	GetAll(ctx context.Context) ([]Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id string) error
	DeleteByEvent(ctx context.Context, eventID string) error
}

// Repositories 把三個 repository 綁在一起，由 main 依 STORE 決定實作
type Repositories struct {
	Organizers OrganizerRepository
	Events     EventRepository
	Tickets    TicketRepository
	Ping       func(ctx context.Context) error
}
