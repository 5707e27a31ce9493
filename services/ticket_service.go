package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ticketapi/models"
)

const msgTicketNotFound = "Ticket not found"

// TicketService：狀態可以任意改，唯一固定的轉換是 MarkAsSold → sold
type TicketService struct {
	repos models.Repositories
}

func NewTicketService(repos models.Repositories) *TicketService {
	return &TicketService{repos: repos}
}

func (s *TicketService) Create(ctx context.Context, in TicketInput) (models.Ticket, error) {
	seat := strings.TrimSpace(in.SeatNumber)
	eventID := strings.TrimSpace(in.EventID)

	p := ticketProblems(seat, in.Price, models.StatusAvailable)
	if eventID == "" {
		p.add(msgEventNeeded)
	}
	if err := p.err(); err != nil {
		return models.Ticket{}, err
	}

	if _, err := s.repos.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Ticket{}, notFound(msgEventNotFound)
		}
		return models.Ticket{}, fmt.Errorf("get event %s: %w", eventID, err)
	}

	t := models.Ticket{
		ID:         uuid.NewString(),
		SeatNumber: seat,
		Price:      in.Price,
		Status:     models.StatusAvailable,
		EventID:    eventID,
	}
	if err := s.repos.Tickets.Create(ctx, &t); err != nil {
		return models.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

// Update 只改有帶的欄位，改完整張票重新驗證
func (s *TicketService) Update(ctx context.Context, t models.Ticket, u TicketUpdate) (models.Ticket, error) {
	if u.SeatNumber != nil {
		t.SeatNumber = strings.TrimSpace(*u.SeatNumber)
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if err := ValidateTicket(t.SeatNumber, t.Price, t.Status); err != nil {
		return models.Ticket{}, err
	}
	return s.save(ctx, t)
}

// MarkAsSold 不管目前狀態，一律改成 sold
func (s *TicketService) MarkAsSold(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	t.Status = models.StatusSold
	return s.save(ctx, t)
}

func (s *TicketService) save(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	if err := s.repos.Tickets.Update(ctx, &t); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Ticket{}, notFound(msgTicketNotFound)
		}
		return models.Ticket{}, fmt.Errorf("update ticket %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *TicketService) Delete(ctx context.Context, t models.Ticket) error {
	if err := s.repos.Tickets.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound(msgTicketNotFound)
		}
		return fmt.Errorf("delete ticket %s: %w", t.ID, err)
	}
	return nil
}

func (s *TicketService) Get(ctx context.Context, id string) (models.Ticket, error) {
	t, err := s.repos.Tickets.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Ticket{}, notFound(msgTicketNotFound)
	}
	if err != nil {
		return models.Ticket{}, fmt.Errorf("get ticket %s: %w", id, err)
	}
	return t, nil
}

func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	out, err := s.repos.Tickets.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return out, nil
}
