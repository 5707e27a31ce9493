package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketapi/models"
	"ticketapi/services"
)

func TestTicketCreate_AlwaysAvailable(t *testing.T) {
	f := newFixture()
	o := f.organizer(t, "jane@example.com")
	e := f.event(t, o.ID)

	tk, err := f.tickets.Create(context.Background(), services.TicketInput{
		SeatNumber: "A1", Price: decimal.RequireFromString("12.50"), Status: models.StatusSold, EventID: e.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, tk.Status)
	assert.True(t, decimal.RequireFromString("12.5").Equal(tk.Price))
	assert.Equal(t, e.ID, tk.EventID)
}

func TestTicketCreate_Invalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.tickets.Create(ctx, services.TicketInput{SeatNumber: "", Price: decimal.NewFromInt(-1)})
	assert.Equal(t, []string{
		"Seat number cannot be blank.", "Price cannot be negative.", "Event is required.",
	}, messages(t, err))

	_, err = f.tickets.Create(ctx, services.TicketInput{SeatNumber: "A1", Price: decimal.Zero, EventID: "missing"})
	requireNotFound(t, err, "Event not found")
}

func TestTicketMarkAsSold_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.organizer(t, "jane@example.com")
	tk := f.ticket(t, f.event(t, o.ID).ID, "A1")

	sold, err := f.tickets.MarkAsSold(ctx, tk)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, sold.Status)

	again, err := f.tickets.MarkAsSold(ctx, sold)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, again.Status)

	// reserved 也直接變 sold
	reserved := models.StatusReserved
	r, err := f.tickets.Update(ctx, again, services.TicketUpdate{Status: &reserved})
	require.NoError(t, err)
	sold, err = f.tickets.MarkAsSold(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, sold.Status)

	got, err := f.tickets.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, got.Status)
}

func TestTicketUpdate_Partial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.organizer(t, "jane@example.com")
	tk := f.ticket(t, f.event(t, o.ID).ID, "A1")

	price := decimal.RequireFromString("99.99")
	updated, err := f.tickets.Update(ctx, tk, services.TicketUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "A1", updated.SeatNumber)
	assert.Equal(t, models.StatusAvailable, updated.Status)
	assert.True(t, price.Equal(updated.Price))

	bad := models.TicketStatus("refunded")
	_, err = f.tickets.Update(ctx, updated, services.TicketUpdate{Status: &bad})
	assert.Equal(t, []string{"Choose a valid status."}, messages(t, err))

	long := "ABCDEFGHIJK"
	_, err = f.tickets.Update(ctx, updated, services.TicketUpdate{SeatNumber: &long})
	assert.Equal(t, []string{"Seat number cannot be longer than 10 characters."}, messages(t, err))
}

func TestTicketDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.organizer(t, "jane@example.com")
	tk := f.ticket(t, f.event(t, o.ID).ID, "A1")

	require.NoError(t, f.tickets.Delete(ctx, tk))
	_, err := f.tickets.Get(ctx, tk.ID)
	requireNotFound(t, err, "Ticket not found")

	err = f.tickets.Delete(ctx, tk)
	requireNotFound(t, err, "Ticket not found")
}
