package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ticketapi/clock"
	"ticketapi/models"
	"ticketapi/services"
)

var testNow = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repos      models.Repositories
	organizers *services.OrganizerService
	events     *services.EventService
	tickets    *services.TicketService
}

func newFixture() *fixture {
	repos := models.NewMemoryStore().Repositories()
	return &fixture{
		repos:      repos,
		organizers: services.NewOrganizerService(repos, "test-token"),
		events:     services.NewEventService(repos, clock.NewFixed(testNow)),
		tickets:    services.NewTicketService(repos),
	}
}

func (f *fixture) organizer(t *testing.T, email string) models.Organizer {
	t.Helper()
	o, err := f.organizers.Create(context.Background(), services.OrganizerInput{
		Name: "Jane Doe", Email: email, Phone: "+15551234567", Password: "secret123",
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) event(t *testing.T, organizerID string) models.Event {
	t.Helper()
	e, err := f.events.Create(context.Background(), services.EventInput{
		Title: "Concert", Date: testNow.Add(48 * time.Hour), Venue: "Hall A", Capacity: 100, OrganizerID: organizerID,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) ticket(t *testing.T, eventID, seat string) models.Ticket {
	t.Helper()
	tk, err := f.tickets.Create(context.Background(), services.TicketInput{
		SeatNumber: seat, Price: decimal.RequireFromString("25.00"), EventID: eventID,
	})
	require.NoError(t, err)
	return tk
}

func requireNotFound(t *testing.T, err error, msg string) {
	t.Helper()
	var nf *services.NotFoundError
	require.True(t, errors.As(err, &nf), "want *NotFoundError, got %v", err)
	require.Equal(t, msg, nf.Message)
}
