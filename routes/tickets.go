package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ticketapi/models"
	"ticketapi/services"
	"ticketapi/utils"
)

type ticketRequest struct {
	SeatNumber string          `json:"seatNumber"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"` // 會被忽略
	EventID    string          `json:"eventId"`
}

// 沒帶的欄位保留原值
type ticketUpdateRequest struct {
	SeatNumber *string          `json:"seatNumber"`
	Price      *decimal.Decimal `json:"price"`
	Status     *string          `json:"status"`
}

func (r ticketUpdateRequest) update() services.TicketUpdate {
	u := services.TicketUpdate{SeatNumber: r.SeatNumber, Price: r.Price}
	if r.Status != nil {
		s := models.TicketStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// GET /api/tickets
func (d *deps) getTickets(c *gin.Context) {
	tickets, err := d.tickets.List(c.Request.Context())
	if err != nil {
		d.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// POST /api/tickets
func (d *deps) createTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	ticket, err := d.tickets.Create(c.Request.Context(), services.TicketInput{
		SeatNumber: req.SeatNumber,
		Price:      req.Price,
		Status:     models.TicketStatus(req.Status),
		EventID:    req.EventID,
	})
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(c.Request.Context(), utils.CacheTickets)
	c.JSON(http.StatusCreated, ticket)
}

// PUT /api/tickets/:id
func (d *deps) updateTicket(c *gin.Context) {
	ctx := c.Request.Context()
	ticket, err := d.tickets.Get(ctx, c.Param("id"))
	if err != nil {
		d.respondError(c, err)
		return
	}

	var req ticketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	updated, err := d.tickets.Update(ctx, ticket, req.update())
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(ctx, utils.CacheTickets)
	c.JSON(http.StatusOK, updated)
}

// PUT /api/tickets/:id/sell
func (d *deps) sellTicket(c *gin.Context) {
	ctx := c.Request.Context()
	ticket, err := d.tickets.Get(ctx, c.Param("id"))
	if err != nil {
		d.respondError(c, err)
		return
	}
	sold, err := d.tickets.MarkAsSold(ctx, ticket)
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(ctx, utils.CacheTickets)
	c.JSON(http.StatusOK, sold)
}

// DELETE /api/tickets/:id
func (d *deps) deleteTicket(c *gin.Context) {
	ctx := c.Request.Context()
	ticket, err := d.tickets.Get(ctx, c.Param("id"))
	if err != nil {
		d.respondError(c, err)
		return
	}
	if err := d.tickets.Delete(ctx, ticket); err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(ctx, utils.CacheTickets)
	c.Status(http.StatusNoContent)
}
