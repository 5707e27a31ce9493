package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ticketapi/services"
	"ticketapi/utils"
)

type eventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Capacity    int    `json:"capacity"`
	OrganizerID string `json:"organizerId"`
}

const msgBadDate = "Invalid date format."

// 接受 RFC 3339，以及沒有時區的 "2006-01-02 15:04:05" / "2006-01-02"（當作 UTC）
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true // 交給 service 回「必填」
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r eventRequest) input() (services.EventInput, bool) {
	date, ok := parseDate(r.Date)
	if !ok {
		return services.EventInput{}, false
	}
	return services.EventInput{
		Title:       r.Title,
		Date:        date,
		Venue:       r.Venue,
		Capacity:    r.Capacity,
		OrganizerID: r.OrganizerID,
	}, true
}

// bindEvent 解析 body；失敗時已經回過 400
func bindEvent(c *gin.Context) (services.EventInput, bool) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return services.EventInput{}, false
	}
	in, ok := req.input()
	if !ok {
		badRequest(c, msgBadDate)
		return services.EventInput{}, false
	}
	return in, true
}

// GET /api/events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.List(c.Request.Context())
	if err != nil {
		d.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/events/:id
func (d *deps) getEvent(c *gin.Context) {
	event, err := d.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		d.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /api/events
func (d *deps) createEvent(c *gin.Context) {
	in, ok := bindEvent(c)
	if !ok {
		return
	}
	event, err := d.events.Create(c.Request.Context(), in)
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(c.Request.Context(), utils.CacheEvents)
	c.JSON(http.StatusCreated, event)
}

// PUT /api/events/:id
func (d *deps) updateEvent(c *gin.Context) {
	in, ok := bindEvent(c)
	if !ok {
		return
	}
	event, err := d.events.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(c.Request.Context(), utils.CacheEvents)
	c.JSON(http.StatusOK, event)
}

// DELETE /api/events/:id（連同 tickets）
func (d *deps) deleteEvent(c *gin.Context) {
	if err := d.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(c.Request.Context(), utils.CacheEvents, utils.CacheTickets)
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
