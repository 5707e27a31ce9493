package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketapi/services"
	"ticketapi/utils"
)

type organizerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r organizerRequest) input() services.OrganizerInput {
	return services.OrganizerInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Password: r.Password}
}

// GET /api/organizers
func (d *deps) getOrganizers(c *gin.Context) {
	organizers, err := d.organizers.FindAll(c.Request.Context())
	if err != nil {
		d.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, organizers)
}

// POST /api/organizers
func (d *deps) createOrganizer(c *gin.Context) {
	var req organizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	organizer, err := d.organizers.Create(c.Request.Context(), req.input())
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(c.Request.Context(), utils.CacheOrganizers)
	c.JSON(http.StatusCreated, organizer)
}

// PUT /api/organizers/:id（需要 token）
func (d *deps) updateOrganizer(c *gin.Context) {
	ctx := c.Request.Context()
	organizer, err := d.organizers.Get(ctx, c.Param("id"))
	if err != nil {
		d.respondError(c, err)
		return
	}

	var req organizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	updated, err := d.organizers.Update(ctx, organizer, req.input())
	if err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(ctx, utils.CacheOrganizers)
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/organizers/:id（需要 token；連同 events、tickets）
func (d *deps) deleteOrganizer(c *gin.Context) {
	ctx := c.Request.Context()
	organizer, err := d.organizers.Get(ctx, c.Param("id"))
	if err != nil {
		d.respondError(c, err)
		return
	}
	if err := d.organizers.Delete(ctx, organizer); err != nil {
		d.respondError(c, err)
		return
	}
	d.inv.Purge(ctx, utils.CacheOrganizers, utils.CacheEvents, utils.CacheTickets)
	c.Status(http.StatusNoContent)
}

// POST /api/organizers/login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	token, err := d.organizers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		d.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}
