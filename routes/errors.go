package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticketapi/services"
)

const msgBadRequest = "Could not parse request data."

// respondError 把 service 的錯誤類型對應到 HTTP 狀態碼
func (d *deps) respondError(c *gin.Context, err error) {
	var (
		verr *services.ValidationError
		nf   *services.NotFoundError
		cf   *services.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Message})
	case errors.As(err, &cf):
		c.JSON(http.StatusConflict, gin.H{"message": cf.Message})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	default:
		d.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong. Try again later."})
	}
}

func badRequest(c *gin.Context, msgs ...string) {
	if len(msgs) == 0 {
		msgs = []string{msgBadRequest}
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
}
