package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ticketapi/middlewares"
	"ticketapi/services"
	"ticketapi/utils"
)

// Deps 由 main 組好傳進來
type Deps struct {
	Organizers *services.OrganizerService
	Events     *services.EventService
	Tickets    *services.TicketService

	Logger   *zap.Logger
	APIToken string

	// Redis 可以是 nil：沒有回應快取與 login quota，Invalidator 也會是 nil
	Redis            *redis.Client
	Invalidator      *utils.CacheInvalidator
	CacheTTL         time.Duration
	LoginQuota       int
	LoginQuotaWindow time.Duration

	// 全域 per-IP 限速；0 用預設 20 rps / 40 burst
	GlobalRPS   float64
	GlobalBurst int

	Ping func(ctx context.Context) error
}

type deps struct {
	organizers *services.OrganizerService
	events     *services.EventService
	tickets    *services.TicketService
	log        *zap.Logger
	inv        *utils.CacheInvalidator
	ping       func(ctx context.Context) error
}

// RegisterRoutes 依序掛上全域限速、回應快取、/api 路由與維運 endpoints。
// 快取必須在限速之後，HIT 一樣要扣令牌。回傳的 stop 會停掉限速器的背景清理。
func RegisterRoutes(server *gin.Engine, in Deps) (stop func()) {
	log := in.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := &deps{
		organizers: in.Organizers,
		events:     in.Events,
		tickets:    in.Tickets,
		log:        log,
		inv:        in.Invalidator,
		ping:       in.Ping,
	}

	// ① 全域 IP 限速（預設 20 rps / 40 burst）
	rps, burst := in.GlobalRPS, in.GlobalBurst
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = 40
	}
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     rps,
		Burst:   burst,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	if in.Redis != nil && in.CacheTTL > 0 {
		server.Use(middlewares.ResponseCache(in.Redis, in.CacheTTL))
	}

	// ② 登入更嚴：每個 IP 1 rps / 5 burst，另外有 Redis 的長期配額
	loginLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	login := []gin.HandlerFunc{
		loginLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
	}
	if in.Redis != nil && in.LoginQuota > 0 {
		login = append(login, middlewares.Quota(in.Redis, middlewares.QuotaRule{
			Limit:  in.LoginQuota,
			Window: in.LoginQuotaWindow,
			KeyFn:  func(c *gin.Context) string { return "quota:login:" + c.ClientIP() },
		}))
	}
	login = append(login, d.login)

	api := server.Group("/api")

	events := api.Group("/events")
	events.GET("", d.getEvents)
	events.POST("", d.createEvent)
	events.GET("/:id", d.getEvent)
	events.PUT("/:id", d.updateEvent)
	events.DELETE("/:id", d.deleteEvent)

	// 只有 organizer 的 PUT / DELETE 要 token
	requireToken := middlewares.RequireToken(in.APIToken)
	organizers := api.Group("/organizers")
	organizers.GET("", d.getOrganizers)
	organizers.POST("", d.createOrganizer)
	organizers.POST("/login", login...)
	organizers.PUT("/:id", requireToken, d.updateOrganizer)
	organizers.DELETE("/:id", requireToken, d.deleteOrganizer)

	tickets := api.Group("/tickets")
	tickets.GET("", d.getTickets)
	tickets.POST("", d.createTicket)
	tickets.PUT("/:id", d.updateTicket)
	tickets.DELETE("/:id", d.deleteTicket)
	tickets.PUT("/:id/sell", d.sellTicket)

	server.GET("/health", d.health)
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return func() {
		globalLimiter.Stop()
		loginLimiter.Stop()
	}
}

// GET /health
func (d *deps) health(c *gin.Context) {
	if d.ping != nil {
		if err := d.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
