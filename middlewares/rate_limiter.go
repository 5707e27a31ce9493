package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type LimiterConfig struct {
	RPS     float64       // 穩態速率
	Burst   int           // 允許的突發
	IdleTTL time.Duration // bucket 閒置多久就回收
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 是 in-process 的 per-key token bucket；多台機器之間不共享
type RateLimiter struct {
	conf LimiterConfig

	mu      sync.Mutex
	buckets map[string]*bucket

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter 會起一個 janitor goroutine，記得呼叫 Stop
func NewRateLimiter(conf LimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		conf:    conf,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

func (rl *RateLimiter) janitor() {
	every := rl.conf.IdleTTL / 2
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

// sweep 回收閒置的 bucket，回傳回收了幾個
func (rl *RateLimiter) sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := 0
	for k, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.conf.IdleTTL {
			delete(rl.buckets, k)
			n++
		}
	}
	return n
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) bucketFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(rl.conf.RPS), rl.conf.Burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

// KeySelector 決定用什麼分桶（IP、IP+路徑…）
type KeySelector func(c *gin.Context) string

// Middleware 沒有令牌就 429，Retry-After 是下一個令牌的秒數（無條件進位）
func (rl *RateLimiter) Middleware(selectKey KeySelector) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		lim := rl.bucketFor(selectKey(c), now)

		if !lim.AllowN(now, 1) {
			c.Header("Retry-After", strconv.Itoa(retryAfter(lim, now)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

func retryAfter(lim *rate.Limiter, now time.Time) int {
	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return 1
	}
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
