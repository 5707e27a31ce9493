package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// QuotaRule 是固定視窗計數：Window 內最多 Limit 次
type QuotaRule struct {
	Limit  int
	Window time.Duration
	KeyFn  func(*gin.Context) string // 回空字串就不計
}

// INCR 與 PEXPIRE 在同一支 script 裡，原子執行；新 key 才設 TTL
var quotaScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Quota 把登入之類的長期配額放在 Redis，多台機器共用；Redis 不通時放行
func Quota(rdb *redis.Client, rule QuotaRule) gin.HandlerFunc {
	window := strconv.FormatInt(rule.Window.Milliseconds(), 10)
	return func(c *gin.Context) {
		key := rule.KeyFn(c)
		if key == "" {
			c.Next()
			return
		}

		res, err := quotaScript.Run(c.Request.Context(), rdb, []string{key}, window).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		used, ttl := res[0], time.Duration(res[1])*time.Millisecond

		c.Header("X-Quota-Used", strconv.FormatInt(used, 10)+"/"+strconv.Itoa(rule.Limit))
		if used > int64(rule.Limit) {
			if ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Usage quota exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
