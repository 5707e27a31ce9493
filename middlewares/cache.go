package middlewares

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type cachedBody struct {
	Status      int
	ContentType string
	Body        []byte
}

// 把 路徑+參數 轉成 SHA1，避免 Redis key 太長
func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKeyFrom 依資源分命名空間，方便失效：
// /api/<res>      → cache:<res>:list:<sha1>
// /api/<res>/:id  → cache:<res>:item:<sha1>
// 不是 GET 或不是 /api 底下就回空字串（不快取）
func CacheKeyFrom(c *gin.Context) (string, string) {
	method := c.Request.Method
	path := c.FullPath() // 路由模板，例如 /api/events/:id
	rawq := c.Request.URL.RawQuery

	if method != "GET" || !strings.HasPrefix(path, "/api/") {
		return "", ""
	}

	parts := strings.Split(strings.TrimPrefix(path, "/api/"), "/")
	res := parts[0]
	switch {
	case len(parts) == 1:
		return "cache:" + res + ":list:" + sha1Hex("GET|/api/"+res+"|"+rawq), "list"
	case len(parts) == 2 && parts[1] == ":id":
		return "cache:" + res + ":item:" + sha1Hex("GET|/api/"+res+"/"+c.Param("id")), "item"
	default:
		return "", ""
	}
}

// ResponseCache 快取 /api 底下的 GET 2xx 回應；寫入端要自己呼叫 CacheInvalidator.Purge
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, _ := CacheKeyFrom(c)
		if key == "" || ttl <= 0 {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		if hit, ok := loadCached(ctx, rdb, key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(hit.Status, hit.ContentType, hit.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		bw := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		if status := bw.Status(); status >= 200 && status < 300 && status != http.StatusNoContent {
			storeCached(ctx, rdb, key, ttl, cachedBody{
				Status:      status,
				ContentType: bw.Header().Get("Content-Type"),
				Body:        bw.buf.Bytes(),
			})
		}
	}
}

func loadCached(ctx context.Context, rdb *redis.Client, key string) (cachedBody, bool) {
	var hit cachedBody
	b, err := rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return hit, false
	}
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err != nil {
		return hit, false
	}
	return hit, true
}

// Redis 寫不進去就算了，下次再 miss
func storeCached(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, item cachedBody) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(item); err != nil {
		return
	}
	_ = rdb.Set(ctx, key, buf.Bytes(), ttl).Err()
}

// bufferedWriter 一邊寫給 client，一邊留一份給快取
type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
