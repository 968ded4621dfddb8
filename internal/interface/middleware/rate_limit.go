package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/JoaquinVilchez/business-manager-api/pkg/response"
)

const CodeRateLimited = "rate_limited"

var errRateReply = errors.New("unexpected rate limit reply")

// ipFromCtx prefers the address resolved by RealIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc lets a request skip the limiter when it returns true.
type AllowFunc func(*gin.Context) bool

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath counts each route separately per client IP.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		return "rl:route:" + route + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID counts authenticated callers by user id and anonymous ones by IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetInt64(CtxUserIDKey); uid != 0 {
			return "rl:user:" + strconv.FormatInt(uid, 10)
		}
		return "rl:anon:ip:" + ipFromCtx(c)
	}
}

// Limit is a fixed window: at most Max requests per Window for each key.
type Limit struct {
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

// hitScript counts one request and returns {count, remaining ttl in ms}.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// window is the state of one bucket after a hit.
type window struct {
	count int64
	ttl   time.Duration
}

func (w window) remaining(max int) int {
	if r := int64(max) - w.count; r > 0 {
		return int(r)
	}
	return 0
}

// resetSeconds rounds the ttl up so clients never retry early.
func (w window) resetSeconds() int {
	if w.ttl <= 0 {
		return 0
	}
	return int((w.ttl + time.Second - 1) / time.Second)
}

func hit(c *gin.Context, rdb *redis.Client, key string, span time.Duration) (window, error) {
	res, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, span.Milliseconds()).Int64Slice()
	if err != nil {
		return window{}, err
	}
	if len(res) != 2 {
		return window{}, errRateReply
	}
	return window{count: res[0], ttl: time.Duration(res[1]) * time.Millisecond}, nil
}

// RateLimit enforces l on every request using redis counters. Redis errors
// let the request through; a nil client disables the limiter.
func RateLimit(rdb *redis.Client, l Limit) gin.HandlerFunc {
	if rdb == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Allow != nil && l.Allow(c)) {
			c.Next()
			return
		}

		w, err := hit(c, rdb, l.Key(c), l.Window)
		if err != nil {
			c.Next()
			return
		}
		reset := w.resetSeconds()
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(w.remaining(l.Max)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if w.count > int64(l.Max) {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			response.Error(c, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
