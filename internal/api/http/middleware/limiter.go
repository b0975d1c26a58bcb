package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
)

const (
	defaultLoginPerMinute  = 10
	defaultPublicPerMinute = 30
	globalPerMinute        = 120
)

// NewGlobalLimiter applies a coarse per-IP ceiling across the whole API.
func NewGlobalLimiter(rdb *redis.Client) fiber.Handler {
	return newLimiter(rdb, globalPerMinute, "rl:global")
}

// NewLoginLimiter throttles credential guessing on the login route.
// State lives in Redis so the limit holds across instances.
func NewLoginLimiter(rdb *redis.Client, cfg *config.Config) fiber.Handler {
	max := cfg.Server.RateLimit.LoginPerMinute
	if max <= 0 {
		max = defaultLoginPerMinute
	}
	return newLimiter(rdb, max, "rl:login")
}

// NewPublicLimiter throttles the unauthenticated website endpoints.
func NewPublicLimiter(rdb *redis.Client, cfg *config.Config) fiber.Handler {
	max := cfg.Server.RateLimit.PublicPerMinute
	if max <= 0 {
		max = defaultPublicPerMinute
	}
	return newLimiter(rdb, max, "rl:public")
}

func newLimiter(rdb *redis.Client, max int, prefix string) fiber.Handler {
	return limiter.New(limiter.Config{
		Storage: fiberredis.NewFromConnection(rdb),

		// sliding window, keyed per scope so login and public counters
		// never share a bucket
		Max:               max,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c fiber.Ctx) string {
			return prefix + ":" + c.IP()
		},
	})
}
