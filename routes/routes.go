package routes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventapi/middlewares"
	"eventapi/models"
	"eventapi/monitoring"
	"eventapi/services"
	"eventapi/utils"
)

// Options carries the boundary-level knobs that come from configuration.
type Options struct {
	UploadDir  string
	DailyQuota int
}

// deps is the handler dependency container filled in by RegisterRoutes.
type deps struct {
	svc       *services.EventService
	users     models.UserRepository
	inv       *utils.CacheInvalidator
	uploadDir string
}

func RegisterRoutes(
	server *gin.Engine,
	svc *services.EventService,
	users models.UserRepository,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
	opts Options,
) {
	if opts.UploadDir == "" {
		opts.UploadDir = "public/images"
	}
	if opts.DailyQuota <= 0 {
		opts.DailyQuota = 2000
	}
	d := &deps{svc: svc, users: users, inv: inv, uploadDir: opts.UploadDir}

	server.Use(monitoring.RequestMetrics())

	// Global per-IP limit against bursty clients.
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// Stricter limit on credential endpoints.
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/signup",
		authLimiter.Middleware(func(c *gin.Context) string { return "signup:" + c.ClientIP() }),
		d.signup,
	)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// Authenticated group: identity first, then per-user limit and
	// daily quota keyed on the verified user id.
	auth := server.Group("/")
	auth.Use(middlewares.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	auth.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))

	auth.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  opts.DailyQuota,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	}))

	// Public endpoints: only the global IP limit and the response cache.
	server.GET("/events", d.getEvents)
	server.GET("/events/:id", d.getEvent)
	server.GET("/metrics", gin.WrapH(monitoring.Handler()))

	auth.POST("/events", d.createEvent)
	auth.PUT("/events/:id", d.updateEvent)
	auth.DELETE("/events/:id", d.deleteEvent)
	auth.POST("/events/:id/register", d.registerForEvent)
	auth.DELETE("/events/:id/register", d.cancelRegistration)
}
