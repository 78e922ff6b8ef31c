package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/mw"
	"room-reservation-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	handler := NewHandler(s, cfg, webpushOptions, log)

	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	responses := mw.NewResponseCache(cache.New(ttl, 2*ttl))
	caching := responses.Cache(ttl)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(limiter), responses.Invalidate())
	{
		api.GET("/rooms", caching, handler.GetRooms)
		api.GET("/slots", caching, handler.GetSlots)

		api.GET("/reservations", caching, handler.ListReservations)
		api.POST("/reservations", handler.CreateReservation)
		api.PUT("/reservations", handler.ReplaceReservations)
		api.DELETE("/reservations/:id", handler.CancelReservation)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
