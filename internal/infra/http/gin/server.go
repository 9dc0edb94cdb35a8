package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"prorent/internal/domain/access"
	"prorent/internal/infra/config"
	"prorent/internal/infra/obs"
)

type PricingHTTP interface {
	PriceMap(c *gin.Context)
	Calendar(c *gin.Context)
	ValidateRange(c *gin.Context)
}

type ReservationHTTP interface {
	Create(c *gin.Context)
	GetDraft(c *gin.Context)
	SaveDraft(c *gin.Context)
	DiscardDraft(c *gin.Context)
}

type SessionHTTP interface {
	Current(c *gin.Context)
	Store(c *gin.Context)
	Clear(c *gin.Context)
	CheckPage(c *gin.Context)
}

type FormsHTTP interface {
	PeakRate(c *gin.Context)
}

type Handlers struct {
	Pricing      PricingHTTP
	Reservations ReservationHTTP
	Session      SessionHTTP
	Forms        FormsHTTP
	Sessions     SessionMiddleware
	Guard        access.Guard
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = config.Defaults().CORSOrigins
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", IdempotencyHeader, RoleHeader},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			obs.RequestIDHeader,
		},
		MaxAge: 12 * time.Hour,
	}))
	router.Use(h.Sessions.Handle)

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Pricing != nil {
		rooms := api.Group("/room-types/:id")
		rooms.GET("/price-map", h.Pricing.PriceMap)
		rooms.GET("/calendar", h.Pricing.Calendar)
		rooms.POST("/validate-range", h.Pricing.ValidateRange)
	}
	if h.Reservations != nil {
		guests := api.Group("/reservations", RequireRoles(h.Guard, access.RoleUser))
		guests.POST("", h.Reservations.Create)
		guests.GET("/draft", h.Reservations.GetDraft)
		guests.PUT("/draft", h.Reservations.SaveDraft)
		guests.DELETE("/draft", h.Reservations.DiscardDraft)
	}
	if h.Session != nil {
		api.GET("/session", h.Session.Current)
		api.PUT("/session", h.Session.Store)
		api.DELETE("/session", h.Session.Clear)
		api.GET("/guard", h.Session.CheckPage)
	}
	if h.Forms != nil {
		api.POST("/forms/peak-rate/validate", RequireRoles(h.Guard, access.RoleOwner), h.Forms.PeakRate)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
