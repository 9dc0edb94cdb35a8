package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"prorent/internal/app/commands"
	"prorent/internal/app/dto"
	availabilityapp "prorent/internal/app/handlers/availability"
	pricingapp "prorent/internal/app/handlers/pricing"
	reservationsapp "prorent/internal/app/handlers/reservations"
	"prorent/internal/app/middleware"
	"prorent/internal/app/queries"
	"prorent/internal/domain/access"
	"prorent/internal/domain/reservation"
	"prorent/internal/infra/backend"
	"prorent/internal/infra/config"
	ginserver "prorent/internal/infra/http/gin"
	"prorent/internal/infra/obs"
	"prorent/internal/infra/storage/memory"
	redisstore "prorent/internal/infra/storage/redis"
	"prorent/internal/infra/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dotenvErr := config.LoadDotEnv()
	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env, os.Getenv("LOG_LEVEL"))
	if dotenvErr != nil {
		logger.Warn(".env load failed", "error", dotenvErr)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg = config.Defaults()
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, app.health, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "backend", cfg.BackendURL, "redis", cfg.UsesRedis())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	health   obs.HealthHandlers
	close    func()
}

type stores struct {
	cache       backend.Cache
	drafts      reservation.DraftStore
	idempotency middleware.IdempotencyStore
	checks      map[string]obs.Check
	close       func()
}

func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	if !cfg.UsesRedis() {
		logger.Info("using in-memory stores")
		return stores{
			cache:       memory.NewCache(),
			drafts:      memory.NewDraftStore(cfg.DraftTTL),
			idempotency: memory.NewIdempotencyStore(cfg.IdempotencyTTL),
			close:       func() {},
		}, nil
	}
	rdb, err := redisstore.Connect(ctx, redisstore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return stores{}, err
	}
	logger.Info("redis connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return stores{
		cache:       redisstore.NewCache(rdb),
		drafts:      redisstore.NewDraftStore(rdb, cfg.DraftTTL),
		idempotency: redisstore.NewIdempotencyStore(rdb, cfg.IdempotencyTTL),
		checks:      map[string]obs.Check{"redis": redisstore.Ping(rdb)},
		close:       func() { closeRedis(rdb, logger) },
	}, nil
}

func closeRedis(rdb *goredis.Client, logger *slog.Logger) {
	if err := rdb.Close(); err != nil {
		logger.Warn("redis close failed", "error", err)
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	st, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return application{}, err
	}

	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)
	catalog := &backend.CachedCatalog{Source: client, Cache: st.cache, TTL: cfg.CacheTTL, Logger: logger}
	guard := access.Guard{LoginPath: cfg.LoginPath, Homes: access.DefaultGuard().Homes}
	validator := validation.New()

	commandBus := commands.NewInMemoryBus()
	submitHandler := &reservationsapp.SubmitReservationHandler{
		Catalog: client,
		Gateway: client,
		Drafts:  st.drafts,
		Logger:  logger,
	}
	commands.RegisterHandler[reservationsapp.SubmitReservationCommand, *reservation.Receipt](commandBus, reservationsapp.SubmitReservationCommand{}.Key(), submitHandler)

	queryBus := queries.NewInMemoryBus()
	priceMapHandler := &pricingapp.GetPriceMapHandler{Catalog: catalog, Logger: logger}
	queries.RegisterHandler[pricingapp.GetPriceMapQuery, dto.PriceMap](queryBus, pricingapp.GetPriceMapQuery{}.Key(), priceMapHandler)
	calendarHandler := &pricingapp.GetPriceCalendarHandler{Catalog: catalog, WindowDays: cfg.CalendarWindowDays, Logger: logger}
	queries.RegisterHandler[pricingapp.GetPriceCalendarQuery, dto.PriceCalendar](queryBus, pricingapp.GetPriceCalendarQuery{}.Key(), calendarHandler)
	rangeHandler := &availabilityapp.ValidateRangeHandler{Catalog: catalog, Logger: logger}
	queries.RegisterHandler[availabilityapp.ValidateRangeQuery, dto.RangeValidation](queryBus, availabilityapp.ValidateRangeQuery{}.Key(), rangeHandler)

	drafts := &reservationsapp.DraftHandlers{Store: st.drafts}
	drafts.Register(commandBus, queryBus)

	authz := middleware.RoleAuthorizer{Guard: guard}
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Authorization(authz),
		middleware.Validation(validator),
		middleware.Idempotency(st.idempotency, nil),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryAuthorization(authz),
		middleware.QueryValidation(validator),
	)

	sessions := ginserver.SessionMiddleware{SessionCookie: cfg.SessionCookie, RoleCookie: cfg.RoleCookie}
	return application{
		handlers: ginserver.Handlers{
			Pricing: ginserver.PricingHandler{
				Queries: queryBusWithMiddleware,
				Logger:  logger,
			},
			Reservations: ginserver.ReservationHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Logger:   logger,
			},
			Session: ginserver.SessionHandler{
				Guard:   guard,
				Routes:  access.DefaultRoutes(),
				Cookies: sessions,
				Secure:  cfg.Env != "dev" && cfg.Env != "local",
				MaxAge:  cfg.SessionMaxAge,
			},
			Forms:    ginserver.FormsHandler{Validator: validator},
			Sessions: sessions,
			Guard:    guard,
		},
		health: obs.HealthHandlers{Checks: st.checks},
		close:  st.close,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
