package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	authhandler "github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/handler"
	authrepo "github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/repository"
	authservice "github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/service"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/jwt"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/handler"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/config"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/messaging"
)

const serviceName = "schedule-api"

func main() {
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment)

	// Database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Redis calendar cache. The cache is optional: when Redis is not
	// reachable the API serves every view from the database.
	var rdb *redis.Client
	{
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, calendar cache disabled")
			client.Close()
		} else {
			rdb = client
			defer client.Close()
		}
		cancel()
	}
	calCache := cache.New(rdb, cfg.Redis.CacheTTL, log)

	// RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	defer rmq.Close()

	publisher, err := events.NewSchedulePublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	templateRepo := repository.NewShiftTemplateRepository(db)
	weekTemplateRepo := repository.NewWeekTemplateRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	userRepo := authrepo.NewUserRepository(db)

	// Services
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	authSvc := authservice.NewAuthService(userRepo, jwtManager, log)
	employeeSvc := service.NewEmployeeService(employeeRepo, shiftRepo, publisher, calCache, log)
	shiftSvc := service.NewShiftService(shiftRepo, employeeRepo, publisher, calCache, log)
	templateSvc := service.NewTemplateService(templateRepo, weekTemplateRepo, shiftRepo, publisher, calCache, log)
	calendarSvc := service.NewCalendarService(shiftRepo, employeeRepo, calCache, log)
	timeclockSvc := service.NewTimeclockService(timeEntryRepo, employeeRepo, publisher, log)

	// Shift reminder job
	if cfg.Reminder.Enabled {
		reminderSvc := service.NewReminderService(shiftRepo, publisher, cfg.Reminder.Spec, log)
		if err := reminderSvc.Start(); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.Reminder.Spec).Msg("failed to schedule shift reminders")
		}
		defer reminderSvc.Stop()
	}

	// Router
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(chimiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler(db, calCache, rmq))

	authhandler.NewAuthHandler(authSvc).RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtManager))

		handler.NewEmployeeHandler(employeeSvc).RegisterRoutes(r)
		handler.NewShiftHandler(shiftSvc).RegisterRoutes(r)
		handler.NewTemplateHandler(templateSvc).RegisterRoutes(r)
		handler.NewCalendarHandler(calendarSvc).RegisterRoutes(r)
		handler.NewTimeclockHandler(timeclockSvc).RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

func healthHandler(db *database.DB, calCache *cache.CalendarCache, rmq *messaging.RabbitMQ) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]map[string]string{
			"database": db.Health(ctx),
			"cache":    calCache.Health(ctx),
			"rabbitmq": rmq.Health(),
		}

		status := http.StatusOK
		for _, check := range checks {
			if check["status"] == "down" {
				status = http.StatusServiceUnavailable
				break
			}
		}

		httputil.JSON(w, status, map[string]interface{}{
			"service": serviceName,
			"checks":  checks,
		})
	}
}
