package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/healthycorner/site-api/internal/config"
	"github.com/healthycorner/site-api/internal/database"
	"github.com/healthycorner/site-api/internal/handler"
	"github.com/healthycorner/site-api/internal/middleware"
	"github.com/healthycorner/site-api/internal/notify"
	"github.com/healthycorner/site-api/internal/queue"
	"github.com/healthycorner/site-api/internal/repository"
	"github.com/healthycorner/site-api/internal/router"
	"github.com/healthycorner/site-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	repos := repository.NewSet(db)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := repos.Users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
		if created {
			log.Printf("created admin account %s", cfg.AdminEmail)
		}
	}

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	queueCfg := config.LoadQueueConfig()
	var events service.Publisher = service.NopPublisher{}
	if queueCfg.Enabled {
		events = service.NewRabbitPublisher(queueCfg.URL)
		if queueCfg.Consumer {
			go runConsumer(ctx, queueCfg, config.LoadMailConfig())
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("1M"))

	limit := middleware.NewTokenBucket(rlCfg, rdb)
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, repos.Users, repos.Tokens), cfg.JWTSecret, limit)
	router.RegisterPublic(e,
		handler.NewPublicHandler(repos, events, cfg.TaxRatePercent),
		middleware.NewRedisCache(cacheCfg, rdb),
		limit,
	)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(repos, middleware.NewCachePurger(rdb, cacheCfg.Prefix)),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func runConsumer(ctx context.Context, qc config.QueueConfig, mc config.MailConfig) {
	c := &queue.Consumer{URL: qc.URL, LogDir: mc.LogDir, AdminEmail: mc.AdminEmail}
	if m := notify.NewSMTPMailer(mc); m != nil {
		c.Mailer = m
	}
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("notify-consumer: %v", err)
	}
}
