package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"southern-spoon-api/config"
	"southern-spoon-api/events"
	"southern-spoon-api/handlers"
	"southern-spoon-api/metrics"
	"southern-spoon-api/middleware"
	"southern-spoon-api/ordering"
	"southern-spoon-api/routes"
	"southern-spoon-api/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func serve(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	rules, err := cfg.PricingRules()
	if err != nil {
		return err
	}
	menu, err := config.LoadMenu(cfg.MenuFile)
	if err != nil {
		return err
	}

	kv, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(reg)
	orderMetrics := metrics.NewOrderMetrics(reg)

	logger := log.StandardLogger()
	manager := ordering.NewManager(ordering.Deps{
		Menu:            menu,
		Orders:          store.NewOrders(kv, logger),
		Rules:           rules,
		Clock:           ordering.SystemClock(loc),
		Events:          publisher,
		Recorder:        orderMetrics,
		ConfirmationTTL: cfg.ConfirmationTTL,
		Log:             logger,
	}, cfg.SessionTTL)
	go manager.Run(ctx, sweepInterval)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics(serverMetrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "Southern Spoon Ordering API",
			"version":  "1.0.0",
			"store":    cfg.StoreDriver,
			"sessions": manager.Len(),
		})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍛 Welcome to the Southern Spoon Ordering API",
			"docs":    "/api/state-machine",
			"menu":    "/api/menu",
			"health":  "/health",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))

	h := handlers.New(manager, []byte(cfg.JWTSecret), cfg.AdminPasswordHash, logger)
	routes.SetupRoutes(r, h)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server shutdown")
		}
	}()

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("👋 server stopped")
	return nil
}

func newPublisher(cfg *config.Config) events.Publisher {
	brokers := events.ParseBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		return events.Noop{}
	}
	log.WithFields(log.Fields{"brokers": brokers, "topic": cfg.KafkaTopic}).Info("publishing order events to Kafka")
	return events.NewKafka(brokers, cfg.KafkaTopic)
}
