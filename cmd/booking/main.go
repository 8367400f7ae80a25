package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"tripbook/cfg"
	"tripbook/internal/booking"
	"tripbook/pkg/bookingclient"
	"tripbook/pkg/cache"
	"tripbook/pkg/idgen"
	"tripbook/pkg/logger"

	_ "tripbook/cmd/booking/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Trip Booking API
// @version         1.0
// @description     Booking sessions for trips: seat selection, price reconciliation, submission and invoices.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := initOtel(context.Background(), &config.Observability, zlogger)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			log.Printf("failed to shutdown OpenTelemetry: %v", err)
		}
	}()

	// ============
	// Cache
	// ============
	var sessionCache cache.Cache
	if config.Redis.Enabled() {
		redisAddr := config.Redis.Host + ":" + config.Redis.Port
		sessionCache = cache.NewRedisCache(redisAddr, config.Redis.Password)
	} else {
		zlogger.Warn("REDIS_HOST not set, keeping sessions in process memory")
		sessionCache = cache.NewMemoryCache()
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: time.Duration(config.BookingAPI.TimeoutSeconds) * time.Second,
	}
	bookingAPI := bookingclient.NewClient(httpClient, config.BookingAPI.BaseURL, zlogger)

	ids, err := idgen.NewSnowflakeGenerator(config.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Internal Service
	// ============
	sessions := booking.NewSessionStore(sessionCache, time.Duration(config.SessionTTLMinutes)*time.Minute)
	bookingSvc := booking.NewService(bookingAPI, sessions, ids, config.DisplayCurrency, zlogger)
	bookingHandler := booking.NewBookingHandler(bookingSvc)

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(CORS(config.AllowedOrigins))
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(TraceLoggerMiddleware(zlogger))

	bookingHandler.RegisterRoutes(r)
	initSwagger(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.AppPort),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlogger.Info("Booking API listening", logger.Field{Key: "addr", Value: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("Server shutdown failed", logger.Err(err))
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>Trip Booking API</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(http.StatusOK, html)
	})
}
