package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"defi_compare/internal/app/port"
	"defi_compare/internal/app/provider"
	"defi_compare/internal/app/service"
	"defi_compare/internal/infrastructure/configloader"
	"defi_compare/internal/infrastructure/httpclient"
	"defi_compare/internal/infrastructure/restapi"
	"defi_compare/internal/pkg/logger"
	"defi_compare/internal/pkg/utils"
)

func main() {
	// Bootstrap logger for everything that happens before the config is
	// loaded.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	// .env is optional; real deployments export the variables directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to load .env file: %v", err)
	}

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
	logger.SetSlogDefault(zapLogger)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	providers := buildProviders(cfg, zapLogger)
	if len(providers) == 0 {
		zapLogger.Warn("No provider credentials configured; all data endpoints will return 503")
	}

	compareSvc := service.NewCompareService(zapLogger)
	defiSvc := service.NewDefiDataService(
		providers,
		compareSvc,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		zapLogger,
	)

	defiHandler := restapi.NewDefiHandler(defiSvc, zapLogger)
	router := restapi.SetupRouter(defiHandler, zapLogger)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}

// buildProviders registers a provider only when its credential is present,
// so a misconfigured source fails with a clear configuration error instead
// of an authentication failure deep in a fetch.
func buildProviders(cfg *configloader.Config, zapLogger *zap.Logger) []port.PositionProvider {
	var providers []port.PositionProvider

	if cfg.Zerion.APIKey != "" {
		zerionClient := httpclient.NewZerionClient(
			cfg.Zerion.BaseURL,
			cfg.Zerion.APIKey,
			time.Duration(cfg.Zerion.RequestTimeoutMillis)*time.Millisecond,
			httpclient.RetryPolicy{
				MaxAttempts:       cfg.Zerion.MaxAttempts,
				ProcessingBackoff: time.Duration(cfg.Zerion.ProcessingBackoffMs) * time.Millisecond,
				RateLimitBackoff:  time.Duration(cfg.Zerion.RateLimitBackoffMs) * time.Millisecond,
			},
			zapLogger,
		)
		providers = append(providers, provider.NewZerionProvider(zerionClient, zapLogger))
		zapLogger.Info("Zerion provider initialized")
	} else {
		zapLogger.Warn("ZERION_API_KEY not set; zerion provider disabled")
	}

	if cfg.Debank.AccessKey != "" {
		debankClient := httpclient.NewDebankClient(
			cfg.Debank.BaseURL,
			cfg.Debank.AccessKey,
			time.Duration(cfg.Debank.RequestTimeoutMillis)*time.Millisecond,
			httpclient.RetryPolicy{
				MaxAttempts:       cfg.Debank.MaxAttempts,
				ProcessingBackoff: time.Duration(cfg.Debank.ProcessingBackoffMs) * time.Millisecond,
				RateLimitBackoff:  time.Duration(cfg.Debank.RateLimitBackoffMs) * time.Millisecond,
			},
			cfg.Debank.RequestsPerSecond,
			zapLogger,
		)
		providers = append(providers, provider.NewDebankProvider(debankClient, cfg.Performance.MaxConcurrentChains, zapLogger))
		zapLogger.Info("DeBank provider initialized")
	} else {
		zapLogger.Warn("DEBANK_ACCESS_KEY not set; debank provider disabled")
	}

	return providers
}
