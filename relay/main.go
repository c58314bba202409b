package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay/relay/auth"
	"relay/relay/config"
	"relay/relay/controllers"
	"relay/relay/middlewares"
	"relay/relay/routes"
	"relay/relay/services/agent"
	"relay/relay/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var verifier middlewares.TokenVerifier
	if cfg.AuthEnabled() {
		v, err := authVerifier(cfg)
		if err != nil {
			logging.ErrorLogger.Error("verifier init error", zap.Error(err))
			os.Exit(1)
		}
		verifier = v
	} else {
		logging.AppLogger.Warn("issuer settings missing; authenticated routes will answer 500")
	}

	var invoker agent.Invoker
	if cfg.AgentConfigured() {
		bedrock, err := agent.NewBedrockInvoker(ctx, cfg.Region, cfg.AgentID, cfg.AgentAliasID)
		if err != nil {
			logging.ErrorLogger.Error("bedrock client error", zap.Error(err))
			os.Exit(1)
		}
		invoker = bedrock
	} else {
		logging.AppLogger.Warn("agent settings missing; /api/chat will answer 500")
	}
	gateway := agent.NewGateway(invoker)

	healthCtrl := controllers.NewHealthController(cfg.AuthEnabled())
	chatCtrl := controllers.NewChatController(gateway)
	profileCtrl := controllers.NewProfileController()
	customerCtrl := controllers.NewCustomerController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/api/chat", routes.ChatRoutes(chatCtrl, verifier))
	r.Mount("/api/profile", routes.ProfileRoutes(profileCtrl, verifier))
	r.Mount("/api/customers", routes.CustomerRoutes(customerCtrl, verifier, cfg.CustomerSearchGroups))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}

func authVerifier(cfg config.Config) (middlewares.TokenVerifier, error) {
	v, err := auth.NewVerifier(cfg.IssuerURL, cfg.Audience, cfg.JWKSCacheTTL)
	if err != nil {
		return nil, err
	}
	return v, nil
}
