package main

import (
	"auth-service/config"
	"auth-service/internal/handler"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"auth-service/internal/security"
	"auth-service/internal/service"
	"auth-service/internal/util"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func serve(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	// без ключа подписи сервис не стартует
	var keySource ports.KeyObjectSource
	if cfg.Keys.Source == "s3" {
		s3Service, err := service.NewS3Service(ctx, &cfg.Keys.S3)
		if err != nil {
			return fmt.Errorf("s3 key source: %w", err)
		}
		keySource = s3Service
	}
	keys, err := security.LoadKeyMaterial(ctx, &cfg.Keys, keySource)
	if err != nil {
		return err
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("database close", "error", err)
		}
	}()

	if err := config.Migrate(ctx, db, "up"); err != nil {
		return err
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close", "error", err)
		}
	}()

	accessVerifier, err := security.NewAccessTokenVerifier(&cfg.JWT, keys)
	if err != nil {
		return err
	}
	refreshVerifier, err := security.NewRefreshTokenVerifier(&cfg.JWT)
	if err != nil {
		return err
	}
	issuer := security.NewTokenIssuer(&cfg.JWT, keys)
	credentials := security.NewBcryptVerifier(bcrypt.DefaultCost)

	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.UserCache)*time.Second)

	authService := service.NewAuthenticationService(refreshRepo, userRepo, issuer, credentials, &cfg.JWT,
		service.WithUserCache(cacheRepo))
	userService := service.NewUserService(userRepo, cacheRepo, credentials)
	tenantService := service.NewTenantService(tenantRepo)

	if _, err := userService.SeedAdmin(ctx, model.UserData{
		Firstname: cfg.Admin.Firstname,
		Lastname:  cfg.Admin.Lastname,
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	janitor := service.NewRefreshTokenJanitor(refreshRepo, cfg.JanitorInterval())
	go janitor.Run(ctx)

	srv, router := config.SetupServer(cfg.ServerAddr)
	routes := &handler.Router{
		Auth:    handler.NewAuthenticationHandler(authService, handler.NewCookieWriter(&cfg.Cookie, &cfg.JWT)),
		Users:   handler.NewUserHandler(userService),
		Tenants: handler.NewTenantHandler(tenantService),
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"database": db,
			"redis":    redisClient,
		}),
		AccessVerifier:  accessVerifier,
		RefreshVerifier: refreshVerifier,
		Liveness:        authService,
	}
	routes.Register(router)

	return runServer(ctx, srv)
}

func runServer(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChannel)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-signalChannel:
		slog.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
