package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "github.com/iPad7/gantt-4team/internal/adapter/db"
	httpadapter "github.com/iPad7/gantt-4team/internal/adapter/http"
	"github.com/iPad7/gantt-4team/internal/adapter/http/handlers"
	httpmiddleware "github.com/iPad7/gantt-4team/internal/adapter/http/middleware"
	"github.com/iPad7/gantt-4team/internal/app/service"
	"github.com/iPad7/gantt-4team/internal/config"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/pkg/translator"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	logger, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr, translator.LanguageKo},
	})

	window, err := cfg.ProjectWindow()
	if err != nil {
		return fmt.Errorf("invalid project window: %w", err)
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.DbDriver, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.AutoMigrate {
		if err := dbadapter.Migrate(cmd.Context(), db); err != nil {
			return err
		}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET is not set, tokens will not survive a restart")
	}

	taskRepository := dbadapter.NewTaskRepository(db)
	userRepository := dbadapter.NewUserRepository(db)

	colors := domain.NewPaletteColorPicker(rand.NewSource(time.Now().UnixNano()), nil)
	taskService := service.NewTaskService(taskRepository, window, colors, service.NewHierarchyEngine())
	viewService := service.NewViewService(taskRepository, window)
	userService := service.NewUserService(userRepository)
	authService := service.NewAuthService(userRepository, secret, cfg.TokenTTL)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(
		gin.Recovery(),
		httpmiddleware.RequestIDMiddleware(),
		httpmiddleware.GinZapMiddleware(logger),
		cors.New(corsConfig(cfg.CorsAllowedOrigins)),
	)

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(db, window),
		Task:   handlers.NewTaskHandler(taskService),
		User:   handlers.NewUserHandler(userService, authService),
		View:   handlers.NewViewHandler(viewService),
	}, authService)

	addr := ":" + cfg.AppPort
	logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("driver", db.DriverName()),
		zap.String("project_start", domain.FormatDate(window.Start)),
		zap.String("project_end", domain.FormatDate(window.End)),
	)
	return r.Run(addr)
}

func corsConfig(origins []string) cors.Config {
	conf := cors.DefaultConfig()
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization", "Accept-Language", httpmiddleware.RequestIDHeader)
	conf.ExposeHeaders = []string{httpmiddleware.RequestIDHeader}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return conf
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}
