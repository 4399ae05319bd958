package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spinwheel/internal/config"
	cronrunner "spinwheel/internal/cron"
	"spinwheel/internal/draw"
	"spinwheel/internal/handler"
	"spinwheel/internal/history"
	"spinwheel/internal/hub"
	"spinwheel/internal/logger"
	"spinwheel/internal/service"
	"spinwheel/internal/store"
)

func main() {
	cfgPath := os.Getenv("WHEEL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("WHEEL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	st, err := store.Open(cfg.Data.Dir, logger)
	if err != nil {
		logger.Fatal("open state store failed", zap.Error(err))
	}
	log := &history.Log{Store: st}
	broadcaster := hub.New(st, log, logger)
	spinSvc := &service.SpinService{
		Store:  st,
		Log:    log,
		Hub:    broadcaster,
		Picker: draw.New(nil),
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{Store: st}
	healthHandler.Register(engine)
	configHandler := &handler.ConfigHandler{Store: st, Hub: broadcaster, Logger: logger}
	configHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Store: st, Hub: broadcaster, Logger: logger}
	settingsHandler.Register(engine)
	historyHandler := &handler.HistoryHandler{Log: log, Hub: broadcaster, Logger: logger}
	historyHandler.Register(engine)
	spinHandler := &handler.SpinHandler{Service: spinSvc, Logger: logger}
	spinHandler.Register(engine)
	wsHandler := &handler.WSHandler{Hub: broadcaster, Logger: logger}
	wsHandler.Register(engine)

	// Display and control-panel pages are plain static files.
	if cfg.Data.StaticDir != "" {
		engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.Data.StaticDir))))
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Backup.Enabled {
		backup := &service.BackupService{Store: st, Keep: cfg.Backup.Keep, Logger: logger}
		_, err := cronRunner.Add(cfg.Backup.Schedule, "state-backup", func(context.Context) {
			if err := backup.Run(); err != nil {
				logger.Warn("state backup failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register backup failed", zap.Error(err))
		}
	}
	_, err = cronRunner.Add("@every 1m", "hub-stats", func(context.Context) {
		logger.Info("hub stats",
			zap.Int("sessions", broadcaster.Count()),
			zap.Uint64("dropped_sends", broadcaster.DroppedSends()),
		)
	})
	if err != nil {
		logger.Warn("cron register hub stats failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	broadcaster.CloseAll("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
