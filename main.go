package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/catalog"
	"github.com/junaidrashid-git/cybereatdiri/config"
	orderControllers "github.com/junaidrashid-git/cybereatdiri/controllers/order"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/metrics"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/routes"
	"github.com/junaidrashid-git/cybereatdiri/session"
	"github.com/junaidrashid-git/cybereatdiri/store"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := cfg.NewLogger()
	log.Info("starting Cyber-EatDiri kiosk server")
	gin.SetMode(cfg.GinMode)

	hasher, err := store.HasherFor(cfg.PasswordMode)
	if err != nil {
		log.WithError(err).Fatal("invalid password mode")
	}

	// Init DB
	dbOpts := store.Options{
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
		Debug:       cfg.LogLevel == "debug",
	}
	db, err := store.Open(dbOpts, log)
	if err != nil {
		log.WithError(err).Fatal("user database unavailable")
	}
	defer func() {
		if err := store.Close(db); err != nil {
			log.WithError(err).Warn("close user database")
		}
	}()

	menu, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		log.WithError(err).Fatal("load catalog")
	}

	m := metrics.New()
	hub := orderControllers.NewHub(log)
	registry := kiosk.NewRegistry(kiosk.Notifiers{
		kiosk.LogNotifier{Log: log},
		m,
		hub,
	}, time.Now)
	// A terminal outlives its token by at most one TTL.
	registry.SetIdleTimeout(cfg.TokenTTL)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 10m", func() {
		if n := registry.EvictIdle(); n > 0 {
			log.WithField("evicted", n).Info("idle terminals evicted")
		}
	}); err != nil {
		log.WithError(err).Fatal("schedule terminal eviction")
	}

	// Nightly snapshots of the local user database
	if cfg.BackupDir != "" && dbOpts.Dialect() == store.DialectSQLite {
		backup := store.NewBackup(db, cfg.BackupDir, cfg.BackupRetention, log)
		if _, err := backup.Schedule(scheduler, cfg.BackupSchedule); err != nil {
			log.WithError(err).Fatal("schedule backups")
		}
		log.WithFields(logrus.Fields{
			"dir":       cfg.BackupDir,
			"schedule":  cfg.BackupSchedule,
			"retention": cfg.BackupRetention,
		}).Info("user database backups scheduled")
	}
	scheduler.Start()

	// Gin setup
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), m.Middleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Serve menu images
	if cfg.AssetsDir != "" {
		r.Static("/assets", cfg.AssetsDir)
	}

	routes.SetupRoutes(r, routes.Deps{
		Users:       store.NewUserStore(db, hasher, log),
		Catalog:     menu,
		Registry:    registry,
		Issuer:      session.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Hub:         hub,
		Metrics:     m,
		Log:         log,
		AllowGuests: cfg.AllowGuests,
		AdminAPIKey: cfg.AdminAPIKey,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	hub.Close()
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// corsConfig allows any origin when origins is "*", otherwise only the
// listed ones, with credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
