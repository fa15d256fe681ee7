package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/DedS3t/monopoly-engine/pkg/routes"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/DedS3t/monopoly-engine/platform/database"
	"github.com/DedS3t/monopoly-engine/platform/lobby"
	"github.com/DedS3t/monopoly-engine/platform/logging"
	"github.com/DedS3t/monopoly-engine/platform/queries"
	"github.com/DedS3t/monopoly-engine/platform/registry"
	socket "github.com/DedS3t/monopoly-engine/platform/sockets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading config failed")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	logger := log.StandardLogger()

	db := database.PostgreSQLConnection(cfg)
	defer db.Close()
	if err := database.CreateSchema(context.Background(), db); err != nil {
		log.WithError(err).Fatal("preparing database failed")
	}
	repo := queries.New(db)

	pool := cache.CreateRedisPool(cfg.RedisURL)
	defer pool.Close()
	if err := cache.Ping(pool); err != nil {
		log.WithError(err).Fatal("connecting to redis failed")
	}

	server, err := socket.NewServer()
	if err != nil {
		log.WithError(err).Fatal("creating socket server failed")
	}

	reg := registry.New(registry.Config{
		TurnTimeout:  cfg.TurnTimeout,
		AskTimeout:   cfg.AskTimeout,
		StartingCash: cfg.StartingCash,
		Logger:       logger,
	}, cache.NewStore(pool, logger), repo, socket.NewPublisher(server, logger))
	defer reg.Shutdown()

	restoreCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := reg.Restore(restoreCtx); err != nil {
		log.WithError(err).Error("restoring sessions failed")
	}
	cancel()

	lob := lobby.New(repo, reg, logger)

	handler := &socket.Handler{
		Sessions:   reg,
		Lobby:      lob,
		Secret:     []byte(cfg.JWTSecret),
		AskTimeout: cfg.AskTimeout,
		Log:        logger,
	}
	handler.Register(server)
	go func() {
		if err := server.Serve(); err != nil {
			log.WithError(err).Error("socket server stopped")
		}
	}()
	defer server.Close()

	socketHTTP := socket.NewHTTPServer(server, cfg.SocketAddr, cfg.AllowedOrigins)
	go func() {
		if err := socketHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("socket listener failed")
		}
	}()

	app := fiber.New()
	app.Use(cors.New())
	routes.Setup(app, []byte(cfg.JWTSecret),
		&controllers.AuthController{Users: repo, Secret: []byte(cfg.JWTSecret), Log: logger},
		&controllers.GameController{Lobby: lob, Sessions: reg, Log: logger},
	)
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.WithError(err).Fatal("http listener failed")
		}
	}()
	log.WithField("http", cfg.HTTPAddr).WithField("socket", cfg.SocketAddr).Info("server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := socketHTTP.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("socket listener shutdown")
	}
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
}
