package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	_ "taskly/docs"
	"taskly/internal/config"
	"taskly/internal/handlers"
	"taskly/internal/middleware"
	"taskly/internal/pdf"
	"taskly/internal/realtime"
	"taskly/internal/repositories"
	"taskly/internal/routes"
	"taskly/internal/services"
)

const shutdownTimeout = 15 * time.Second

// App holds the wired dependencies of one running server.
type App struct {
	cfg *config.Config
	log *logrus.Logger
	db  *sqlx.DB

	Registry      *realtime.Registry
	Notifications services.NotificationService
	Users         services.UserService

	router *gin.Engine
}

// New opens and migrates the store and wires repositories, services and routes.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	db, err := repositories.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// === Services ===
	registry := realtime.NewRegistry(cfg.Realtime.SendBuffer, log)
	relays, err := buildRelays(cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	notifications := services.NewNotificationService(notificationRepo, userRepo, registry, log, services.NotificationOptions{
		ListLimit:    cfg.Notifications.ListLimit,
		RelayTimeout: cfg.Notifications.RelayTimeout,
		Relays:       relays,
	})
	taskService := services.NewTaskService(taskRepo, teamRepo, userRepo, notifications, log)
	commentService := services.NewCommentService(activityRepo, commentRepo, taskRepo, teamRepo, userRepo, notifications, log)
	activityService := services.NewActivityService(activityRepo, commentRepo, taskRepo, teamRepo,
		pdf.NewThreadExporter(cfg.Export.FontPath), log)
	userService := services.NewUserService(userRepo, teamRepo, log)

	// === Gin ===
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, routes.Handlers{
		Tasks:         handlers.NewTaskHandler(taskService, log),
		Activities:    handlers.NewActivityHandler(activityService, log),
		Comments:      handlers.NewCommentHandler(commentService, log),
		Notifications: handlers.NewNotificationHandler(notifications, registry, cfg.Realtime.WriteTimeout, log),
		Users:         handlers.NewUserHandler(userService, log),
	}, []byte(cfg.Auth.JWTSecret))

	return &App{
		cfg:           cfg,
		log:           log,
		db:            db,
		Registry:      registry,
		Notifications: notifications,
		Users:         userService,
		router:        router,
	}, nil
}

// buildRelays returns the offline channels that have enough configuration to work.
func buildRelays(cfg *config.Config, log *logrus.Logger) ([]services.Relay, error) {
	var relays []services.Relay
	if cfg.Email.Enabled() {
		relays = append(relays, services.NewEmailRelay(cfg.Email, cfg.Server.PublicURL))
		log.WithField("host", cfg.Email.SMTPHost).Info("email relay enabled")
	}
	if cfg.Telegram.BotToken != "" {
		tg, err := services.NewTelegramRelay(cfg.Telegram.BotToken, cfg.Server.PublicURL, log)
		if err != nil {
			return nil, fmt.Errorf("telegram relay: %w", err)
		}
		relays = append(relays, tg)
		log.Info("telegram relay enabled")
	}
	return relays, nil
}

func (a *App) Handler() http.Handler { return a.router }

// Run serves HTTP on the configured port until ctx is cancelled, then drains requests and pending relays.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. Request contexts derive from a
// base context that is cancelled on shutdown, so hijacked notification streams end with it.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	base, stop := context.WithCancel(context.Background())
	defer stop()
	srv := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(stop)

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", ln.Addr().String()).Info("server started")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.WithError(err).Warn("http shutdown")
	}
	return nil
}

// Close waits for background deliveries and closes the store.
func (a *App) Close() error {
	a.Notifications.Wait()
	return a.db.Close()
}
