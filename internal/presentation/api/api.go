package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nexgen/taskbuddy/internal/infrastructure/configs"
	"github.com/nexgen/taskbuddy/internal/infrastructure/logging"
	"github.com/nexgen/taskbuddy/internal/infrastructure/metrics"
	"github.com/nexgen/taskbuddy/internal/infrastructure/ratelimiter"
	"github.com/nexgen/taskbuddy/internal/infrastructure/security"
	authHandler "github.com/nexgen/taskbuddy/internal/presentation/handler/auth"
	chatHandler "github.com/nexgen/taskbuddy/internal/presentation/handler/chat"
	healthHandler "github.com/nexgen/taskbuddy/internal/presentation/handler/health"
	roomHandler "github.com/nexgen/taskbuddy/internal/presentation/handler/rooms"
	socketHandler "github.com/nexgen/taskbuddy/internal/presentation/handler/socket"
	taskHandler "github.com/nexgen/taskbuddy/internal/presentation/handler/tasks"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Application struct {
	config        configs.Config
	authHandler   *authHandler.Handler
	roomHandler   *roomHandler.Handler
	taskHandler   *taskHandler.Handler
	chatHandler   *chatHandler.Handler
	socketHandler *socketHandler.Handler
	healthHandler *healthHandler.Handler
	tokenManager  *security.TokenManager
	logger        logging.Logger
	sugar         *zap.SugaredLogger
	ratelimiter   ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	authHandler *authHandler.Handler,
	roomHandler *roomHandler.Handler,
	taskHandler *taskHandler.Handler,
	chatHandler *chatHandler.Handler,
	socketHandler *socketHandler.Handler,
	healthHandler *healthHandler.Handler,
	tokenManager *security.TokenManager,
	logger logging.Logger,
	sugar *zap.SugaredLogger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:        config,
		authHandler:   authHandler,
		roomHandler:   roomHandler,
		taskHandler:   taskHandler,
		chatHandler:   chatHandler,
		socketHandler: socketHandler,
		healthHandler: healthHandler,
		tokenManager:  tokenManager,
		logger:        logger,
		sugar:         sugar,
		ratelimiter:   ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.rateLimiterMiddleware)
	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.authHandler.RegisterHandler)
			r.Post("/login", app.authHandler.LoginHandler)
			r.Post("/logout", app.authHandler.LogoutHandler)

			r.With(app.sessionMiddleware).Get("/me", app.authHandler.MeHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.sessionMiddleware)

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", app.roomHandler.CreateRoomHandler)
				r.Get("/", app.roomHandler.ListRoomsHandler)
				r.Post("/join", app.roomHandler.JoinRoomHandler)
				r.Get("/{roomId}", app.roomHandler.GetRoomHandler)
				r.Delete("/{roomId}", app.roomHandler.DeleteRoomHandler)
				r.Post("/{roomId}/kick", app.roomHandler.KickMemberHandler)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", app.taskHandler.ListTasksHandler)
				r.Post("/", app.taskHandler.CreateTaskHandler)
				r.Put("/{taskId}", app.taskHandler.UpdateTaskHandler)
				r.Delete("/{taskId}", app.taskHandler.DeleteTaskHandler)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Get("/{roomId}", app.chatHandler.GetHistoryHandler)
				r.Delete("/{roomId}", app.chatHandler.ClearChatHandler)
			})

			r.Get("/ws", app.socketHandler.ConnectHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Handle("/metrics", metrics.Handler())

	return otelhttp.NewHandler(r, "taskbuddy-http")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.sugar.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.sugar.Infow("server has started", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.sugar.Infow("server has stopped", "addr", srv.Addr)

	return nil
}
