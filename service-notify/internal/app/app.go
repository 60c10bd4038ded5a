package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flows-notify/pkg/config"
	"flows-notify/pkg/database"
	"flows-notify/pkg/email"
	"flows-notify/pkg/errorreport"
	"flows-notify/pkg/logger"
	"flows-notify/pkg/redis"
	mdw "flows-notify/service-notify/internal/app/middleware"
	ctl "flows-notify/service-notify/internal/controller"
	invitationRepo "flows-notify/service-notify/internal/repository/invitation"
	notificationService "flows-notify/service-notify/internal/service/notification"
)

type appServer struct {
	config                 *config.Config
	middleware             mdw.MiddlewareProvider
	emailController        *ctl.EmailController
	notificationController *ctl.NotificationController
	inviteController       *ctl.InviteController
	errorReportController  *ctl.ErrorReportController
	worker                 *notificationService.Worker
	reporter               *errorreport.Reporter
	redisClient            *redis.Client
}

// NewAppServer creates a new instance of appServer with the provided configuration.
func NewAppServer(cfg *config.Config) *appServer {
	// initialize database
	db, err := database.NewPgDB(cfg)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}

	// initialize redis for queue locks
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatalf("failed to initialize redis: %v", err)
	}

	// initialize email provider
	emailProvider, err := email.NewEmailProvider(context.Background(), &cfg.Email)
	if err != nil {
		logger.Fatalf("failed to initialize email provider: %v", err)
	}

	// initialize error reporter
	reporter := errorreport.NewReporter(cfg.ErrorReporting)

	// initialize repositories
	invitationRepository := invitationRepo.NewRepository(db)

	// initialize services
	notificationSvc := notificationService.NewService(invitationRepository, emailProvider, reporter, redisClient, cfg)

	// a zero poll interval disables background queue processing, leaving
	// only the HTTP triggers
	var worker *notificationService.Worker
	if cfg.Notify.PollInterval > 0 {
		worker = notificationService.NewWorker(notificationSvc, cfg.Notify.PollInterval)
	}

	// initialize controllers
	emailController := ctl.NewEmailController(emailProvider, cfg)
	notificationController := ctl.NewNotificationController(notificationSvc)
	inviteController := ctl.NewInviteController()
	errorReportController := ctl.NewErrorReportController()

	// initialize middleware
	middleware := mdw.NewMiddleware(cfg)

	return &appServer{
		config:                 cfg,
		middleware:             middleware,
		emailController:        emailController,
		notificationController: notificationController,
		inviteController:       inviteController,
		errorReportController:  errorReportController,
		worker:                 worker,
		reporter:               reporter,
		redisClient:            redisClient,
	}
}

func (a *appServer) Serve() {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", a.config.Port),
		Handler: a.RegisterHandlers(),
	}

	// start the queue worker
	if a.worker != nil {
		a.worker.Start()
	}

	// serve the server
	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	logger.Infof("server started on port %s", a.config.Port)

	a.gracefulShutdown(server)

	logger.Info("server shutdown complete")
}

func (a *appServer) gracefulShutdown(server *http.Server) {
	ctx, stopCtx := context.WithCancel(context.Background())

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP) // wait for the sigterm
		<-signals

		// stop accepting work before draining the server
		if a.worker != nil {
			a.worker.Stop()
		}

		// we received an os signal, shut down.
		err := server.Shutdown(ctx)
		if err != nil {
			logger.Error(err, "server shutdown error")
		} else {
			logger.Info("server graceful shutdown")
		}

		// flush queued error reports and release the lock store
		a.reporter.Close()
		if err := a.redisClient.Close(); err != nil {
			logger.Error(err, "failed to close redis client")
		}

		stopCtx()
	}()

	<-ctx.Done()
}
