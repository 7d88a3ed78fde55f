// Package server wires the application together: configuration, database,
// migrations, superuser bootstrap, services and the HTTP API. It also owns
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/campkeeper/campkeeper/internal/logging"
	"github.com/campkeeper/campkeeper/internal/server/config"
	"github.com/campkeeper/campkeeper/internal/server/httpapi"
	"github.com/campkeeper/campkeeper/internal/server/repositories/repomanager"
	"github.com/campkeeper/campkeeper/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authService *services.AuthService
	userService *services.UserService
	httpServer  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	authService := services.NewAuthService(db, m, cfg, logger)
	userService := services.NewUserService(db, m, logger)
	campaignService := services.NewCampaignService(db, m, logger)
	attachmentService := services.NewAttachmentService(cfg)

	httpServer := httpapi.NewServer(cfg.EndpointAddrHTTP, logger,
		authService, userService, campaignService, attachmentService)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: m,
		authService: authService,
		userService: userService,
		httpServer:  httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepareStorage runs the schema migrations and makes sure the superuser
// account exists before any request is served.
func (app *App) prepareStorage(ctx context.Context) error {
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if err := app.userService.EnsureSuperuser(ctx, app.config.SuperuserPassword); err != nil {
		return fmt.Errorf("superuser bootstrap error: %w", err)
	}

	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.prepareStorage(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	return nil
}
