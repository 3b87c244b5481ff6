package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	admininadapter "cvp/internal/modules/admin/adapter/in"
	adminoutadapter "cvp/internal/modules/admin/adapter/out"
	adminin "cvp/internal/modules/admin/port/in"
	adminservice "cvp/internal/modules/admin/service"
	adminusecase "cvp/internal/modules/admin/usecase"
	assignmentinadapter "cvp/internal/modules/assignment/adapter/in"
	assignmentoutadapter "cvp/internal/modules/assignment/adapter/out"
	assignmentin "cvp/internal/modules/assignment/port/in"
	assignmentservice "cvp/internal/modules/assignment/service"
	assignmentusecase "cvp/internal/modules/assignment/usecase"
	contentinadapter "cvp/internal/modules/content/adapter/in"
	contentoutadapter "cvp/internal/modules/content/adapter/out"
	contentin "cvp/internal/modules/content/port/in"
	contentservice "cvp/internal/modules/content/service"
	contentusecase "cvp/internal/modules/content/usecase"
	navigationinadapter "cvp/internal/modules/navigation/adapter/in"
	navigation "cvp/internal/modules/navigation/domain"
	navigationin "cvp/internal/modules/navigation/port/in"
	navigationservice "cvp/internal/modules/navigation/service"
	navigationusecase "cvp/internal/modules/navigation/usecase"
	reviewinadapter "cvp/internal/modules/review/adapter/in"
	reviewoutadapter "cvp/internal/modules/review/adapter/out"
	reviewin "cvp/internal/modules/review/port/in"
	reviewservice "cvp/internal/modules/review/service"
	reviewusecase "cvp/internal/modules/review/usecase"
	sessioninadapter "cvp/internal/modules/session/adapter/in"
	sessionoutadapter "cvp/internal/modules/session/adapter/out"
	sessionin "cvp/internal/modules/session/port/in"
	sessionservice "cvp/internal/modules/session/service"
	sessionusecase "cvp/internal/modules/session/usecase"
	"cvp/internal/platform/apiclient"
	"cvp/internal/platform/clock"
	"cvp/internal/platform/config"
	"cvp/internal/platform/id"
	"cvp/internal/platform/logging"
	"cvp/internal/ui/app"
	"cvp/internal/ui/views/settings"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	SessionCLI    sessioninadapter.CLIHandler
	NavigationCLI navigationinadapter.CLIHandler
	ReviewCLI     reviewinadapter.CLIHandler
	AssignmentCLI assignmentinadapter.CLIHandler
	ContentCLI    contentinadapter.CLIHandler
	AdminCLI      admininadapter.CLIHandler

	client      *apiclient.Client
	session     sessionin.Usecase
	navigation  navigationin.Usecase
	review      reviewin.Usecase
	assignments assignmentin.Usecase
	content     contentin.Usecase
	admin       adminin.Usecase
	closers     []io.Closer
}

func New(cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{}

	client := apiclient.New(apiclient.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
		IDs:     id.UUID{},
		Logger:  logger.With("component", "apiclient"),
	})

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewState(),
		sessionoutadapter.NewFileKeyValueStore(cfg.StorePath),
		sessionoutadapter.NewHTTPAuthGateway(client),
		clk,
		logger.With("module", "session"),
	)
	client.Bind(sessionUC.Token, func() {
		sessionUC.HandleUnauthorized(context.Background())
	})

	navigationUC := navigationusecase.NewInteractor(
		navigationservice.NewHistory(navigation.Location{Hash: "#/dashboard"}),
		logger.With("module", "navigation"),
	)

	queueCache, err := reviewoutadapter.NewSQLiteQueueCache(cfg.CachePath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("new review queue cache: %w", err)
	}
	reviewUC := reviewusecase.NewInteractor(reviewservice.NewReviewService(
		clk,
		reviewoutadapter.NewHTTPReviewGateway(client),
		queueCache,
		reviewoutadapter.NewMarkdownExporter(),
		logger.With("module", "review"),
	))

	assignmentUC := assignmentusecase.NewInteractor(assignmentservice.NewAssignmentService(
		clk,
		assignmentoutadapter.NewHTTPAssignmentGateway(client),
		logger.With("module", "assignment"),
	))

	contentUC := contentusecase.NewInteractor(contentservice.NewContentService(
		contentoutadapter.NewLocalMarkdownLoader(),
		contentoutadapter.NewLocalPDFLoader(),
		contentoutadapter.NewHTTPContentGateway(client),
		contentoutadapter.NewOSExternalLauncher(),
		logger.With("module", "content"),
	), reviewUC)

	adminGateway := adminoutadapter.NewHTTPAdminGateway(client)
	adminUC := adminusecase.NewInteractor(adminservice.NewAdminService(adminGateway, adminGateway, logger.With("module", "admin")))

	return &App{
		Config:        cfg,
		Logger:        logger,
		SessionCLI:    sessioninadapter.NewCLIHandler(sessionUC),
		NavigationCLI: navigationinadapter.NewCLIHandler(navigationUC),
		ReviewCLI:     reviewinadapter.NewCLIHandler(reviewUC),
		AssignmentCLI: assignmentinadapter.NewCLIHandler(assignmentUC),
		ContentCLI:    contentinadapter.NewCLIHandler(contentUC),
		AdminCLI:      admininadapter.NewCLIHandler(adminUC),
		client:        client,
		session:       sessionUC,
		navigation:    navigationUC,
		review:        reviewUC,
		assignments:   assignmentUC,
		content:       contentUC,
		admin:         adminUC,
		closers:       []io.Closer{queueCache, logCloser},
	}, nil
}

// Restore loads the persisted session so CLI commands run authenticated.
// The TUI does this itself on startup.
func (a *App) Restore(ctx context.Context) error {
	_, err := a.session.Restore(ctx)
	return err
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI starts the terminal UI at route, which may be empty.
func (a *App) RunTUI(route string) error {
	model := app.NewModel(app.Deps{
		Session:      a.session,
		Navigation:   a.navigation,
		Review:       a.review,
		Assignments:  a.assignments,
		Content:      a.content,
		Admin:        a.admin,
		Health:       a.client.Health,
		PollInterval: a.Config.PollInterval,
		InitialRoute: route,
		Settings: settings.Info{
			APIURL:       a.Config.APIURL,
			StateDir:     a.Config.StateDir,
			LogFile:      a.Config.Log.File,
			PollInterval: a.Config.PollInterval.String(),
		},
		Logger: a.Logger.With("component", "tui"),
	})
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
