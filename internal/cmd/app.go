package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/config"
	"github.com/apeerhq/apeer/internal/credentials"
	"github.com/apeerhq/apeer/internal/errors"
	"github.com/apeerhq/apeer/internal/guard"
	"github.com/apeerhq/apeer/internal/health"
	"github.com/apeerhq/apeer/internal/log"
	"github.com/apeerhq/apeer/internal/service"
	"github.com/apeerhq/apeer/internal/session"
)

// App is the wired object graph every command runs against: resolved
// configuration, one API client, the session store and the service
// façades. Commands never construct these themselves.
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Client   *api.Client
	Sessions *session.Store
	Monitor  *health.Monitor

	Auth       *service.AuthService
	Activity   *service.ActivityService
	Evaluation *service.EvaluationService
	Dashboard  *service.DashboardService
	Group      *service.GroupService
	Admin      *service.AdminService
	Profile    *service.ProfileService
	Student    *service.StudentService
}

// logToFile is set by the dashboard before wiring so logs do not write
// to the terminal the TUI is drawing on.
var logToFile bool

// newApp resolves configuration and wires the full client graph. The 401
// hook closes over the session store so any unauthorized response, from
// any command, clears the persisted session.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIBaseURL = flagAPIURL
	}
	if flagMock {
		cfg.UseMockData = true
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	// The dashboard owns the terminal, so its logs go to a file instead
	// of interleaving with the alternate screen.
	var logOut io.Writer = os.Stderr
	if logToFile {
		if err := os.MkdirAll(cfg.CredentialsDir, 0o700); err == nil {
			if f, err := os.OpenFile(filepath.Join(cfg.CredentialsDir, "apeer.log"),
				os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
				logOut = f
			}
		}
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.FormatText,
		Output: logOut,
	})
	log.SetDefaultLogger(logger)

	client := api.NewClient(cfg.APIBaseURL)
	creds := credentials.NewStore(cfg.CredentialsDir)

	auth := service.NewAuthService(client, cfg.UseMockData)
	sessions := session.NewStore(auth, creds, logger)

	client.
		WithTokenSource(sessions.Token).
		WithUnauthorizedHook(func() {
			logger.Warn("session rejected by backend, signing out")
			sessions.ForceLogout()
		})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Sessions: sessions,
		Monitor:  health.NewMonitor(client, logger),

		Auth:       auth,
		Activity:   service.NewActivityService(client, cfg.UseMockData),
		Evaluation: service.NewEvaluationService(client, cfg.UseMockData),
		Dashboard:  service.NewDashboardService(client, cfg.UseMockData),
		Group:      service.NewGroupService(client, cfg.UseMockData),
		Admin:      service.NewAdminService(client, cfg.UseMockData),
		Profile:    service.NewProfileService(client, cfg.UseMockData),
		Student:    service.NewStudentService(client, cfg.UseMockData),
	}, nil
}

// requireView enforces route authorization for a command mapped to a
// view. Not-signed-in and wrong-role produce distinct errors.
func (a *App) requireView(view guard.View) (session.Identity, error) {
	identity, ok := a.Sessions.Current()
	if !ok {
		return session.Identity{}, errors.NewNotLoggedInError()
	}
	if !guard.CanEnter(view, &identity) {
		return session.Identity{}, errors.NewRoleDeniedError(string(view), identity.Role)
	}
	return identity, nil
}
