// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	donationsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/donations"
	errorsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/errors"
	eventsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/events"
	healthfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/health"
	loginfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/login"
	logoutfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/logout"
	profilefeature "github.com/upcyclebuild/upcyclehub/internal/app/features/profile"
	registerfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/register"
	teamsfeature "github.com/upcyclebuild/upcyclehub/internal/app/features/teams"
	userstore "github.com/upcyclebuild/upcyclehub/internal/app/store/users"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/auth"
	"github.com/upcyclebuild/upcyclehub/internal/app/system/mailer"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The router mounts a feature
// router per application area: auth (register/login/logout), profile,
// events, donations, and teams.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so profile
	// updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.UpcycleHubMongoDatabase))

	mail := mailer.New(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName,
		logger,
	)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.UpcycleHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	registerHandler := registerfeature.NewHandler(deps.UpcycleHubMongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(deps.UpcycleHubMongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Profile and organization membership
	profileHandler := profilefeature.NewHandler(deps.UpcycleHubMongoDatabase, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Volunteer event agenda
	eventsHandler := eventsfeature.NewHandler(deps.UpcycleHubMongoDatabase, errLog, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	// Donation intake, list, edit, and receipts
	donationsHandler := donationsfeature.NewHandler(deps.UpcycleHubMongoDatabase, mail, appCfg.SiteName, errLog, logger)
	r.Mount("/donations", donationsfeature.Routes(donationsHandler, sessionMgr))

	// Teams
	teamsHandler := teamsfeature.NewHandler(deps.UpcycleHubMongoDatabase, errLog, logger)
	r.Mount("/teams", teamsfeature.Routes(teamsHandler, sessionMgr))

	return r, nil
}
