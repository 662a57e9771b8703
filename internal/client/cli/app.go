// Package cli implements the interactive terminal front end of the brocat
// client. It wires the API client, credential store, session controller and
// catalog service together and drives them from a read-eval-print loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/brocat-app/brocat/internal/client/api"
	"github.com/brocat-app/brocat/internal/client/auth"
	"github.com/brocat-app/brocat/internal/client/catalog"
	"github.com/brocat-app/brocat/internal/client/config"
	"github.com/brocat-app/brocat/internal/client/creds"
	"github.com/brocat-app/brocat/internal/client/nav"
	catalogrepo "github.com/brocat-app/brocat/internal/client/repositories/catalog"
	"github.com/brocat-app/brocat/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *auth.Session
	catalog *catalog.Service
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// mu guards route and writes to out: Replace is called both from the
	// REPL goroutine and from the session controller's unauthorized
	// consumer.
	mu    sync.Mutex
	route nav.Route
}

// NewApp wires all client components from the given configuration.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	a := &App{
		config: cfg,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		route:  nav.RouteLogin,
	}

	credStore := creds.NewDefault(cfg.CredsDir, log)
	suppressor := auth.NewSuppressor()

	a.api = api.New(api.Config{
		BaseURL:      cfg.APIBaseURL,
		MediaBaseURL: cfg.MediaBaseURL,
		Timeout:      cfg.RequestTimeout,
	}, credStore, suppressor, log)

	var repo catalogrepo.Repository
	db, err := initDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		// The cache is an optimization; the app still works without it.
		log.Warn(ctx, "catalog cache unavailable", "dsn", cfg.CacheDSN, "error", err)
	} else {
		repo = catalogrepo.NewSQLiteRepository(db)
	}

	a.catalog = catalog.NewService(a.api, repo, log, catalog.Options{
		Timeout: cfg.CatalogTimeout,
	})

	a.session = auth.NewSession(auth.NewStore(), credStore, a.api, a.api, nav.Func(a.Replace), suppressor, log, auth.Options{
		SuppressFor: cfg.SuppressFor,
		Cooldown:    cfg.UnauthorizedCooldown,
	})

	return a, nil
}

// Replace implements nav.Navigator: the session controller calls it to
// switch screens, in particular after a forced logout. Safe for
// concurrent use.
func (a *App) Replace(route nav.Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.route == route {
		return
	}
	a.route = route
	if route == nav.RouteLogin {
		fmt.Fprintln(a.out, "Session ended, please log in again.")
	}
}

// Run bootstraps the session and enters the command loop. It blocks until
// the user exits or input reaches EOF.
func (a *App) Run(ctx context.Context) {
	a.session.Start(ctx)
	defer a.session.Close()

	if a.isLoggedIn() {
		a.Replace(nav.RouteHome)
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Store().State().IsAuth
}
