package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/brocat-app/brocat/internal/client/api"
	"github.com/brocat-app/brocat/internal/client/creds"
	"github.com/brocat-app/brocat/internal/client/models"
	"github.com/brocat-app/brocat/internal/client/nav"
	"github.com/brocat-app/brocat/internal/logging"
)

// API is the slice of the backend client the session controller needs.
// *api.Client satisfies it; tests substitute fakes.
type API interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Logout(ctx context.Context) error
	ForceLogout(ctx context.Context) error
	Validate(ctx context.Context) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// Registrar is the interceptor's handler slot. *api.Client satisfies it.
type Registrar interface {
	SetUnauthorizedHandler(fn func())
}

// Options tunes the session controller's timing.
type Options struct {
	// SuppressFor is how long unauthorized handling is silenced when a
	// login call is issued. Balances spurious-logout avoidance against
	// delayed detection of a genuinely dead session.
	SuppressFor time.Duration
	// Cooldown is how long after a forced logout further unauthorized
	// events are ignored, so one burst of failing requests produces one
	// logout.
	Cooldown time.Duration
	// Grace is the delay before a forced logout re-checks the stored
	// token, letting an in-flight login finish persisting.
	Grace time.Duration
}

func (o Options) withDefaults() Options {
	if o.SuppressFor <= 0 {
		o.SuppressFor = time.Second
	}
	if o.Cooldown <= 0 {
		o.Cooldown = 800 * time.Millisecond
	}
	if o.Grace <= 0 {
		o.Grace = 150 * time.Millisecond
	}
	return o
}

// Session is the single source of truth for "is the user signed in". It
// owns bootstrap, login, logout and unauthorized handling; everything else
// in the client only reads the Store's state and calls these methods.
type Session struct {
	store     *Store
	creds     creds.Store
	api       API
	registrar Registrar
	nav       nav.Navigator
	sup       *Suppressor
	log       logging.Logger
	opts      Options

	// events carries "a call was rejected as unauthorized" signals from
	// the interceptor into the single consumer loop. Capacity 1 with a
	// non-blocking send: concurrent 401s collapse into one event.
	events chan struct{}

	mu          sync.Mutex
	lastHandled time.Time

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession wires a session controller. All collaborators are required
// except log.
func NewSession(store *Store, credStore creds.Store, backend API, registrar Registrar, navigator nav.Navigator, sup *Suppressor, log logging.Logger, opts Options) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{
		store:     store,
		creds:     credStore,
		api:       backend,
		registrar: registrar,
		nav:       navigator,
		sup:       sup,
		log:       log,
		opts:      opts.withDefaults(),
		events:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Store exposes the auth state machine for UI subscriptions.
func (s *Session) Store() *Store { return s.store }

// Start registers the unauthorized handler with the interceptor, launches
// the consumer loop, and runs bootstrap. Call once at app start.
func (s *Session) Start(ctx context.Context) {
	s.registrar.SetUnauthorizedHandler(s.notifyUnauthorized)
	go s.consumeUnauthorized(ctx)
	s.Bootstrap(ctx)
}

// Close unregisters the handler and stops the consumer loop.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.registrar.SetUnauthorizedHandler(nil)
		close(s.done)
	})
}

// Bootstrap determines the initial auth state from persisted credentials.
// It never fails: every error path resolves to the signed-out state, so
// the app cannot start stuck in loading.
func (s *Session) Bootstrap(ctx context.Context) {
	token, _ := s.creds.Token(ctx)
	if token == "" {
		s.log.Debug(ctx, "bootstrap: no stored token")
		s.store.Dispatch(Action{Type: Logout})
		return
	}

	// A token whose readable expiry is in the past cannot validate; skip
	// the round trip. Opaque tokens still go to the server.
	if info, ok := PeekToken(token); ok && !info.ExpiresAt.IsZero() && info.ExpiresAt.Before(time.Now()) {
		s.log.Info(ctx, "bootstrap: stored token expired", "expired_at", info.ExpiresAt)
		s.clearCreds(ctx)
		s.store.Dispatch(Action{Type: Logout})
		return
	}

	user, err := s.api.Validate(ctx)
	if err != nil || user == nil {
		s.log.Info(ctx, "bootstrap: stored token rejected", "error", err)
		s.clearCreds(ctx)
		s.store.Dispatch(Action{Type: Logout})
		return
	}

	s.log.Info(ctx, "bootstrap: session restored", "user", user.Email)
	s.store.Dispatch(Action{Type: RestoreToken, User: user, Token: token})
}

// Login authenticates and installs the session. The credential write
// completes before LOGIN_SUCCESS is dispatched, so any request that starts
// after Login returns sees the new token. The error is returned to the
// caller so the UI can show it; state carries the same message.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := validateLoginInput(email, password); err != nil {
		return err
	}

	// Open the window first: a stale 401 from the previous session's
	// in-flight requests must not race this login into a logout.
	s.sup.SuppressFor(s.opts.SuppressFor)
	s.store.Dispatch(Action{Type: LoginStart})

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		msg := errMessage(err)
		s.log.Info(ctx, "login failed", "error", msg)
		s.store.Dispatch(Action{Type: LoginFailure, Error: msg})
		return err
	}

	// The store contract swallows backend failures, and a failed token
	// write must not also cost us the user record.
	_ = s.creds.SaveToken(ctx, res.Token)
	_ = s.creds.SaveUser(ctx, res.User)

	s.store.Dispatch(Action{Type: LoginSuccess, User: res.User, Token: res.Token})
	s.log.Info(ctx, "login succeeded", "user", res.User.Email)
	return nil
}

// Logout ends the session. The endpoint call is best effort; the local
// state is cleared unconditionally, so correctness never depends on server
// reachability. Safe to call repeatedly.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout endpoint failed, clearing local session anyway", "error", err)
	}
	s.clearCreds(ctx)
	s.store.Dispatch(Action{Type: Logout})
}

// ValidateSession re-checks the session against the backend. Failure of
// any kind fails closed to the signed-out state.
func (s *Session) ValidateSession(ctx context.Context) {
	user, err := s.api.Validate(ctx)
	token, _ := s.creds.Token(ctx)

	if err != nil || user == nil || token == "" {
		s.log.Info(ctx, "session validation failed", "error", err)
		s.clearCreds(ctx)
		s.store.Dispatch(Action{Type: Logout})
		return
	}

	s.store.Dispatch(Action{Type: RestoreToken, User: user, Token: token})
}

// ForceLogout terminates the user's other sessions. The local session
// stays; errors surface to the caller.
func (s *Session) ForceLogout(ctx context.Context) error {
	return s.api.ForceLogout(ctx)
}

// ChangePassword rotates the password of the signed-in user.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := validation.Validate(newPassword, validation.Required, validation.Length(8, 100)); err != nil {
		return err
	}
	return s.api.ChangePassword(ctx, oldPassword, newPassword)
}

// notifyUnauthorized is the handler registered with the interceptor. It is
// fire-and-forget on the interceptor side; here it collapses into the
// events channel without ever blocking.
func (s *Session) notifyUnauthorized() {
	select {
	case s.events <- struct{}{}:
	default:
	}
}

// consumeUnauthorized is the single consumer of unauthorized events. One
// consumer means forced-logout sequences can never run concurrently with
// each other, whatever the interceptor does.
func (s *Session) consumeUnauthorized(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-s.events:
			s.handleUnauthorized(ctx)
		}
	}
}

// handleUnauthorized performs one forced-logout sequence: clear
// credentials, reset the state machine, send the UI to the login screen.
// A cooldown swallows the tail of a burst; the grace delay plus token
// re-check drops events that raced a login that has since completed.
func (s *Session) handleUnauthorized(ctx context.Context) {
	s.mu.Lock()
	if time.Since(s.lastHandled) < s.opts.Cooldown {
		s.mu.Unlock()
		s.log.Debug(ctx, "unauthorized event within cooldown, ignored")
		return
	}
	s.mu.Unlock()

	select {
	case <-time.After(s.opts.Grace):
	case <-ctx.Done():
		return
	}

	token, _ := s.creds.Token(ctx)
	if token == "" {
		s.log.Debug(ctx, "unauthorized event with no stored token, nothing to do")
		return
	}

	s.log.Info(ctx, "session rejected by server, logging out")
	s.clearCreds(ctx)
	s.store.Dispatch(Action{Type: Logout})
	s.nav.Replace(nav.RouteLogin)

	s.mu.Lock()
	s.lastHandled = time.Now()
	s.mu.Unlock()
}

func (s *Session) clearCreds(ctx context.Context) {
	_ = s.creds.RemoveToken(ctx)
	_ = s.creds.RemoveUser(ctx)
}

// errMessage extracts the most useful human-readable message for the UI.
func errMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

func validateLoginInput(email, password string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return err
	}
	return validation.Validate(password, validation.Required)
}
