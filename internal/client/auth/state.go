// Package auth holds the client's session core: the auth state machine,
// the unauthorized-suppression window, and the session controller that
// orchestrates bootstrap, login, logout, and forced logout.
package auth

import "github.com/brocat-app/brocat/internal/client/models"

// State is the reducer-owned snapshot the UI reads. IsAuth is true only
// when both User and Token were present at the last transition. While
// Loading is true the state is transient and IsAuth must not be branched
// on.
type State struct {
	User    *models.User
	Token   string
	IsAuth  bool
	Loading bool
	Error   string
}

// initialState is the state at process start: loading until bootstrap
// resolves.
var initialState = State{Loading: true}

// ActionType enumerates the legal reducer actions.
type ActionType int

const (
	// LoginStart marks a login call in flight.
	LoginStart ActionType = iota
	// LoginSuccess installs a fresh session after a successful login.
	LoginSuccess
	// LoginFailure records a failed login attempt.
	LoginFailure
	// Logout resets to the signed-out state.
	Logout
	// RestoreToken installs a session re-validated from stored credentials.
	RestoreToken
)

func (t ActionType) String() string {
	switch t {
	case LoginStart:
		return "LOGIN_START"
	case LoginSuccess:
		return "LOGIN_SUCCESS"
	case LoginFailure:
		return "LOGIN_FAILURE"
	case Logout:
		return "LOGOUT"
	case RestoreToken:
		return "RESTORE_TOKEN"
	default:
		return "UNKNOWN"
	}
}

// Action is one reducer input. User/Token accompany LoginSuccess and
// RestoreToken; Error accompanies LoginFailure.
type Action struct {
	Type  ActionType
	User  *models.User
	Token string
	Error string
}

// reduce is a pure function of (state, action). Each action yields the
// same resulting state regardless of the prior state, which keeps every
// flow (bootstrap, login, forced logout) convergent.
func reduce(state State, action Action) State {
	switch action.Type {
	case LoginStart:
		state.Loading = true
		state.Error = ""
		return state

	case LoginSuccess:
		return State{
			User:   action.User,
			Token:  action.Token,
			IsAuth: true,
		}

	case LoginFailure:
		return State{Error: action.Error}

	case Logout:
		return State{}

	case RestoreToken:
		state.User = action.User
		state.Token = action.Token
		state.IsAuth = true
		state.Loading = false
		return state

	default:
		return state
	}
}
