package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brocat-app/brocat/internal/client/models"
)

func TestReduce(t *testing.T) {
	user := &models.User{ID: 1, Email: "anna@example.com", Name: "Anna"}

	tests := []struct {
		name   string
		prev   State
		action Action
		want   State
	}{
		{
			name:   "login start sets loading and clears error",
			prev:   State{Error: "bad password"},
			action: Action{Type: LoginStart},
			want:   State{Loading: true},
		},
		{
			name:   "login success replaces state",
			prev:   State{Loading: true, Error: "stale"},
			action: Action{Type: LoginSuccess, User: user, Token: "tok"},
			want:   State{User: user, Token: "tok", IsAuth: true},
		},
		{
			name:   "login failure keeps user signed out",
			prev:   State{Loading: true},
			action: Action{Type: LoginFailure, Error: "invalid credentials"},
			want:   State{Error: "invalid credentials"},
		},
		{
			name:   "logout resets everything",
			prev:   State{User: user, Token: "tok", IsAuth: true},
			action: Action{Type: Logout},
			want:   State{},
		},
		{
			name:   "restore token signs in and ends loading",
			prev:   initialState,
			action: Action{Type: RestoreToken, User: user, Token: "tok"},
			want:   State{User: user, Token: "tok", IsAuth: true},
		},
		{
			name:   "restore token leaves error untouched",
			prev:   State{Loading: true, Error: "old"},
			action: Action{Type: RestoreToken, User: user, Token: "tok"},
			want:   State{User: user, Token: "tok", IsAuth: true, Error: "old"},
		},
		{
			name:   "unknown action is a no-op",
			prev:   State{User: user, Token: "tok", IsAuth: true},
			action: Action{Type: ActionType(99)},
			want:   State{User: user, Token: "tok", IsAuth: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, reduce(tt.prev, tt.action))
		})
	}
}

// IsAuth must always reflect the last terminal action, regardless of the
// order failures and successes arrive in.
func TestReduceIsAuthFollowsLastTerminalAction(t *testing.T) {
	user := &models.User{ID: 2, Email: "bob@example.com"}

	st := initialState
	st = reduce(st, Action{Type: LoginStart})
	st = reduce(st, Action{Type: LoginSuccess, User: user, Token: "t1"})
	require.True(t, st.IsAuth)

	st = reduce(st, Action{Type: LoginStart})
	st = reduce(st, Action{Type: LoginFailure, Error: "nope"})
	require.False(t, st.IsAuth)
	require.Nil(t, st.User)

	st = reduce(st, Action{Type: RestoreToken, User: user, Token: "t2"})
	require.True(t, st.IsAuth)

	st = reduce(st, Action{Type: Logout})
	require.False(t, st.IsAuth)
	require.Empty(t, st.Token)
}

func TestInitialStateIsLoading(t *testing.T) {
	require.True(t, initialState.Loading)
	require.False(t, initialState.IsAuth)
}

func TestActionTypeString(t *testing.T) {
	require.Equal(t, "LOGIN_START", LoginStart.String())
	require.Equal(t, "LOGOUT", Logout.String())
	require.Equal(t, "RESTORE_TOKEN", RestoreToken.String())
}
