package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/brocat-app/brocat/internal/common"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	var gotBody map[string]any
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"T1","user":{"id":1,"email":"a@b.com"}}}`))
	})
	c, _ := newTestClient(t, h, "", false)

	res, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "T1", res.Token)
	require.Equal(t, int64(1), res.User.ID)

	require.Equal(t, "a@b.com", gotBody["email"])
	require.Equal(t, "pw", gotBody["password"])
	require.NotEmpty(t, gotBody["platform"])
	require.NotEmpty(t, gotBody["appVersion"])
}

func TestLogin_MissingTokenIsInvalidResponse(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":1}}}`))
	})
	c, _ := newTestClient(t, h, "", false)

	_, err := c.Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, common.ErrInvalidResponse)
}

func TestLogin_ServerRejection(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"Invalid credentials"}`))
	})
	c, _ := newTestClient(t, h, "", false)

	_, err := c.Login(context.Background(), "a@b.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid credentials", apiErr.Message())
}

func TestValidate_ReturnsUser(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/validate", r.URL.Path)
		require.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":7,"email":"x@y.z"}}}`))
	})
	c, _ := newTestClient(t, h, "T1", false)

	u, err := c.Validate(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
}

func TestValidate_MissingUserFailsClosed(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})
	c, _ := newTestClient(t, h, "T1", false)

	_, err := c.Validate(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidResponse)
}

func TestLogout_UsesEnvelope(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	c, _ := newTestClient(t, h, "T1", false)

	require.NoError(t, c.Logout(context.Background()))
}

func TestChangePassword_SendsBothPasswords(t *testing.T) {
	var gotBody map[string]string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	c, _ := newTestClient(t, h, "T1", false)

	require.NoError(t, c.ChangePassword(context.Background(), "old", "new"))
	require.Equal(t, "old", gotBody["oldPassword"])
	require.Equal(t, "new", gotBody["newPassword"])
}
