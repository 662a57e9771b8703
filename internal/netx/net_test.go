package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadPresigned_SendsBody(t *testing.T) {
	var gotMethod string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := UploadPresigned(context.Background(), srv.URL, []byte("image-bytes"))
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, []byte("image-bytes"), gotBody)
}

func TestUploadPresigned_NonOKStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	err := UploadPresigned(context.Background(), srv.URL, []byte("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "upload failed")
}

func TestDownload_WritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-data"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "img.jpg")
	require.NoError(t, Download(context.Background(), srv.URL, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-data"), data)
}

func TestDownload_ErrorStatusDoesNotWriteFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "img.jpg")
	require.Error(t, Download(context.Background(), srv.URL, path))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
