package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shareit/internal/api"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendClientForward(t *testing.T) {
	var gotHeader, gotRequestID, gotContentType, gotBody, gotURI string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(models.UserIDHeader)
		gotRequestID = r.Header.Get(api.RequestIDHeader)
		gotContentType = r.Header.Get("Content-Type")
		gotURI = r.URL.RequestURI()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":"duplicate"}`)
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL+"/", time.Second)
	resp, err := client.Forward(context.Background(), ForwardRequest{
		Method:    http.MethodPatch,
		Path:      "/users/3",
		RawQuery:  "x=1",
		UserID:    "3",
		RequestID: "req-1",
		Body:      []byte(`{"email":"a@b.c"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"error":"duplicate"}`, string(resp.Body))
	assert.Equal(t, "/users/3?x=1", gotURI)
	assert.Equal(t, "3", gotHeader)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"email":"a@b.c"}`, gotBody)
}

func TestBackendClientPing(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()
	assert.NoError(t, NewBackendClient(healthy.URL, time.Second).Ping(context.Background()))

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	err := NewBackendClient(failing.URL, time.Second).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
}

func TestBackendClientTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	_, err := NewBackendClient(slow.URL, 20*time.Millisecond).Forward(context.Background(), ForwardRequest{
		Method: http.MethodGet,
		Path:   "/users",
	})
	assert.Error(t, err)
}
