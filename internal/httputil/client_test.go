// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dataqa/pkg/types"
)

func TestNewClient_Timeout(t *testing.T) {
	c := NewClient(types.HTTPConfig{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, c.Timeout)

	c = NewClient(types.HTTPConfig{})
	assert.Zero(t, c.Timeout)
}

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), ts.URL, "dataqa/0.1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "dataqa/0.1", gotUA)
}

func TestGet_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestGetJSON_Decodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"name": "fire hydrants"}`))
	}))
	defer ts.Close()

	var out struct {
		Name string `json:"name"`
	}
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &out)
	require.NoError(t, err)
	assert.Equal(t, "fire hydrants", out.Name)
}

func TestGetJSON_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	var out map[string]any
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &out)
	assert.Error(t, err)
}
