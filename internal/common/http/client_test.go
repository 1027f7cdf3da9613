package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON(t *testing.T) {
	var (
		gotHeaders http.Header
		gotBody    map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotHeaders = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	resp, err := NewClient(time.Second).PostJSON(context.Background(), server.URL,
		map[string]string{"X-API-Key": "secret"}, map[string]interface{}{"company_name": "Acme"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "secret", gotHeaders.Get("X-API-Key"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "Acme", gotBody["company_name"])
}

func TestClient_PostJSON_Non2xxIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	resp, err := NewClient(time.Second).PostJSON(context.Background(), server.URL, nil, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
}

func TestClient_PostJSON_Errors(t *testing.T) {
	client := NewClient(time.Second)

	_, err := client.PostJSON(context.Background(), "http://example.invalid", nil, make(chan int))
	assert.ErrorContains(t, err, "marshal")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	_, err = client.PostJSON(context.Background(), server.URL, nil, struct{}{})
	assert.Error(t, err)
}
