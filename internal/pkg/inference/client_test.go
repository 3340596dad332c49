package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Xin chao", payload["inputs"])
		_, _ = w.Write([]byte(`[{"generated_text":"  Chao ban!  "}]`))
	}))
	defer server.Close()

	reply, err := New(server.URL, "hf_token", time.Second).Generate(context.Background(), "Xin chao")
	require.NoError(t, err)
	assert.Equal(t, "Chao ban!", reply)
}

func TestGenerateSingleObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generated_text":"ok"}`))
	}))
	defer server.Close()

	reply, err := New(server.URL, "", time.Second).Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestGenerateErrors(t *testing.T) {
	_, err := New("", "", 0).Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"loading"}`))
	}))
	defer server.Close()

	_, err = New(server.URL, "", time.Second).Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer empty.Close()

	_, err = New(empty.URL, "", time.Second).Generate(context.Background(), "hi")
	assert.Error(t, err)
}
