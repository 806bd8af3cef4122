package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const presaleAddr = "0x00000000000000000000000000000000000000C3"

func TestPresaleMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/presales", r.URL.Path)
		assert.Equal(t, "eq.0x00000000000000000000000000000000000000c3", r.URL.Query().Get("address"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"address":"0x00000000000000000000000000000000000000C3","name":"Moon Sale",
			"description":"fair launch","website":"https://moon.example","approved":true,"featured":false}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "anon-key", time.Second, zaptest.NewLogger(t))
	meta, err := client.PresaleMetadata(context.Background(), presaleAddr)
	require.NoError(t, err)

	assert.Equal(t, "Moon Sale", meta.Name)
	assert.Equal(t, "0x00000000000000000000000000000000000000c3", meta.Address)
	assert.True(t, meta.Approved)
	assert.False(t, meta.Featured)
}

func TestPresaleMetadata_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", time.Second, zaptest.NewLogger(t))
	_, err := client.PresaleMetadata(context.Background(), presaleAddr)
	assert.ErrorIs(t, err, ErrMetadataNotFound)
}

func TestPresaleMetadata_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", time.Second, zaptest.NewLogger(t))
	_, err := client.PresaleMetadata(context.Background(), presaleAddr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestPresaleMetadata_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", time.Second, zaptest.NewLogger(t))
	_, err := client.PresaleMetadata(context.Background(), presaleAddr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestPresaleMetadata_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "k", 50*time.Millisecond, zaptest.NewLogger(t))
	_, err := client.PresaleMetadata(context.Background(), presaleAddr)
	assert.Error(t, err)
}
