package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"piscopy/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(&config.StoreConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
	return client, srv
}

func TestList_ReturnsKeyedRecords(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/photos.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"-Na1":{"fileName":"a.png"},"-Na2":{"fileName":"b.png"}}`))
	}))

	records, err := client.List(context.Background(), KindPhotos)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, records, "-Na1")
	assert.Contains(t, records, "-Na2")
}

func TestList_EmptyStoreIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))

	records, err := client.List(context.Background(), KindDocuments)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestCreate_ReturnsGeneratedKey(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/photos.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"name":"-NaGenerated"}`))
	}))

	id, err := client.Create(context.Background(), KindPhotos, map[string]string{"fileName": "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "-NaGenerated", id)
	assert.Equal(t, "a.png", received["fileName"])
}

func TestCreate_MissingKeyIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := client.Create(context.Background(), KindPhotos, map[string]string{})
	require.Error(t, err)
}

func TestUpdate_PutsFullReplacement(t *testing.T) {
	var method, path string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
	}))

	err := client.Update(context.Background(), KindPhotos, "-Na1", map[string]string{"note": "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/photos/-Na1.json", path)
}

func TestDelete_RemovesRecord(t *testing.T) {
	var method, path string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
	}))

	err := client.Delete(context.Background(), KindDocuments, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/documents/doc-1.json", path)
}

func TestNon2xxStatusIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.List(context.Background(), KindPhotos)
	assert.Error(t, err)

	_, err = client.Create(context.Background(), KindPhotos, map[string]string{})
	assert.Error(t, err)

	err = client.Update(context.Background(), KindPhotos, "x", map[string]string{})
	assert.Error(t, err)

	err = client.Delete(context.Background(), KindPhotos, "x")
	assert.Error(t, err)
}

func TestUnreachableStoreIsAnError(t *testing.T) {
	client := NewClient(&config.StoreConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())
	_, err := client.List(context.Background(), KindPhotos)
	assert.Error(t, err)
}
