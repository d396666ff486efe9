package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"piscopy/internal/store"
	"piscopy/pkg/config"

	"go.uber.org/zap"
)

// fakeStore is an in-memory stand-in for the remote JSON document store,
// implementing the same REST surface the client speaks.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]map[string]json.RawMessage
	nextID  int
	fail    bool
}

func (f *fakeStore) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeStore) record(kind, id string) (json.RawMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.records[kind][id]
	return raw, ok
}

func (f *fakeStore) count(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records[kind])
}

func (f *fakeStore) put(kind, id string, record any) {
	raw, _ := json.Marshal(record)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records == nil {
		f.records = map[string]map[string]json.RawMessage{}
	}
	if f.records[kind] == nil {
		f.records[kind] = map[string]json.RawMessage{}
	}
	f.records[kind][id] = raw
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".json")
	parts := strings.SplitN(path, "/", 2)
	kind := parts[0]
	if f.records == nil {
		f.records = map[string]map[string]json.RawMessage{}
	}
	if f.records[kind] == nil {
		f.records[kind] = map[string]json.RawMessage{}
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		if len(f.records[kind]) == 0 {
			_, _ = w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(f.records[kind])
	case len(parts) == 1 && r.Method == http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		f.nextID++
		id := fmt.Sprintf("-Fake%d", f.nextID)
		f.records[kind][id] = body
		_ = json.NewEncoder(w).Encode(map[string]string{"name": id})
	case len(parts) == 2 && r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.records[kind][parts[1]] = body
	case len(parts) == 2 && r.Method == http.MethodDelete:
		delete(f.records[kind], parts[1])
	default:
		http.NotFound(w, r)
	}
}

func newFakeStore(t *testing.T) (*fakeStore, *store.Client) {
	t.Helper()
	fake := &fakeStore{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	client := store.NewClient(&config.StoreConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
	return fake, client
}
