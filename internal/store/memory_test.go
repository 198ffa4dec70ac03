package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nordcast/pkg/locationforecast"
)

// mintRecord produces a real forecast record by running a fetch against a
// stub origin; records cannot be fabricated directly.
func mintRecord(t *testing.T, body string) *locationforecast.Response {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Last-Modified", "Sat, 30 Aug 2026 11:00:00 GMT")
		w.Write([]byte(body))
	}))
	defer server.Close()

	client, err := locationforecast.NewClient("nordcast-tests example@example.com", locationforecast.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	record, err := client.Get(context.Background(), 50.088, 14.4207)
	if err != nil {
		t.Fatalf("minting record: %v", err)
	}
	return record
}

const stubBody = `{"type":"Feature","geometry":{"type":"Point","coordinates":{"longitude":14.4207,"latitude":50.088,"altitude":202}},"properties":{"meta":{"updated_at":"2026-08-30T11:00:00Z","units":{}},"timeseries":[]}}`

func TestLatestReturnsSavedRecord(t *testing.T) {
	s := NewMemoryStore()
	record := mintRecord(t, stubBody)

	s.Save("50.0880:14.4207", record)

	got, err := s.Latest("50.0880:14.4207")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != record {
		t.Fatal("expected the identical record back")
	}
}

func TestLatestUnknownKey(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Latest("0.0000:0.0000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = s.FetchedAt("0.0000:0.0000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from FetchedAt, got %v", err)
	}
}

func TestSaveReplacesRecord(t *testing.T) {
	s := NewMemoryStore()
	first := mintRecord(t, stubBody)
	second := mintRecord(t, stubBody)

	s.Save("k", first)
	s.Save("k", second)

	got, err := s.Latest("k")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != second {
		t.Fatal("expected the newest record")
	}

	fetchedAt, err := s.FetchedAt("k")
	if err != nil {
		t.Fatalf("FetchedAt: %v", err)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Fatalf("implausible fetchedAt: %v", fetchedAt)
	}
}
