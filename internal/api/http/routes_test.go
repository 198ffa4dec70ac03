package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"nordcast/internal/forecast"
	"nordcast/internal/store"
	"nordcast/pkg/locationforecast"
)

const routesFixture = `{
  "type": "Feature",
  "geometry": {"type": "Point", "coordinates": {"longitude": 10.7522, "latitude": 59.9139, "altitude": 94}},
  "properties": {
    "meta": {"updated_at": "2026-08-30T11:00:00Z", "units": {"air_temperature": "celsius"}},
    "timeseries": [
      {
        "time": "2026-08-30T10:00:00Z",
        "data": {
          "instant": {"details": {"air_temperature": 18.0, "wind_speed": 3.2}},
          "next_1_hours": {"summary": {"symbol_code": "cloudy"}, "details": {"precipitation_amount": 0.4}}
        }
      },
      {
        "time": "2026-08-31T10:00:00Z",
        "data": {
          "instant": {"details": {"air_temperature": 14.5, "wind_speed": 5.0}},
          "next_1_hours": {"summary": {"symbol_code": "rain"}, "details": {"precipitation_amount": 1.2}}
        }
      }
    ]
  }
}`

// mintRecord produces a real forecast record by fetching from a stub
// origin.
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
	record, err := client.Get(context.Background(), 59.9139, 10.7522)
	if err != nil {
		t.Fatalf("minting record: %v", err)
	}
	return record
}

func newTestApp(t *testing.T, seed bool) *fiber.App {
	t.Helper()

	loc := forecast.Location{Name: "Oslo", Lat: 59.9139, Lon: 10.7522}
	recordStore := store.NewMemoryStore()
	if seed {
		recordStore.Save(loc.Key(), mintRecord(t, routesFixture))
	}
	service := forecast.NewService(nil, recordStore)

	app := fiber.New()
	RegisterRoutes(app, service, []forecast.Location{loc}, time.UTC)
	return app
}

func doRequest(t *testing.T, app *fiber.App, url string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return resp.StatusCode, body
}

func TestDailyReturnsSummaries(t *testing.T) {
	app := newTestApp(t, true)

	status, body := doRequest(t, app, "/api/v1/forecast/daily?location=Oslo")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", status, body)
	}

	var payload struct {
		Days []forecast.DaySummary `json:"days"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if len(payload.Days) != 2 {
		t.Fatalf("expected 2 day summaries, got %d", len(payload.Days))
	}
	if payload.Days[0].SymbolCode != "cloudy" {
		t.Fatalf("SymbolCode = %q, want cloudy", payload.Days[0].SymbolCode)
	}
}

func TestDailyHonorsDaysParameter(t *testing.T) {
	app := newTestApp(t, true)

	status, body := doRequest(t, app, "/api/v1/forecast/daily?location=Oslo&days=1")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", status, body)
	}

	var payload struct {
		Days []forecast.DaySummary `json:"days"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if len(payload.Days) != 1 {
		t.Fatalf("expected 1 day summary, got %d", len(payload.Days))
	}
}

func TestDailyRejectsMissingLocation(t *testing.T) {
	app := newTestApp(t, true)

	status, _ := doRequest(t, app, "/api/v1/forecast/daily")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestDailyRejectsDaysOutOfRange(t *testing.T) {
	app := newTestApp(t, true)

	for _, days := range []string{"0", "10", "-3"} {
		status, _ := doRequest(t, app, "/api/v1/forecast/daily?location=Oslo&days="+days)
		if status != fiber.StatusBadRequest {
			t.Fatalf("days=%s: status = %d, want 400", days, status)
		}
	}
}

func TestDailyUnknownLocation(t *testing.T) {
	app := newTestApp(t, true)

	status, _ := doRequest(t, app, "/api/v1/forecast/daily?location=Atlantis")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestDailyBeforeFirstRefresh(t *testing.T) {
	app := newTestApp(t, false)

	status, _ := doRequest(t, app, "/api/v1/forecast/daily?location=Oslo")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestCurrentReturnsConditions(t *testing.T) {
	app := newTestApp(t, true)

	status, body := doRequest(t, app, "/api/v1/forecast/current?location=Oslo")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", status, body)
	}

	var payload struct {
		Current forecast.CurrentConditions `json:"current"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload.Current.AirTemperature == nil || *payload.Current.AirTemperature != 18.0 {
		t.Fatalf("AirTemperature = %v, want 18.0", payload.Current.AirTemperature)
	}
}

func TestCurrentRejectsMissingLocation(t *testing.T) {
	app := newTestApp(t, true)

	status, _ := doRequest(t, app, "/api/v1/forecast/current")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}
