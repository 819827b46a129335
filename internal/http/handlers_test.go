package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtel/collar-telemetry/internal/domain"
	"github.com/pawtel/collar-telemetry/internal/service"
)

type fakeStore struct {
	readings []*domain.Reading
	metrics  []*domain.Metric

	latestMetric  *domain.Metric
	latestReading *domain.Reading
	history       []domain.HistoryRow

	failWith error
}

func (f *fakeStore) InsertReading(_ context.Context, rd *domain.Reading) error {
	if f.failWith != nil {
		return f.failWith
	}
	rd.ID = int64(len(f.readings) + 1)
	rd.CreatedAt = time.Now()
	f.readings = append(f.readings, rd)
	return nil
}

func (f *fakeStore) InsertMetric(_ context.Context, m *domain.Metric) error {
	if f.failWith != nil {
		return f.failWith
	}
	m.ID = int64(len(f.metrics) + 1)
	m.CreatedAt = time.Now()
	f.metrics = append(f.metrics, m)
	return nil
}

func (f *fakeStore) InsertReadingWithMetric(ctx context.Context, rd *domain.Reading, m *domain.Metric) error {
	if err := f.InsertReading(ctx, rd); err != nil {
		return err
	}
	if m != nil {
		m.CollarID = rd.CollarID
		return f.InsertMetric(ctx, m)
	}
	return nil
}

func (f *fakeStore) LatestMetric(context.Context, string) (*domain.Metric, error) {
	return f.latestMetric, f.failWith
}

func (f *fakeStore) LatestReading(context.Context, string) (*domain.Reading, error) {
	return f.latestReading, f.failWith
}

func (f *fakeStore) History(context.Context, string, int, int) ([]domain.HistoryRow, error) {
	return f.history, f.failWith
}

func newApp(store *fakeStore) *fiber.App {
	app := fiber.New()
	Register(app, service.New(store))
	return app
}

func do(t *testing.T, app *fiber.App, req *nethttp.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp.StatusCode, body
}

func TestUsage(t *testing.T) {
	status, body := do(t, newApp(&fakeStore{}), httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])
}

func TestIngest_MissingDogName(t *testing.T) {
	store := &fakeStore{}
	status, body := do(t, newApp(store), httptest.NewRequest("GET", "/ingest?temperature=38.2", nil))
	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "dog_name")
	assert.Empty(t, store.readings)
	assert.Empty(t, store.metrics)
}

func TestIngest_ReadingAndMetric(t *testing.T) {
	store := &fakeStore{}
	status, body := do(t, newApp(store),
		httptest.NewRequest("GET", "/ingest?dog_name=Muffin&collar_id=3&temperature=38.2&stepcount=120", nil))
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])
	require.Len(t, store.readings, 1)
	require.Len(t, store.metrics, 1)

	inserted := body["inserted"].(map[string]any)
	assert.Equal(t, "Muffin", inserted["dog_name"])
	metric := body["metric"].(map[string]any)
	assert.Equal(t, 38.2, metric["temperature"])
}

func TestIngest_StoreError(t *testing.T) {
	store := &fakeStore{failWith: errors.New("pool exhausted")}
	status, body := do(t, newApp(store), httptest.NewRequest("GET", "/ingest?dog_name=Muffin", nil))
	assert.Equal(t, 500, status)
	assert.Contains(t, body["error"], "pool exhausted")
}

func TestApp_BodyInsert(t *testing.T) {
	store := &fakeStore{}
	req := httptest.NewRequest("POST", "/app",
		strings.NewReader(`{"dog_name":"Rex","breed":"German Shepherd","weight":31.4}`))
	req.Header.Set("Content-Type", "application/json")

	status, body := do(t, newApp(store), req)
	assert.Equal(t, 200, status)
	require.Len(t, store.readings, 1)
	assert.Empty(t, store.metrics, "the body endpoint is reading-only")
	require.NotNil(t, store.readings[0].Weight)
	assert.Equal(t, 31.4, *store.readings[0].Weight)
	assert.Equal(t, true, body["ok"])
}

func TestApp_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/app", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	status, body := do(t, newApp(&fakeStore{}), req)
	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["ok"])
}

func TestCollar_MissingCollarID(t *testing.T) {
	status, _ := do(t, newApp(&fakeStore{}), httptest.NewRequest("GET", "/collar?temperature=38.2", nil))
	assert.Equal(t, 400, status)
}

func TestCollar_NoMetricFields(t *testing.T) {
	store := &fakeStore{}
	status, body := do(t, newApp(store), httptest.NewRequest("GET", "/collar?collar_id=2", nil))
	assert.Equal(t, 405, status)
	assert.Equal(t, false, body["ok"])
	assert.Empty(t, store.metrics)
}

func TestCollar_Insert(t *testing.T) {
	store := &fakeStore{}
	status, body := do(t, newApp(store),
		httptest.NewRequest("GET", "/collar?collar_id=2&accel_x=0.1&gyro_z=-0.02&npl_time=2024-05-01T10:30:00Z", nil))
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])
	require.Len(t, store.metrics, 1)
	require.NotNil(t, store.metrics[0].NPLTime)
}

func TestLatest_NotFound(t *testing.T) {
	status, body := do(t, newApp(&fakeStore{}), httptest.NewRequest("GET", "/1", nil))
	assert.Equal(t, 404, status)
	assert.Equal(t, false, body["ok"])
}

func TestLatest_Found(t *testing.T) {
	temp := 38.9
	store := &fakeStore{latestMetric: &domain.Metric{ID: 12, Temperature: &temp}}
	status, body := do(t, newApp(store), httptest.NewRequest("GET", "/4", nil))
	assert.Equal(t, 200, status)
	metric := body["metric"].(map[string]any)
	assert.Equal(t, float64(12), metric["id"])
	assert.Nil(t, body["reading"], "missing reading is null, not an error")
}

func TestLatest_OutOfRangeFallsThrough(t *testing.T) {
	resp, err := newApp(&fakeStore{}).Test(httptest.NewRequest("GET", "/9", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestByCollar_MissingCollarID(t *testing.T) {
	status, _ := do(t, newApp(&fakeStore{}), httptest.NewRequest("GET", "/by-collar", nil))
	assert.Equal(t, 400, status)
}

func TestByCollar_OK(t *testing.T) {
	store := &fakeStore{history: []domain.HistoryRow{{ReadingID: 1, DogName: "Muffin"}}}
	status, body := do(t, newApp(store), httptest.NewRequest("GET", "/by-collar?collar_id=3&limit=10", nil))
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
}
