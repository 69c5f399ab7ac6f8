package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "atlas_recs/internal/adapters/http_server"
	"atlas_recs/internal/app"
	"atlas_recs/internal/domain"
	"atlas_recs/internal/recommend"
)

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (nopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (nopCache) Del(ctx context.Context, key string) error { return nil }

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	tables := domain.Tables{
		Hotels: []domain.Hotel{
			{ID: "H1", Name: "Riad Yasmine", Category: "Riad", Location: "Medina", Price: 180},
			{ID: "H2", Name: "Palais Amani", Category: "Luxury", Location: "Hivernage", Price: 450},
			{ID: "H3", Name: "Hotel Gueliz", Category: "Budget", Location: "Gueliz", Price: 70},
			{ID: "H4", Name: "Villa Palmeraie", Category: "Boutique", Location: "Palmeraie", Price: 300},
		},
		Ratings: []domain.Rating{
			{UserID: "U1", HotelID: "H1", Value: 5}, {UserID: "U1", HotelID: "H2", Value: 5},
			{UserID: "U2", HotelID: "H1", Value: 5}, {UserID: "U2", HotelID: "H2", Value: 4},
			{UserID: "U2", HotelID: "H3", Value: 3},
			{UserID: "U3", HotelID: "H3", Value: 5}, {UserID: "U3", HotelID: "H4", Value: 5},
		},
	}
	engine := recommend.NewEngine(tables, recommend.Config{})
	q := app.NewQueryService(tables, nopCache{}, time.Minute)

	srv := server.New(1000)
	srv.MountHandlers(&server.Handlers{Q: q, Engine: engine, Metric: "cosine"})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func TestRecommend_OK(t *testing.T) {
	ts := testServer(t)

	body := `{"user_ratings":{"H1":5,"H2":5},"n_recommendations":2}`
	res, err := http.Post(ts.URL+"/api/recommend", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var out []domain.Recommendation
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(out))
	}
	if out[0].HotelID != "H3" || out[0].PredictedRating != 3.0 {
		t.Fatalf("unexpected top recommendation: %+v", out[0])
	}
	for _, rec := range out {
		if rec.HotelID == "H1" || rec.HotelID == "H2" {
			t.Fatalf("already-rated hotel returned: %s", rec.HotelID)
		}
	}
}

func TestRecommend_InvalidRatingRejected(t *testing.T) {
	ts := testServer(t)

	body := `{"user_ratings":{"H1":6},"n_recommendations":2}`
	res, err := http.Post(ts.URL+"/api/recommend", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}
}

func TestRecommend_EmptyRatingsRejected(t *testing.T) {
	ts := testServer(t)

	res, err := http.Post(ts.URL+"/api/recommend", "application/json", strings.NewReader(`{"user_ratings":{}}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", res.StatusCode)
	}
}

func TestRecommendSimple_ExposesSourceMetadata(t *testing.T) {
	ts := testServer(t)

	// Single rating: cold start, must be served by the popularity fallback.
	res, err := http.Post(ts.URL+"/api/recommend/simple", "application/json", strings.NewReader(`{"H1":5}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var out struct {
		Source          string                  `json:"source"`
		Reason          string                  `json:"reason"`
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Source != "fallback" || out.Reason != "cold_start" {
		t.Fatalf("expected cold_start fallback, got %+v", out)
	}
	for _, rec := range out.Recommendations {
		if rec.HotelID == "H1" {
			t.Fatal("rated hotel returned by fallback")
		}
	}
}

func TestListHotels_ETagRoundTrip(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/api/hotels")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if res.StatusCode != http.StatusOK || etag == "" {
		t.Fatalf("status %d etag %q", res.StatusCode, etag)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/hotels", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET 2: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("status %d, want 304", res2.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var out struct {
		Status     string `json:"status"`
		DataLoaded bool   `json:"data_loaded"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Status != "healthy" || !out.DataLoaded {
		t.Fatalf("unexpected health: %+v", out)
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var out domain.Stats
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TotalHotels != 4 || out.TotalRatings != 7 {
		t.Fatalf("unexpected stats: %+v", out)
	}
}
