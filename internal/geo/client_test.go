package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/HenryKun55/ponto/internal/clock"
	"github.com/HenryKun55/ponto/internal/config"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	cfg := config.Config{Geo: config.GeoConfig{BaseURL: baseURL, Timeout: time.Second}}
	return NewClient(cfg, zap.NewNop(), node, clock.Fixed{At: time.Date(2025, 3, 18, 8, 0, 0, 0, time.UTC)})
}

func TestFetchLocationParsesProviderPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ip": "179.127.35.225",
			"success": true,
			"city": "Belo Jardim",
			"region": "State of Pernambuco",
			"region_code": "PE",
			"country": "Brazil",
			"country_code": "BR",
			"postal": "55150-000",
			"latitude": -8.3357786,
			"longitude": -36.4235973,
			"connection": {"org": "DIGITAL TECNOLOGIA", "isp": "DIGITAL TECNOLOGIA"},
			"timezone": {"id": "America/Recife"}
		}`))
	}))
	defer srv.Close()

	snap, err := newTestClient(t, srv.URL).FetchLocation(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.City != "Belo Jardim" || snap.CountryCode != "BR" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Timezone != "America/Recife" {
		t.Fatalf("expected timezone id, got %q", snap.Timezone)
	}
	if snap.ID == 0 {
		t.Fatalf("expected generated snapshot id")
	}
	if snap.Raw["ip"] != "179.127.35.225" {
		t.Fatalf("expected raw payload to be preserved")
	}
	if !snap.CapturedAt.Equal(time.Date(2025, 3, 18, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected captured_at from clock, got %v", snap.CapturedAt)
	}
}

func TestFetchLocationProviderRefusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "reserved range"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchLocation(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetchLocationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchLocation(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
