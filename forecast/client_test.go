package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestUnit(t *testing.T) {
	tests := []struct {
		in     string
		unit   Unit
		query  string
		symbol string
	}{
		{"c", Celsius, "metric", "C"},
		{"Celsius", Celsius, "metric", "C"},
		{"metric", Celsius, "metric", "C"},
		{"F", Fahrenheit, "imperial", "F"},
		{"fahrenheit", Fahrenheit, "imperial", "F"},
		{"imperial", Fahrenheit, "imperial", "F"},
	}

	for _, tt := range tests {
		u, err := ParseUnit(tt.in)
		if err != nil {
			t.Fatalf("ParseUnit(%q) = %v", tt.in, err)
		}
		if u != tt.unit || u.Query() != tt.query || u.Symbol() != tt.symbol {
			t.Errorf("ParseUnit(%q) = %d %s %s", tt.in, u, u.Query(), u.Symbol())
		}
	}
	if _, err := ParseUnit("kelvin"); err == nil {
		t.Error("ParseUnit(kelvin) succeeded")
	}
}

func TestFetchRequest(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"current":{}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{
		APIKey:    "secret",
		Latitude:  35.6813,
		Longitude: 139.76707,
		Unit:      Fahrenheit,
		BaseURL:   srv.URL + "/",
	}, srv.Client())
	body, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"current":{}}` {
		t.Errorf("body = %q", body)
	}

	if got.URL.Path != "/data/3.0/onecall" {
		t.Errorf("path = %q", got.URL.Path)
	}
	want := map[string]string{
		"lat":     "35.68130",
		"lon":     "139.76707",
		"units":   "imperial",
		"lang":    "en",
		"exclude": "minutely,daily,alerts",
		"appid":   "secret",
	}
	q := got.URL.Query()
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("%s = %q, want %q", k, q.Get(k), v)
		}
	}
}

func TestFetchRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Retries: 3, RetryDelay: time.Millisecond}, srv.Client())
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("%d requests, want 3", n)
	}
}

func TestFetchGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Retries: 2, RetryDelay: time.Millisecond}, srv.Client())
	_, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("Fetch() = %v, want %v", err, ErrFetchFailed)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("%d requests, want 2", n)
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Config{BaseURL: srv.URL, Retries: 1, Timeout: 20 * time.Millisecond}, srv.Client())
	if _, err := c.Fetch(context.Background()); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("Fetch() = %v, want %v", err, ErrFetchFailed)
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(Config{BaseURL: srv.URL, Retries: 5, RetryDelay: time.Hour}, srv.Client())
	if _, err := c.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() = %v, want %v", err, context.Canceled)
	}
}

func TestFetchErrorHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(Config{APIKey: "SECRETKEY123", BaseURL: base, Retries: 1}, nil)
	_, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("Fetch() = %v, want %v", err, ErrFetchFailed)
	}
	if strings.Contains(err.Error(), "SECRETKEY123") {
		t.Errorf("error leaks the API key: %v", err)
	}
	if strings.Contains(err.Error(), "appid") {
		t.Errorf("error leaks the request URL: %v", err)
	}
}
