package forecast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrFetchFailed is returned by Fetch once every attempt has failed.
var ErrFetchFailed = errors.New("forecast: failed to fetch weather forecast data")

// Unit selects the temperature unit requested from the API.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// ParseUnit accepts "c", "celsius", "metric", "f", "fahrenheit" and
// "imperial", in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "c", "celsius", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	}
	return Celsius, fmt.Errorf("forecast: unknown unit %q", s)
}

// Query returns the API's units parameter.
func (u Unit) Query() string {
	if u == Fahrenheit {
		return "imperial"
	}
	return "metric"
}

// Symbol returns the unit letter drawn after temperatures.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// Config is the configuration for a Client.
type Config struct {
	APIKey    string
	Latitude  float64
	Longitude float64
	Unit      Unit

	BaseURL    string        // default: http://api.openweathermap.org
	Timeout    time.Duration // per attempt, default: 10s
	Retries    int           // attempts, default: 3
	RetryDelay time.Duration // default: 1s
}

// Client fetches One Call responses.
type Client struct {
	cfg Config
	hc  *http.Client
}

// NewClient returns a Client for cfg. hc can be nil to use http.DefaultClient.
func NewClient(cfg Config, hc *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://api.openweathermap.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{cfg: cfg, hc: hc}
}

// URL returns the request URL, API key included.
func (c *Client) URL() string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.cfg.Latitude, 'f', 5, 64))
	q.Set("lon", strconv.FormatFloat(c.cfg.Longitude, 'f', 5, 64))
	q.Set("units", c.cfg.Unit.Query())
	q.Set("lang", "en")
	q.Set("exclude", "minutely,daily,alerts")
	q.Set("appid", c.cfg.APIKey)
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/data/3.0/onecall?" + q.Encode()
}

// Fetch downloads the forecast, retrying failed attempts after
// Config.RetryDelay. It stops early when ctx is done.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	u := c.URL()
	var last error
	for attempt := 0; attempt < c.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay):
			}
		}
		body, err := c.get(ctx, u)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		last = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrFetchFailed, c.cfg.Retries, last)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, stripURL(err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, stripURL(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// stripURL drops the request URL, and with it the API key, from a *url.Error.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
