package weather

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is OpenWeatherMap's current weather endpoint.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

	// UnitsMetric makes the provider report temperatures in Celsius and wind in m/s.
	UnitsMetric = "metric"
)

// Endpoint holds the fixed part of every request: base URL, API key and
// units. It is built once from configuration and never changes per request.
type Endpoint struct {
	base   *url.URL
	apiKey string
	units  string
}

// NewEndpoint parses baseURL and binds the API key. An empty baseURL selects
// DefaultBaseURL. Units default to metric.
func NewEndpoint(baseURL, apiKey string) (Endpoint, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return Endpoint{}, errors.Wrapf(err, "invalid base URL %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return Endpoint{}, errors.Errorf("base URL %q must be absolute", baseURL)
	}
	return Endpoint{
		base:   u,
		apiKey: apiKey,
		units:  UnitsMetric,
	}, nil
}

// WithUnits returns a copy of e requesting the given provider units
// ("metric", "imperial", "standard"). An empty string omits the parameter.
func (e Endpoint) WithUnits(units string) Endpoint {
	e.units = units
	return e
}

// BaseURL returns the configured endpoint without query parameters.
func (e Endpoint) BaseURL() string {
	if e.base == nil {
		return ""
	}
	return e.base.String()
}

// HasAPIKey reports whether an API key was configured.
func (e Endpoint) HasAPIKey() bool {
	return e.apiKey != ""
}

// BuildRequestURL returns the fully-qualified request URL for q.
//
// Parameters are percent-encoded (spaces as %20) and sorted by key. Any query
// string already present on the base URL is kept.
func (e Endpoint) BuildRequestURL(q Query) *url.URL {
	u := *e.base
	values := u.Query()
	values.Set("appid", e.apiKey)
	if e.units != "" {
		values.Set("units", e.units)
	}
	q.encode(values)
	// url.Values encodes spaces as '+', a literal '+' is already %2B
	u.RawQuery = strings.ReplaceAll(values.Encode(), "+", "%20")
	return &u
}

// RedactedURL renders u with the API key masked, for logs and error messages.
func RedactedURL(u *url.URL) string {
	r := *u
	values := r.Query()
	if values.Has("appid") {
		values.Set("appid", "API_KEY_HIDDEN")
	}
	r.RawQuery = strings.ReplaceAll(values.Encode(), "+", "%20")
	return r.String()
}
