package models

import (
	"encoding/json"
	"strings"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/pkg/errors"
)

// PluginSettings is the datasource configuration stored by Grafana.
type PluginSettings struct {
	// Path is the current weather endpoint. Empty means the public OpenWeatherMap API.
	Path string `json:"path"`
	// Units is passed to the provider as-is. Empty means metric.
	Units   string                `json:"units"`
	Secrets *SecretPluginSettings `json:"-"`
}

type SecretPluginSettings struct {
	ApiKey string `json:"apiKey"`
}

func LoadPluginSettings(source backend.DataSourceInstanceSettings) (*PluginSettings, error) {
	settings := PluginSettings{}
	if len(source.JSONData) > 0 {
		if err := json.Unmarshal(source.JSONData, &settings); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal PluginSettings json")
		}
	}

	settings.Secrets = loadSecretPluginSettings(source.DecryptedSecureJSONData)

	return &settings, nil
}

func loadSecretPluginSettings(source map[string]string) *SecretPluginSettings {
	return &SecretPluginSettings{
		ApiKey: source["apiKey"],
	}
}

// BaseURL returns the endpoint URL, adding https:// when no scheme was given.
func (s *PluginSettings) BaseURL() string {
	baseURL := strings.TrimSpace(s.Path)
	if baseURL == "" {
		return weather.DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	return baseURL
}

// Endpoint builds the request endpoint from the settings and the API key.
func (s *PluginSettings) Endpoint() (weather.Endpoint, error) {
	apiKey := ""
	if s.Secrets != nil {
		apiKey = s.Secrets.ApiKey
	}
	endpoint, err := weather.NewEndpoint(s.BaseURL(), apiKey)
	if err != nil {
		return weather.Endpoint{}, err
	}
	if s.Units != "" {
		endpoint = endpoint.WithUnits(s.Units)
	}
	return endpoint, nil
}
