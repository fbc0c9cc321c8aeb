package models

import (
	"testing"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPluginSettings(t *testing.T) {
	settings, err := LoadPluginSettings(backend.DataSourceInstanceSettings{
		JSONData:                []byte(`{"path": "api.example.test/data/2.5/weather", "units": "imperial"}`),
		DecryptedSecureJSONData: map[string]string{"apiKey": "secret"},
	})
	require.NoError(t, err)

	assert.Equal(t, "imperial", settings.Units)
	assert.Equal(t, "secret", settings.Secrets.ApiKey)
	assert.Equal(t, "https://api.example.test/data/2.5/weather", settings.BaseURL())

	endpoint, err := settings.Endpoint()
	require.NoError(t, err)
	u := endpoint.BuildRequestURL(weather.ByCity("Lyon"))
	assert.Equal(t, "imperial", u.Query().Get("units"))
	assert.Equal(t, "secret", u.Query().Get("appid"))
}

func TestLoadPluginSettings_Defaults(t *testing.T) {
	settings, err := LoadPluginSettings(backend.DataSourceInstanceSettings{})
	require.NoError(t, err)

	assert.Equal(t, weather.DefaultBaseURL, settings.BaseURL())
	assert.Empty(t, settings.Secrets.ApiKey)

	endpoint, err := settings.Endpoint()
	require.NoError(t, err)
	assert.False(t, endpoint.HasAPIKey())
	assert.Equal(t, "metric", endpoint.BuildRequestURL(weather.ByCity("Lyon")).Query().Get("units"))
}

func TestLoadPluginSettings_KeepsExplicitScheme(t *testing.T) {
	settings, err := LoadPluginSettings(backend.DataSourceInstanceSettings{
		JSONData: []byte(`{"path": "http://localhost:8080/weather"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/weather", settings.BaseURL())
}

func TestLoadPluginSettings_InvalidJSON(t *testing.T) {
	_, err := LoadPluginSettings(backend.DataSourceInstanceSettings{
		JSONData: []byte(`{"path": `),
	})
	assert.Error(t, err)
}
