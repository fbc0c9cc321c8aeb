package weather

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEndpoint_Defaults(t *testing.T) {
	e, err := NewEndpoint("", "KEY")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, e.BaseURL())
	assert.True(t, e.HasAPIKey())

	u := e.BuildRequestURL(ByCity("London"))
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather?appid=KEY&q=London&units=metric", u.String())
}

func TestNewEndpoint_RejectsRelativeURL(t *testing.T) {
	_, err := NewEndpoint("api.openweathermap.org/data/2.5/weather", "KEY")
	assert.Error(t, err)

	_, err = NewEndpoint("://broken", "KEY")
	assert.Error(t, err)
}

func TestBuildRequestURL_CityIsPercentEncoded(t *testing.T) {
	e, err := NewEndpoint("", "KEY")
	require.NoError(t, err)

	names := []string{
		"London",
		"New York",
		"São Paulo",
		"Saint-Denis & Co",
		"a+b",
		"what?#fragment/path",
		"  padded  ",
		"Ho Chi Minh City=1;x",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			u := e.BuildRequestURL(ByCity(name))
			s := u.String()
			assert.NotContains(t, s, " ")
			assert.NotContains(t, u.RawQuery, "+")
			assert.Equal(t, name, u.Query().Get("q"))
			assert.Equal(t, "KEY", u.Query().Get("appid"))
			assert.False(t, u.Query().Has("lat"))
		})
	}
}

func TestBuildRequestURL_SpaceIsPercent20(t *testing.T) {
	e, err := NewEndpoint("", "KEY")
	require.NoError(t, err)

	u := e.BuildRequestURL(ByCity("New York"))
	assert.Contains(t, u.RawQuery, "q=New%20York")
}

func TestBuildRequestURL_CoordinatesAreLossless(t *testing.T) {
	e, err := NewEndpoint("", "KEY")
	require.NoError(t, err)

	cases := []struct {
		lat, lon float64
	}{
		{51.5074, -0.1278},
		{0, 0},
		{-33.868820, 151.209296},
		{math.Pi, -math.E},
		{0.0000001, 179.99999999999997},
		{-90, 180},
	}
	for _, c := range cases {
		u := e.BuildRequestURL(ByCoordinates(c.lat, c.lon))
		q := u.Query()

		lat, err := strconv.ParseFloat(q.Get("lat"), 64)
		require.NoError(t, err)
		lon, err := strconv.ParseFloat(q.Get("lon"), 64)
		require.NoError(t, err)

		assert.Equal(t, c.lat, lat)
		assert.Equal(t, c.lon, lon)
		assert.False(t, strings.ContainsAny(q.Get("lat"), "eE"), "no exponent notation")
		assert.False(t, q.Has("q"))
	}
}

func TestBuildRequestURL_ParameterOrder(t *testing.T) {
	e, err := NewEndpoint("https://example.test/weather", "abc")
	require.NoError(t, err)

	u := e.BuildRequestURL(ByCoordinates(10.5, -20.25))
	assert.Equal(t, "appid=abc&lat=10.5&lon=-20.25&units=metric", u.RawQuery)
}

func TestBuildRequestURL_WithoutUnits(t *testing.T) {
	e, err := NewEndpoint("https://example.test/weather", "abc")
	require.NoError(t, err)

	u := e.WithUnits("").BuildRequestURL(ByCity("Oslo"))
	assert.Equal(t, "appid=abc&q=Oslo", u.RawQuery)

	u = e.WithUnits("imperial").BuildRequestURL(ByCity("Oslo"))
	assert.Equal(t, "imperial", u.Query().Get("units"))
}

func TestBuildRequestURL_KeepsBaseQuery(t *testing.T) {
	e, err := NewEndpoint("https://example.test/weather?lang=fr", "abc")
	require.NoError(t, err)

	u := e.BuildRequestURL(ByCity("Paris"))
	assert.Equal(t, "fr", u.Query().Get("lang"))
	assert.Equal(t, "Paris", u.Query().Get("q"))
}

func TestRedactedURL(t *testing.T) {
	e, err := NewEndpoint("", "secret-key")
	require.NoError(t, err)

	redacted := RedactedURL(e.BuildRequestURL(ByCity("Rome")))
	assert.NotContains(t, redacted, "secret-key")
	assert.Contains(t, redacted, "appid=API_KEY_HIDDEN")
	assert.Contains(t, redacted, "q=Rome")
}

func TestQueryString(t *testing.T) {
	assert.Equal(t, "city=Lima", ByCity("Lima").String())
	assert.Equal(t, "lat=1.5,lon=-2", ByCoordinates(1.5, -2).String())
}
