package main

import (
	"bytes"
	"testing"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsFor(t *testing.T) {
	rain := 0.5
	l := labelsFor(weather.Reading{
		City:                     "London",
		Description:              "light rain",
		TemperatureCelsius:       15.4,
		CloudCoverPercent:        40,
		WindSpeedMetersPerSecond: 3.2,
		HumidityPercent:          80,
		RainLast3HoursMm:         &rain,
	})

	assert.Equal(t, labels{
		City:        "London",
		Weather:     "light rain",
		Temperature: "15°",
		CloudCover:  "40%",
		Wind:        "3.2 m/s",
		Rain:        "0.5 mm",
		Humidity:    "80%",
	}, l)
}

func TestLabelsFor_NoRainAndNegativeTemperature(t *testing.T) {
	l := labelsFor(weather.Reading{TemperatureCelsius: -2.6})
	assert.Equal(t, "None", l.Rain)
	assert.Equal(t, "-3°", l.Temperature)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, labels{City: "Oslo", Rain: "None"}))
	assert.Contains(t, buf.String(), "City:        Oslo\n")
	assert.Contains(t, buf.String(), "Rain (3h):   None\n")
}

func TestFailureMessage(t *testing.T) {
	network := &weather.Error{Kind: weather.NetworkFailure, Cause: errors.New("dial tcp: refused")}
	assert.Contains(t, failureMessage(network), "isn't responding")

	provider := &weather.Error{Kind: weather.MalformedResponse, Cause: &weather.ProviderError{StatusCode: 404, Message: "city not found"}}
	assert.Contains(t, failureMessage(provider), "city not found")

	schema := &weather.Error{Kind: weather.MalformedResponse, Cause: &weather.SchemaError{Violations: []string{"x"}}}
	assert.Contains(t, failureMessage(schema), "could not be read")

	assert.Equal(t, "Can't get the weather.", failureMessage(errors.New("other")))
}

func TestScreen_DeliversOutcome(t *testing.T) {
	var buf bytes.Buffer
	s := newScreen(&buf)
	s.OnSuccess(weather.Reading{City: "Lima"})
	require.NoError(t, <-s.done)
	assert.Contains(t, buf.String(), "Lima")

	buf.Reset()
	s = newScreen(&buf)
	cause := &weather.Error{Kind: weather.NetworkFailure, Cause: errors.New("timeout")}
	s.OnFailure(cause)
	assert.Equal(t, cause, <-s.done)
	assert.Contains(t, buf.String(), "Can't get the weather")
}
