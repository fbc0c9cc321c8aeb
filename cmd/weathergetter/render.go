package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
)

type labels struct {
	City        string
	Weather     string
	Temperature string
	CloudCover  string
	Wind        string
	Rain        string
	Humidity    string
}

func labelsFor(r weather.Reading) labels {
	rain := "None"
	if mm, ok := r.Rain(); ok {
		rain = strconv.FormatFloat(mm, 'f', -1, 64) + " mm"
	}
	return labels{
		City:        r.City,
		Weather:     r.Description,
		Temperature: fmt.Sprintf("%d°", int(math.Round(r.TemperatureCelsius))),
		CloudCover:  fmt.Sprintf("%d%%", r.CloudCoverPercent),
		Wind:        strconv.FormatFloat(r.WindSpeedMetersPerSecond, 'f', -1, 64) + " m/s",
		Rain:        rain,
		Humidity:    fmt.Sprintf("%d%%", r.HumidityPercent),
	}
}

func render(w io.Writer, l labels) error {
	_, err := fmt.Fprintf(w,
		"City:        %s\nWeather:     %s\nTemperature: %s\nCloud cover: %s\nWind:        %s\nRain (3h):   %s\nHumidity:    %s\n",
		l.City, l.Weather, l.Temperature, l.CloudCover, l.Wind, l.Rain, l.Humidity)
	return err
}

func failureMessage(err error) string {
	switch weather.KindOf(err) {
	case weather.NetworkFailure:
		return "Can't get the weather: the weather service isn't responding."
	case weather.MalformedResponse:
		if weather.ProviderStatus(err) != 0 {
			return "Can't get the weather: " + err.Error()
		}
		return "Can't get the weather: the weather service sent a response that could not be read."
	default:
		return "Can't get the weather."
	}
}
