package plugin

import (
	"strings"
	"time"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/grafana/grafana-plugin-sdk-go/data"
	"github.com/pkg/errors"
)

// queryModel is the JSON a panel sends for one query. A non-blank city wins
// over coordinates.
type queryModel struct {
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

var errNoLocation = errors.New("either a city or both latitude and longitude are required")

func (qm queryModel) toQuery() (weather.Query, error) {
	if city := strings.TrimSpace(qm.City); city != "" {
		return weather.ByCity(city), nil
	}
	if qm.City != "" && qm.Latitude == nil && qm.Longitude == nil {
		return nil, weather.ErrEmptyCity
	}
	if qm.Latitude == nil || qm.Longitude == nil {
		return nil, errNoLocation
	}
	return weather.ByCoordinates(*qm.Latitude, *qm.Longitude), nil
}

type fieldUnits struct {
	temperature string
	windSpeed   string
}

// Grafana unit ids for the provider's unit systems.
func unitsFor(providerUnits string) fieldUnits {
	switch providerUnits {
	case "imperial":
		return fieldUnits{temperature: "fahrenheit", windSpeed: "velocitymph"}
	case "standard":
		return fieldUnits{temperature: "kelvin", windSpeed: "velocityms"}
	default:
		return fieldUnits{temperature: "celsius", windSpeed: "velocityms"}
	}
}

func readingFrame(reading weather.Reading, q weather.Query, fetchedAt time.Time, units fieldUnits) *data.Frame {
	frame := data.NewFrame(reading.City,
		data.NewField("time", nil, []time.Time{fetchedAt}),
		data.NewField("city", nil, []string{reading.City}),
		data.NewField("description", nil, []string{reading.Description}),
		data.NewField("temperature", nil, []float64{reading.TemperatureCelsius}).
			SetConfig(&data.FieldConfig{Unit: units.temperature}),
		data.NewField("cloud_cover", nil, []int64{int64(reading.CloudCoverPercent)}).
			SetConfig(&data.FieldConfig{Unit: "percent"}),
		data.NewField("wind_speed", nil, []float64{reading.WindSpeedMetersPerSecond}).
			SetConfig(&data.FieldConfig{Unit: units.windSpeed}),
		data.NewField("humidity", nil, []int64{int64(reading.HumidityPercent)}).
			SetConfig(&data.FieldConfig{Unit: "percent"}),
		data.NewField("rain_3h", nil, []*float64{reading.RainLast3HoursMm}).
			SetConfig(&data.FieldConfig{Unit: "lengthmm"}),
	)
	frame.Meta = &data.FrameMeta{
		Custom: map[string]interface{}{
			"city":  reading.City,
			"query": q.String(),
		},
	}
	return frame
}
