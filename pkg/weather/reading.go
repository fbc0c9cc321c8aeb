package weather

import (
	_ "embed"
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Reading is one current-weather observation.
type Reading struct {
	City                     string
	Description              string
	TemperatureCelsius       float64
	CloudCoverPercent        int
	WindSpeedMetersPerSecond float64
	HumidityPercent          int
	// RainLast3HoursMm is nil when the provider omits rain.3h.
	RainLast3HoursMm *float64
}

// Rain returns the 3 hour rainfall and whether the provider reported it.
func (r Reading) Rain() (float64, bool) {
	if r.RainLast3HoursMm == nil {
		return 0, false
	}
	return *r.RainLast3HoursMm, true
}

//go:embed reading.schema.json
var readingSchemaJSON []byte

var readingSchema = mustSchema(readingSchemaJSON)

func mustSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(errors.Wrap(err, "compiling reading schema"))
	}
	return s
}

// SchemaError lists every schema violation found in a payload.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "payload does not match schema: " + strings.Join(e.Violations, "; ")
}

type currentWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain *struct {
		ThreeHours *float64 `json:"3h"`
	} `json:"rain"`
}

// ParseReading validates body against the provider schema and converts it into
// a Reading. Every failure is a MalformedResponse *Error.
func ParseReading(body []byte) (Reading, error) {
	result, err := readingSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return Reading{}, newMalformedResponse(errors.Wrap(err, "decoding JSON"))
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return Reading{}, newMalformedResponse(&SchemaError{Violations: violations})
	}

	var resp currentWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Reading{}, newMalformedResponse(errors.Wrap(err, "decoding JSON"))
	}

	reading := Reading{
		City:                     resp.Name,
		Description:              resp.Weather[0].Description,
		TemperatureCelsius:       resp.Main.Temp,
		CloudCoverPercent:        int(math.Round(resp.Clouds.All)),
		WindSpeedMetersPerSecond: resp.Wind.Speed,
		HumidityPercent:          int(math.Round(resp.Main.Humidity)),
	}
	if resp.Rain != nil && resp.Rain.ThreeHours != nil {
		rain := *resp.Rain.ThreeHours
		reading.RainLast3HoursMm = &rain
	}
	return reading, nil
}
