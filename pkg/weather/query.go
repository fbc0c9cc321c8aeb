package weather

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query selects the location a reading is requested for. It is either a
// city name (ByCity) or a coordinate pair (ByCoordinates).
type Query interface {
	fmt.Stringer
	encode(values url.Values)
}

// CityQuery requests the weather for a place name.
type CityQuery struct {
	Name string
}

// CoordinatesQuery requests the weather for a latitude/longitude pair.
type CoordinatesQuery struct {
	Latitude  float64
	Longitude float64
}

// ByCity returns a query for the named city. Callers must not pass an empty
// or whitespace-only name.
func ByCity(name string) Query {
	return CityQuery{Name: name}
}

// ByCoordinates returns a query for the given position in decimal degrees.
func ByCoordinates(lat, lon float64) Query {
	return CoordinatesQuery{Latitude: lat, Longitude: lon}
}

func (q CityQuery) encode(values url.Values) {
	values.Set("q", q.Name)
}

func (q CityQuery) String() string {
	return "city=" + q.Name
}

func (q CoordinatesQuery) encode(values url.Values) {
	values.Set("lat", formatCoordinate(q.Latitude))
	values.Set("lon", formatCoordinate(q.Longitude))
}

func (q CoordinatesQuery) String() string {
	return "lat=" + formatCoordinate(q.Latitude) + ",lon=" + formatCoordinate(q.Longitude)
}

// shortest representation that parses back to the same float64
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	_ Query = CityQuery{}
	_ Query = CoordinatesQuery{}
)
