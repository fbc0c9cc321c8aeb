package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/amusasrd/WeatherGetter/pkg/models"
	"github.com/amusasrd/WeatherGetter/pkg/plugin/instrumentation"
	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/grafana/grafana-plugin-sdk-go/backend"
	"github.com/grafana/grafana-plugin-sdk-go/backend/instancemgmt"
	"github.com/grafana/grafana-plugin-sdk-go/backend/log"
	"github.com/grafana/grafana-plugin-sdk-go/data"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

// PluginID is the Grafana plugin id, also used as the metrics subsystem.
const PluginID = "weathergetter"

// healthCheckCity is a well-known city used to probe the API.
const healthCheckCity = "London"

var errMissingAPIKey = errors.New("missing API key")

// Make sure Datasource implements required interfaces. This is important to do
// since otherwise we will only get a not implemented error response from plugin in
// runtime.
var (
	_ backend.QueryDataHandler      = (*Datasource)(nil)
	_ backend.CheckHealthHandler    = (*Datasource)(nil)
	_ instancemgmt.InstanceDisposer = (*Datasource)(nil)
)

// Datasource serves current weather readings to Grafana panels. One instance
// exists per configured datasource; Grafana replaces it when settings change.
type Datasource struct {
	client *weather.Client
	units  fieldUnits
	inst   *instrumentation.Instrumentation
	now    func() time.Time
}

// NewDatasource creates a new datasource instance.
func NewDatasource(_ context.Context, settings backend.DataSourceInstanceSettings) (instancemgmt.Instance, error) {
	config, err := models.LoadPluginSettings(settings)
	if err != nil {
		return nil, err
	}

	endpoint, err := config.Endpoint()
	if err != nil {
		return nil, errors.Wrap(err, "invalid datasource path")
	}

	inst := instrumentation.New(PluginID, log.New().With("datasource", settings.Name), prometheus.DefaultRegisterer)

	if !endpoint.HasAPIKey() {
		inst.Logger.Error("No API key provided in datasource configuration")
	} else {
		// Don't log the actual API key
		inst.Logger.Info("API key found in configuration")
	}
	inst.Logger.Info("Creating new datasource instance", "baseURL", endpoint.BaseURL())

	return newDatasource(weather.NewClient(endpoint), config.Units, inst), nil
}

func newDatasource(client *weather.Client, units string, inst *instrumentation.Instrumentation) *Datasource {
	return &Datasource{
		client: client,
		units:  unitsFor(units),
		inst:   inst,
		now:    time.Now,
	}
}

// Dispose here tells plugin SDK that plugin wants to clean up resources when a new instance
// created. The client holds no connections of its own, so there is nothing to release.
func (d *Datasource) Dispose() {
	d.inst.Logger.Info("Disposing datasource instance")
}

// QueryData handles multiple queries and returns multiple responses.
// req contains the queries []DataQuery (where each query contains RefID as a unique identifier).
// Each query produces one frame holding the current reading for its location.
func (d *Datasource) QueryData(ctx context.Context, req *backend.QueryDataRequest) (*backend.QueryDataResponse, error) {
	start := time.Now()
	response, err := d.queryData(ctx, req)
	d.inst.Metrics.RecordRequest("query_data", start, err)
	return response, err
}

func (d *Datasource) queryData(ctx context.Context, req *backend.QueryDataRequest) (*backend.QueryDataResponse, error) {
	response := backend.NewQueryDataResponse()
	inst := d.inst.WithContext(ctx)

	inst.Logger.Info("Processing query data request", "queries", len(req.Queries))

	ctx, span := inst.Tracing.StartSpan(ctx, "queryData",
		attribute.Int("query_count", len(req.Queries)))
	defer span.End()

	for _, q := range req.Queries {
		response.Responses[q.RefID] = d.processQuery(ctx, inst, q)
	}

	return response, nil
}

func (d *Datasource) processQuery(ctx context.Context, inst *instrumentation.Instrumentation, query backend.DataQuery) backend.DataResponse {
	logger := inst.Logger.With("refID", query.RefID)

	var qm queryModel
	if err := json.Unmarshal(query.JSON, &qm); err != nil {
		logger.Error("Failed to parse query", "error", err)
		return backend.ErrDataResponse(backend.StatusBadRequest, fmt.Sprintf("json unmarshal: %v", err.Error()))
	}

	q, err := qm.toQuery()
	if err != nil {
		logger.Warn("Query has no usable location", "error", err)
		return backend.ErrDataResponse(backend.StatusBadRequest, err.Error())
	}

	if !d.client.Endpoint().HasAPIKey() {
		logger.Error("API key is missing")
		return backend.ErrDataResponse(backend.StatusBadRequest,
			"missing API key: please add a valid OpenWeather API key in the datasource configuration")
	}

	reading, err := d.fetch(ctx, inst, "process_query", q)
	if err != nil {
		logger.Error("Failed to fetch weather", "query", q.String(), "error", err)
		return errorResponse(err)
	}

	logger.Info("Weather data retrieved successfully", "city", reading.City, "query", q.String())
	return backend.DataResponse{
		Frames: []*data.Frame{readingFrame(reading, q, d.now().UTC(), d.units)},
	}
}

// fetch wraps one client call with a span and the active-request gauge.
func (d *Datasource) fetch(ctx context.Context, inst *instrumentation.Instrumentation, spanName string, q weather.Query) (weather.Reading, error) {
	ctx, span := inst.Tracing.StartSpan(ctx, spanName, attribute.String("weather.query", q.String()))
	done := inst.Metrics.Begin()
	defer done()

	start := time.Now()
	reading, err := d.client.Fetch(ctx, q)
	inst.Metrics.RecordRequest("fetch_weather", start, err)
	inst.Tracing.EndSpan(span, &reading, err)
	return reading, err
}

func errorResponse(err error) backend.DataResponse {
	status, message := classify(err)
	return backend.ErrDataResponseWithSource(status, backend.ErrorSourceDownstream, message)
}

// classify maps a fetch error to a plugin status and a user-facing message.
func classify(err error) (backend.Status, string) {
	switch weather.KindOf(err) {
	case weather.NetworkFailure:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return backend.StatusTimeout, "the weather service did not respond in time"
		}
		return backend.StatusBadGateway, fmt.Sprintf("the weather service isn't responding: %v", err)
	case weather.MalformedResponse:
		switch weather.ProviderStatus(err) {
		case http.StatusUnauthorized:
			return backend.StatusUnauthorized, "authentication failed: invalid API key. Please verify your API key is correct and active"
		case http.StatusNotFound:
			return backend.StatusNotFound, fmt.Sprintf("location not found: %v", err)
		case http.StatusTooManyRequests:
			return backend.StatusTooManyRequests, "API rate limit exceeded. Please check your subscription plan"
		}
		return backend.StatusInternal, fmt.Sprintf("unexpected response from the weather service: %v", err)
	default:
		return backend.StatusInternal, err.Error()
	}
}

// CheckHealth probes the API with a request for a well-known city.
func (d *Datasource) CheckHealth(ctx context.Context, _ *backend.CheckHealthRequest) (*backend.CheckHealthResult, error) {
	start := time.Now()
	result, err := d.checkHealth(ctx)
	d.inst.Metrics.RecordRequest("check_health", start, err)
	return result, nil
}

// checkHealth also returns the failure behind an error result so metrics can
// label it by kind.
func (d *Datasource) checkHealth(ctx context.Context) (*backend.CheckHealthResult, error) {
	inst := d.inst.WithContext(ctx)

	if !d.client.Endpoint().HasAPIKey() {
		inst.Logger.Error("API key is missing")
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: "API key is missing. Please configure a valid OpenWeather API key",
		}, errMissingAPIKey
	}

	inst.Logger.Info("Testing API connection", "baseURL", d.client.Endpoint().BaseURL())

	reading, err := d.fetch(ctx, inst, "check_health", weather.ByCity(healthCheckCity))
	if err != nil {
		inst.Logger.Error("API test failed", "error", err)
		status, message := classify(err)
		if status == backend.StatusUnauthorized {
			message = "Authentication failed: Invalid API key. Please check your API key in the datasource configuration."
		}
		return &backend.CheckHealthResult{
			Status:  backend.HealthStatusError,
			Message: "Failed to connect to OpenWeather API: " + message,
		}, err
	}

	inst.Logger.Info("Health check successful", "city", reading.City)
	return &backend.CheckHealthResult{
		Status:  backend.HealthStatusOk,
		Message: "Successfully connected to OpenWeather API",
	}, nil
}
