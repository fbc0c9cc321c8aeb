package main

import (
	"context"
	"io"
	"strings"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func newCityCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "city NAME...",
		Short: "Show the weather for a city",
		Example: `  weathergetter city London
  weathergetter city "Rio de Janeiro"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return weather.ErrEmptyCity
			}
			return a.show(cmd.Context(), cmd.OutOrStdout(), weather.ByCity(name))
		},
	}
}

func newCoordsCommand(a *app) *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:     "coords --lat LAT --lon LON",
		Short:   "Show the weather at a position",
		Example: `  weathergetter coords --lat 51.5085 --lon -0.1257`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd.Context(), cmd.OutOrStdout(), weather.ByCoordinates(lat, lon))
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in decimal degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude in decimal degrees")
	cobra.CheckErr(cmd.MarkFlagRequired("lat"))
	cobra.CheckErr(cmd.MarkFlagRequired("lon"))
	return cmd
}

// show fetches q through the delegate interface and waits for the outcome.
func (a *app) show(ctx context.Context, w io.Writer, q weather.Query) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := a.client()
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer(serviceName).Start(ctx, "fetch-weather")
	span.SetAttributes(attribute.String("weather.query", q.String()))
	defer span.End()

	log.Debug().
		Str("url", weather.RedactedURL(client.Endpoint().BuildRequestURL(q))).
		Dur("timeout", client.Timeout()).
		Msg("Requesting weather")

	s := newScreen(w)
	client.Get(ctx, q, s)
	if err := <-s.done; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).Str("kind", weather.KindOf(err).String()).Msg("didNotGetWeather")
		return errors.Wrap(err, "can't get the weather")
	}
	return nil
}

// screen is the terminal counterpart of the weather labels. It renders on
// success and hands the outcome back through done.
type screen struct {
	w    io.Writer
	done chan error
}

func newScreen(w io.Writer) *screen {
	return &screen{w: w, done: make(chan error, 1)}
}

func (s *screen) OnSuccess(reading weather.Reading) {
	s.done <- render(s.w, labelsFor(reading))
}

func (s *screen) OnFailure(err error) {
	if _, werr := io.WriteString(s.w, failureMessage(err)+"\n"); werr != nil {
		log.Warn().Err(werr).Msg("Could not write failure message")
	}
	s.done <- err
}

var _ weather.Delegate = (*screen)(nil)
