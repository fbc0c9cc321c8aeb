package main

import (
	"os"
	"strings"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	a := newApp(viper.New())
	if err := a.run(newRootCommand(a)); err != nil {
		os.Exit(1)
	}
}

// app carries what the subcommands need once flags and config are resolved.
type app struct {
	v              *viper.Viper
	shutdownTracer func() error
}

func newApp(v *viper.Viper) *app {
	return &app{v: v, shutdownTracer: func() error { return nil }}
}

// run executes cmd and flushes pending spans whatever the outcome. Cobra
// skips post-run hooks when a command fails.
func (a *app) run(cmd *cobra.Command) error {
	err := cmd.Execute()
	if serr := a.shutdownTracer(); serr != nil {
		log.Warn().Err(serr).Msg("Could not flush traces")
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	v := a.v
	rootCmd := &cobra.Command{
		Use:           "weathergetter",
		Short:         "weathergetter shows the current weather for a city or a position",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			if err := initLogger(a.logConfig()); err != nil {
				return err
			}
			shutdown, err := initTracer(a.v.GetString("zipkin-url"))
			if err != nil {
				return err
			}
			a.shutdownTracer = shutdown
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default: weathergetter.yaml in ., $HOME/.weathergetter or the user config dir)")
	flags.String("api-key", "", "OpenWeatherMap API key")
	flags.String("base-url", weather.DefaultBaseURL, "Current weather endpoint")
	flags.String("units", weather.UnitsMetric, "Provider units (metric, imperial, standard)")
	flags.Duration("timeout", weather.DefaultTimeout, "Request timeout")
	flags.String("zipkin-url", "", "Export a trace span per request to this Zipkin collector")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (json, text)")
	flags.String("log-file", "", "Also write logs to this file")
	flags.Bool("with-caller", false, "Log caller information")
	cobra.CheckErr(v.BindPFlags(flags))

	rootCmd.AddCommand(newCityCommand(a), newCoordsCommand(a))
	return rootCmd
}

func (a *app) loadConfig() error {
	a.v.SetEnvPrefix("weathergetter")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if configPath := a.v.GetString("config"); configPath != "" {
		a.v.SetConfigFile(configPath)
	} else {
		a.v.SetConfigName("weathergetter")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.weathergetter")
		if xdgConfigPath, err := os.UserConfigDir(); err == nil {
			a.v.AddConfigPath(xdgConfigPath + "/weathergetter")
		}
	}

	err := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	log.Debug().Str("config", a.v.ConfigFileUsed()).Msg("Loaded configuration")
	return nil
}

func (a *app) logConfig() *logConfig {
	return &logConfig{
		Level:      a.v.GetString("log-level"),
		LogFormat:  a.v.GetString("log-format"),
		LogFile:    a.v.GetString("log-file"),
		WithCaller: a.v.GetBool("with-caller"),
	}
}

func (a *app) client() (*weather.Client, error) {
	apiKey := a.v.GetString("api-key")
	if apiKey == "" {
		return nil, errors.New("no API key: set --api-key, WEATHERGETTER_API_KEY or api-key in the config file")
	}
	endpoint, err := weather.NewEndpoint(a.v.GetString("base-url"), apiKey)
	if err != nil {
		return nil, err
	}
	endpoint = endpoint.WithUnits(a.v.GetString("units"))

	timeout := a.v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = weather.DefaultTimeout
	}
	return weather.NewClient(endpoint, weather.WithTimeout(timeout)), nil
}
