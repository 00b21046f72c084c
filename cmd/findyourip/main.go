package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qdm12/findyourip/internal/backup"
	"github.com/qdm12/findyourip/internal/config"
	"github.com/qdm12/findyourip/internal/counter"
	"github.com/qdm12/findyourip/internal/health"
	"github.com/qdm12/findyourip/internal/metrics"
	"github.com/qdm12/findyourip/internal/models"
	"github.com/qdm12/findyourip/internal/persistence"
	"github.com/qdm12/findyourip/internal/server"
	"github.com/qdm12/findyourip/internal/shoutrrr"
	"github.com/qdm12/findyourip/pkg/doh"
	"github.com/qdm12/findyourip/pkg/geolocation"
	"github.com/qdm12/goservices"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)

	errorCh := make(chan error)
	go func() {
		errorCh <- _main(ctx, reader, os.Args, logger, buildInfo, time.Now)
	}()

	select {
	case <-ctx.Done():
		stop()
		logger.Warn("Caught OS signal, shutting down")
	case err := <-errorCh:
		stop()
		close(errorCh)
		if err == nil { // expected exit such as healthcheck
			os.Exit(0)
		}
		logger.Error(err.Error())
		cancel()
	}

	const shutdownGracePeriod = 5 * time.Second
	timer := time.NewTimer(shutdownGracePeriod)
	select {
	case err := <-errorCh:
		if !timer.Stop() {
			<-timer.C
		}
		if err != nil {
			logger.Error(err.Error())
		}
		logger.Info("Shutdown successful")
	case <-timer.C:
		logger.Warn("Shutdown timed out")
	}

	os.Exit(1)
}

func _main(ctx context.Context, reader *reader.Reader, args []string, logger log.LoggerInterface,
	buildInfo models.BuildInformation, timeNow func() time.Time) (err error) {
	if len(args) > 1 {
		switch args[1] {
		case "version", "-version", "--version":
			fmt.Println(buildInfo.VersionString())
			return nil
		case "healthcheck":
			// Query the long running instance of the program about its
			// status, for example from a Docker healthcheck.
			var healthSettings config.Health
			healthSettings.Read(reader)
			healthSettings.SetDefaults()
			err = healthSettings.Validate()
			if err != nil {
				return fmt.Errorf("health settings: %w", err)
			}

			client := health.NewClient()
			return client.Query(ctx, *healthSettings.ServerAddress)
		}
	}

	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	shoutrrrSettings := shoutrrr.Settings{
		Addresses:    config.Shoutrrr.Addresses,
		DefaultTitle: config.Shoutrrr.DefaultTitle,
		Logger:       logger.New(log.SetComponent("shoutrrr")),
	}
	shoutrrrClient, err := shoutrrr.New(shoutrrrSettings)
	if err != nil {
		return fmt.Errorf("setting up Shoutrrr: %w", err)
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	var metricsHandler http.Handler
	if *config.Server.MetricsEnabled {
		metricsHandler = promhttp.Handler()
	}

	client := appMetrics.InstrumentClient(&http.Client{Timeout: config.Client.Timeout})
	defer client.CloseIdleConnections()

	const connectivityURL = "https://github.com"
	err = health.CheckHTTP(ctx, client, connectivityURL)
	if err != nil {
		logger.Warn(err.Error())
	}

	db, err := persistence.New(config.Counter.ToPersistence(*config.Paths.DataDir))
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("creating counter database: %w", err)
	}
	counterService := counter.New(db, logger.New(log.SetComponent("counter")),
		appMetrics, shoutrrrClient)

	locator, err := geolocation.New(client, config.Geolocation.ToOptions()...)
	if err != nil {
		return fmt.Errorf("creating geolocation client: %w", err)
	}

	resolver, err := doh.New(client, config.Lookup.ToOptions()...)
	if err != nil {
		return fmt.Errorf("creating DNS over HTTPS resolver: %w", err)
	}

	healthLogger := logger.New(log.SetComponent("healthcheck server"))
	isHealthy := health.MakeIsHealthy(counterService, healthLogger)
	healthServer, err := health.NewServer(*config.Health.ServerAddress, healthLogger, isHealthy)
	if err != nil {
		return fmt.Errorf("creating health server: %w", err)
	}

	httpServer, err := server.New(server.Settings{
		Address:           config.Server.ListeningAddress,
		RootURL:           config.Server.RootURL,
		TrustProxyHeaders: *config.Server.TrustProxyHeaders,
		MetricsHandler:    metricsHandler,
		Counter:           counterService,
		Locator:           locator,
		Resolver:          resolver,
		Metrics:           appMetrics,
		Logger:            logger.New(log.SetComponent("http server")),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	var backupService goservices.Service
	backupLogger := logger.New(log.SetComponent("backup"))
	backupService = backup.New(config.Backup.Period, *config.Backup.Directory,
		counterService, backupLogger, timeNow)
	backupService, err = goservices.NewRestarter(goservices.RestarterSettings{Service: backupService})
	if err != nil {
		return fmt.Errorf("creating backup restarter: %w", err)
	}

	servicesSequence, err := goservices.NewSequence(goservices.SequenceSettings{
		ServicesStart: []goservices.Service{db, healthServer, httpServer, backupService},
		ServicesStop:  []goservices.Service{httpServer, healthServer, backupService, db},
	})
	if err != nil {
		return fmt.Errorf("creating services sequence: %w", err)
	}

	runError, startErr := servicesSequence.Start(ctx)
	if startErr != nil {
		shoutrrrClient.Notify(startErr.Error())
		return fmt.Errorf("starting services: %w", startErr)
	}

	shoutrrrClient.Notify("Launched with " + db.String() + " on " +
		config.Server.ListeningAddress)

	select {
	case <-ctx.Done():
	case err = <-runError:
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("exiting due to critical error: %w", err)
	}

	err = servicesSequence.Stop()
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("stopping failed: %w", err)
	}

	return nil
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "findyourip",
		Emails:     []string{"quentin.mcgaw@gmail.com"},
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
		// Sponsor information
		PaypalUser:    "qmcgaw",
		GithubSponsor: "qdm12",
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)
	logger.Info(config.String())

	return config, nil
}
