package imports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/config"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/db/postgres"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/csv"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/service"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/utils"
)

var (
	url       string
	sessionID int
	dialect   string
)

func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "imports a timing CSV export into the database",
	}

	cmd.PersistentFlags().StringVarP(&url, "url", "u", "",
		"location of the CSV export")
	cmd.PersistentFlags().IntVarP(&sessionID, "session-id", "s", 0,
		"id of the (pre-existing) session the data belongs to")
	cmd.PersistentFlags().BoolVar(&config.EnableTelemetry,
		"enable-telemetry",
		false,
		"enables telemetry")
	cmd.PersistentFlags().StringVar(&config.TelemetryEndpoint,
		"telemetry-endpoint",
		"localhost:4317",
		"Endpoint that receives open telemetry data")
	cmd.PersistentFlags().StringVar(&config.NatsURL,
		"nats-url",
		"",
		"if set, job transitions are published to this NATS server")
	//nolint:errcheck // cobra only errors on unknown flag names
	cmd.MarkPersistentFlagRequired("url")
	//nolint:errcheck // cobra only errors on unknown flag names
	cmd.MarkPersistentFlagRequired("session-id")

	cmd.AddCommand(newResultsCmd())
	cmd.AddCommand(newTimecardCmd())
	return cmd
}

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "imports a classification (results) CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(model.KindResults)
		},
	}
	cmd.Flags().StringVarP(&dialect, "dialect", "d", "IMSA",
		"column convention of the sheet (IMSA, WEC)")
	return cmd
}

func newTimecardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timecard",
		Short: "imports a lap-by-lap timecard CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(model.KindTimecard)
		},
	}
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLoggers() (logger, sqlLogger *log.Logger) {
	switch config.LogFormat {
	case "json":
		if config.LogFilter != "" {
			var err error
			logger, err = log.NewWithFilters(
				os.Stderr,
				parseLogLevel(config.LogLevel, log.InfoLevel),
				config.LogFilter,
				log.WithCaller(true),
				log.AddCallerSkip(1))
			if err != nil {
				log.Fatal("invalid log filter rules", log.ErrorField(err))
			}
		} else {
			logger = log.New(
				os.Stderr,
				parseLogLevel(config.LogLevel, log.InfoLevel),
				log.WithCaller(true),
				log.AddCallerSkip(1))
		}
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	return logger, sqlLogger
}

//nolint:funlen,cyclop // by design
func runImport(kind string) error {
	logger, sqlLogger := setupLoggers()
	log.ResetDefault(logger)

	parsedDialect, err := csv.ParseDialect(dialect)
	if err != nil && kind == model.KindResults {
		return err
	}

	waitForRequiredServices()

	var telemetry *config.Telemetry
	pgTraceOption := postgres.WithTracer(sqlLogger, log.DebugLevel)
	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		if telemetry, err = config.SetupTelemetry(context.Background()); err == nil {
			pgTraceOption = postgres.WithOtlpTracer()
		} else {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}
	defer func() {
		if telemetry != nil {
			telemetry.Shutdown()
		}
	}()

	pool := postgres.InitWithURL(config.DB, pgTraceOption)
	defer postgres.CloseDB()

	tracker := service.NewDBJobTracker(pool)
	if config.NatsURL != "" {
		nc, ncErr := nats.Connect(config.NatsURL)
		if ncErr != nil {
			log.Warn("Could not connect to NATS, job events will not be published",
				log.String("url", config.NatsURL), log.ErrorField(ncErr))
		} else {
			defer nc.Close()
			tracker = service.NewNatsJobTracker(tracker, nc, logger)
		}
	}

	status := service.InitImportService(pool, tracker, logger).Run(
		context.Background(),
		service.ImportParams{
			URL:       url,
			SessionID: sessionID,
			Kind:      kind,
			Dialect:   parsedDialect,
		})

	out, _ := json.Marshal(status)
	fmt.Fprintln(os.Stdout, string(out))
	if status.State == model.JobFailed {
		if status.Error != nil {
			return errors.New(*status.Error)
		}
		return errors.New("import failed")
	}
	return nil
}

func waitForRequiredServices() {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}

	wg := sync.WaitGroup{}
	checkTCP := func(addr string) {
		if err = utils.WaitForTCP(addr, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
		wg.Done()
	}

	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		wg.Add(1)
		go checkTCP(postgresAddr)
	}
	log.Debug("Waiting for connection checks to return")
	wg.Wait()
	log.Debug("Required services are available")
}
