package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/config"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/db/postgres"
	analysisrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/analysis"
	driverrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/driver"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/service"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/utils"
)

var (
	driverID   int
	percentage int
	seriesID   int
	eventID    int
	sessionID  int
	year       int
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "lap-time analytics on imported data",
	}
	cmd.AddCommand(newDriverCmd())
	return cmd
}

func newDriverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "aggregates a driver's fastest laps",
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeDriver()
		},
	}
	cmd.Flags().IntVar(&driverID, "driver-id", 0, "id of the driver")
	cmd.Flags().IntVar(&percentage, "percentage", 20,
		"percentage of fastest laps to consider")
	cmd.Flags().IntVar(&seriesID, "series-id", 0, "restrict to this series")
	cmd.Flags().IntVar(&eventID, "event-id", 0, "restrict to this event")
	cmd.Flags().IntVar(&sessionID, "session-id", 0, "restrict to this session")
	cmd.Flags().IntVar(&year, "year", 0, "restrict to this season year")
	//nolint:errcheck // cobra only errors on unknown flag names
	cmd.MarkFlagRequired("driver-id")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func analyzeDriver() error {
	var logger *log.Logger
	if config.LogFormat == "json" {
		logger = log.New(os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true), log.AddCallerSkip(1))
	} else {
		logger = log.DevLogger(os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true), log.AddCallerSkip(1))
	}
	log.ResetDefault(logger)

	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		timeout = 60 * time.Second
	}
	if addr := utils.ExtractFromDBURL(config.DB); addr != "" {
		if err := utils.WaitForTCP(addr, timeout); err != nil {
			log.Fatal("database not ready", log.ErrorField(err))
		}
	}
	pool := postgres.InitWithURL(config.DB)
	defer postgres.CloseDB()

	ctx := context.Background()
	drv, err := driverrepo.LoadByID(ctx, pool, driverID)
	if err != nil {
		return fmt.Errorf("unknown driver %d: %w", driverID, err)
	}
	stats, err := service.InitAnalysisService(pool).DriverStats(
		ctx, driverID, percentage, buildFilter())
	if err != nil {
		return err
	}

	type output struct {
		Driver string `json:"driver"`
		service.DriverStats
		FastestFormatted string `json:"fastestFormatted"`
		AverageFormatted string `json:"averageFormatted"`
		MedianFormatted  string `json:"medianFormatted"`
	}
	out, _ := json.MarshalIndent(output{
		Driver:           strings.TrimSpace(drv.FirstName + " " + drv.LastName),
		DriverStats:      *stats,
		FastestFormatted: service.FormatLapTime(stats.Fastest),
		AverageFormatted: service.FormatLapTime(stats.Average),
		MedianFormatted:  service.FormatLapTime(stats.Median),
	}, "", "  ")
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// zero-valued flags mean "no restriction"
func buildFilter() analysisrepo.Filter {
	ret := analysisrepo.Filter{}
	if seriesID > 0 {
		ret.SeriesID = &seriesID
	}
	if eventID > 0 {
		ret.EventID = &eventID
	}
	if sessionID > 0 {
		ret.SessionID = &sessionID
	}
	if year > 0 {
		ret.Year = &year
	}
	return ret
}
