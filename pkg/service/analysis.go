package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
	analysisrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/analysis"
)

var ErrNoLaps = errors.New("no laps recorded")

type AnalysisService struct {
	conn repository.Querier
}

func InitAnalysisService(conn repository.Querier) *AnalysisService {
	return &AnalysisService{conn: conn}
}

// DriverStats aggregates a driver's fastest laps. Percentage selects
// how much of the field to consider: 20 means the fastest fifth of all
// recorded laps.
type DriverStats struct {
	DriverID       int             `json:"driverId"`
	TotalLaps      int             `json:"totalLaps"`
	ConsideredLaps int             `json:"consideredLaps"`
	Percentage     int             `json:"percentage"`
	Fastest        decimal.Decimal `json:"fastestSeconds"`
	Average        decimal.Decimal `json:"averageSeconds"`
	Median         decimal.Decimal `json:"medianSeconds"`
}

func (s *AnalysisService) DriverStats(
	ctx context.Context,
	driverID int,
	percentage int,
	filter analysisrepo.Filter,
) (*DriverStats, error) {
	if percentage <= 0 || percentage > 100 {
		return nil, fmt.Errorf("percentage out of range: %d", percentage)
	}
	times, err := analysisrepo.LoadDriverLapTimes(ctx, s.conn, driverID, filter)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: driver %d", ErrNoLaps, driverID)
	}

	considered := len(times) * percentage / 100
	if considered < 1 {
		considered = 1
	}
	top := times[:considered]

	sum := lo.Reduce(top, func(agg, item decimal.Decimal, _ int) decimal.Decimal {
		return agg.Add(item)
	}, decimal.Zero)

	return &DriverStats{
		DriverID:       driverID,
		TotalLaps:      len(times),
		ConsideredLaps: considered,
		Percentage:     percentage,
		Fastest:        top[0],
		Average:        sum.Div(decimal.NewFromInt(int64(considered))),
		Median:         median(top),
	}, nil
}

// median expects its input sorted ascending
func median(sorted []decimal.Decimal) decimal.Decimal {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// FormatLapTime renders seconds as "m:ss.mmm" the way timing sheets
// print lap times.
func FormatLapTime(seconds decimal.Decimal) string {
	totalMillis := seconds.Mul(decimal.NewFromInt(1000)).Round(0).IntPart()
	minutes := totalMillis / 60000
	secs := (totalMillis % 60000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, secs, millis)
}
