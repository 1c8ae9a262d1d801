package analysis

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

// Filter narrows the lap selection; nil attributes are ignored.
type Filter struct {
	SeriesID  *int
	EventID   *int
	SessionID *int
	Year      *int
}

// LoadDriverLapTimes returns a driver's lap times in seconds, fastest
// first, across all matching sessions.
func LoadDriverLapTimes(
	ctx context.Context,
	conn repository.Querier,
	driverID int,
	filter Filter,
) ([]decimal.Decimal, error) {
	sql := `
	select l.lap_time_seconds
	from lap l
	  join car_entry ce on ce.id = l.car_entry_id
	  join session s on s.id = ce.session_id
	  join event e on e.id = s.event_id
	where l.driver_id = $1`
	args := []interface{}{driverID}
	addCond := func(cond string, val interface{}) {
		args = append(args, val)
		sql += fmt.Sprintf(" and %s = $%d", cond, len(args))
	}
	if filter.SeriesID != nil {
		addCond("e.series_id", *filter.SeriesID)
	}
	if filter.EventID != nil {
		addCond("e.id", *filter.EventID)
	}
	if filter.SessionID != nil {
		addCond("s.id", *filter.SessionID)
	}
	if filter.Year != nil {
		addCond("e.year", *filter.Year)
	}
	sql += " order by l.lap_time_seconds"

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]decimal.Decimal, 0)
	for rows.Next() {
		var item decimal.Decimal
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}
