package lap

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

// BatchCreate inserts all laps in one round trip and assigns the
// generated database ids back onto the arguments.
func BatchCreate(
	ctx context.Context,
	conn repository.Querier,
	laps []*model.Lap,
) error {
	batch := &pgx.Batch{}
	for i := range laps {
		l := laps[i]
		batch.Queue(`
	insert into lap (
		car_entry_id, driver_id, lap_number, lap_time_seconds,
		session_elapsed_seconds, timestamp, average_speed_kph
	) values ($1,$2,$3,$4,$5,$6,$7)
	returning id
		`,
			l.CarEntryID, l.DriverID, l.LapNumber, l.LapTimeSeconds,
			l.SessionElapsedSeconds, l.Timestamp, l.AverageSpeedKph,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&l.ID)
		})
	}
	return conn.SendBatch(ctx, batch).Close()
}

func BatchCreateSectors(
	ctx context.Context,
	conn repository.Querier,
	sectors []*model.Sector,
) error {
	batch := &pgx.Batch{}
	for i := range sectors {
		s := sectors[i]
		batch.Queue(`
	insert into sector (lap_id, sector_number, sector_time_seconds)
	values ($1,$2,$3)
	returning id
		`,
			s.LapID, s.SectorNumber, s.SectorTimeSeconds,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&s.ID)
		})
	}
	return conn.SendBatch(ctx, batch).Close()
}

func LoadByEntryAndDriver(
	ctx context.Context,
	conn repository.Querier,
	carEntryID, driverID int,
) ([]*model.Lap, error) {
	rows, err := conn.Query(ctx, `
	select id, car_entry_id, driver_id, lap_number, lap_time_seconds,
	  session_elapsed_seconds, timestamp, average_speed_kph
	from lap where car_entry_id=$1 and driver_id=$2 order by lap_number
	`, carEntryID, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Lap, 0)
	for rows.Next() {
		var item model.Lap
		if err := rows.Scan(&item.ID, &item.CarEntryID, &item.DriverID,
			&item.LapNumber, &item.LapTimeSeconds, &item.SessionElapsedSeconds,
			&item.Timestamp, &item.AverageSpeedKph); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

func LoadSectors(
	ctx context.Context,
	conn repository.Querier,
	lapID int,
) ([]*model.Sector, error) {
	rows, err := conn.Query(ctx, `
	select id, lap_id, sector_number, sector_time_seconds
	from sector where lap_id=$1 order by sector_number
	`, lapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Sector, 0)
	for rows.Next() {
		var item model.Sector
		if err := rows.Scan(&item.ID, &item.LapID, &item.SectorNumber,
			&item.SectorTimeSeconds); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}
