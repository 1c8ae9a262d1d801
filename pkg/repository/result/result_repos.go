package result

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

// BatchCreate inserts all classification rows in one round trip and
// assigns the generated ids back onto the arguments.
func BatchCreate(
	ctx context.Context,
	conn repository.Querier,
	results []*model.Result,
) error {
	batch := &pgx.Batch{}
	for i := range results {
		r := results[i]
		batch.Queue(`
	insert into result (
		session_id, car_entry_id, position, status, laps, total_time,
		gap_first, fl_lapnum, fl_time, fl_kph
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	returning id
		`,
			r.SessionID, r.CarEntryID, r.Position, r.Status, r.Laps,
			r.TotalTime, r.GapFirst, r.FlLapnum, r.FlTime, r.FlKph,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&r.ID)
		})
	}
	return conn.SendBatch(ctx, batch).Close()
}

func LoadBySession(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
) ([]*model.Result, error) {
	rows, err := conn.Query(ctx, `
	select id, session_id, car_entry_id, position, status, laps, total_time,
	  gap_first, fl_lapnum, fl_time, fl_kph
	from result where session_id=$1 order by position nulls last, id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Result, 0)
	for rows.Next() {
		var item model.Result
		if err := rows.Scan(&item.ID, &item.SessionID, &item.CarEntryID,
			&item.Position, &item.Status, &item.Laps, &item.TotalTime,
			&item.GapFirst, &item.FlLapnum, &item.FlTime,
			&item.FlKph); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}
