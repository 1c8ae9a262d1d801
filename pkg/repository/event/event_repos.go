package event

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

func Create(
	ctx context.Context,
	conn repository.Querier,
	ev *model.Event,
) (*model.Event, error) {
	row := conn.QueryRow(ctx, `
	insert into event (series_id, name, year, start_date, end_date)
	values ($1,$2,$3,$4,$5)
	returning id
	`, ev.SeriesID, ev.Name, ev.Year, ev.StartDate, ev.EndDate)
	if err := row.Scan(&ev.ID); err != nil {
		return nil, err
	}
	return ev, nil
}

// natural key of an event is (seriesId, name, year)
func LoadByKey(
	ctx context.Context,
	conn repository.Querier,
	seriesID int,
	name string,
	year int,
) (*model.Event, error) {
	row := conn.QueryRow(ctx, `
	select id, series_id, name, year, start_date, end_date
	from event where series_id=$1 and name=$2 and year=$3
	`, seriesID, name, year)
	return scanRow(row)
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id int,
) (*model.Event, error) {
	row := conn.QueryRow(ctx, `
	select id, series_id, name, year, start_date, end_date
	from event where id=$1
	`, id)
	return scanRow(row)
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	ev *model.Event,
) (*model.Event, error) {
	ret, err := LoadByKey(ctx, conn, ev.SeriesID, ev.Name, ev.Year)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, ev)
}

func LoadBySeries(
	ctx context.Context,
	conn repository.Querier,
	seriesID int,
) ([]*model.Event, error) {
	rows, err := conn.Query(ctx, `
	select id, series_id, name, year, start_date, end_date
	from event where series_id=$1 order by year, name
	`, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Event, 0)
	for rows.Next() {
		var item model.Event
		if err := rows.Scan(&item.ID, &item.SeriesID, &item.Name, &item.Year,
			&item.StartDate, &item.EndDate); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

func scanRow(row pgx.Row) (*model.Event, error) {
	var ret model.Event
	if err := row.Scan(&ret.ID, &ret.SeriesID, &ret.Name, &ret.Year,
		&ret.StartDate, &ret.EndDate); err != nil {
		return nil, err
	}
	return &ret, nil
}
