package class

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
	seriesID int,
	name string,
) (*model.Class, error) {
	row := conn.QueryRow(ctx, `
	insert into class (series_id, name) values ($1,$2)
	returning id
	`, seriesID, name)
	ret := &model.Class{SeriesID: seriesID, Name: name}
	if err := row.Scan(&ret.ID); err != nil {
		return nil, err
	}
	return ret, nil
}

// classes are scoped to a series; natural key is (seriesId, name)
func LoadByKey(
	ctx context.Context,
	conn repository.Querier,
	seriesID int,
	name string,
) (*model.Class, error) {
	row := conn.QueryRow(ctx, `
	select id, series_id, name from class where series_id=$1 and name=$2
	`, seriesID, name)
	var ret model.Class
	if err := row.Scan(&ret.ID, &ret.SeriesID, &ret.Name); err != nil {
		return nil, err
	}
	return &ret, nil
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	seriesID int,
	name string,
) (*model.Class, error) {
	ret, err := LoadByKey(ctx, conn, seriesID, name)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, seriesID, name)
}
