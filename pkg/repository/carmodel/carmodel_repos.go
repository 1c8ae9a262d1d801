package carmodel

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
	arg *model.CarModel,
) (*model.CarModel, error) {
	row := conn.QueryRow(ctx, `
	insert into car_model (name, full_name) values ($1,$2)
	returning id
	`, arg.Name, arg.FullName)
	if err := row.Scan(&arg.ID); err != nil {
		return nil, err
	}
	return arg, nil
}

func LoadByName(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.CarModel, error) {
	row := conn.QueryRow(ctx, `
	select id, name, full_name from car_model where name=$1 order by id limit 1
	`, name)
	var ret model.CarModel
	if err := row.Scan(&ret.ID, &ret.Name, &ret.FullName); err != nil {
		return nil, err
	}
	return &ret, nil
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	arg *model.CarModel,
) (*model.CarModel, error) {
	ret, err := LoadByName(ctx, conn, arg.Name)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, arg)
}
