package driver

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
	arg *model.Driver,
) (*model.Driver, error) {
	row := conn.QueryRow(ctx, `
	insert into driver (first_name, last_name, nationality, hometown, license_type)
	values ($1,$2,$3,$4,$5)
	returning id
	`, arg.FirstName, arg.LastName, arg.Nationality, arg.Hometown, arg.LicenseType)
	if err := row.Scan(&arg.ID); err != nil {
		return nil, err
	}
	return arg, nil
}

// identity is the exact (firstName, lastName) pair; spelling variants
// are distinct drivers
func LoadByName(
	ctx context.Context,
	conn repository.Querier,
	firstName, lastName string,
) (*model.Driver, error) {
	row := conn.QueryRow(ctx, `
	select id, first_name, last_name, nationality, hometown, license_type
	from driver where first_name=$1 and last_name=$2 order by id limit 1
	`, firstName, lastName)
	return scanRow(row)
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id int,
) (*model.Driver, error) {
	row := conn.QueryRow(ctx, `
	select id, first_name, last_name, nationality, hometown, license_type
	from driver where id=$1
	`, id)
	return scanRow(row)
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	arg *model.Driver,
) (*model.Driver, error) {
	ret, err := LoadByName(ctx, conn, arg.FirstName, arg.LastName)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, arg)
}

func scanRow(row pgx.Row) (*model.Driver, error) {
	var ret model.Driver
	if err := row.Scan(&ret.ID, &ret.FirstName, &ret.LastName,
		&ret.Nationality, &ret.Hometown, &ret.LicenseType); err != nil {
		return nil, err
	}
	return &ret, nil
}
