package carentry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

func CreateCarDriver(
	ctx context.Context,
	conn repository.Querier,
	arg *model.CarDriver,
) (*model.CarDriver, error) {
	row := conn.QueryRow(ctx, `
	insert into car_driver (car_entry_id, driver_id, driver_number)
	values ($1,$2,$3)
	returning id
	`, arg.CarEntryID, arg.DriverID, arg.DriverNumber)
	if err := row.Scan(&arg.ID); err != nil {
		return nil, err
	}
	return arg, nil
}

func LoadCarDriver(
	ctx context.Context,
	conn repository.Querier,
	carEntryID, driverID int,
) (*model.CarDriver, error) {
	row := conn.QueryRow(ctx, `
	select id, car_entry_id, driver_id, driver_number
	from car_driver where car_entry_id=$1 and driver_id=$2
	`, carEntryID, driverID)
	return scanCarDriver(row)
}

// resolves the seat index reported by the timing sheet to an association
func LoadCarDriverByNumber(
	ctx context.Context,
	conn repository.Querier,
	carEntryID, driverNumber int,
) (*model.CarDriver, error) {
	row := conn.QueryRow(ctx, `
	select id, car_entry_id, driver_id, driver_number
	from car_driver where car_entry_id=$1 and driver_number=$2
	order by id limit 1
	`, carEntryID, driverNumber)
	return scanCarDriver(row)
}

// resolves a "FIRST LAST" style column value to an association; the match
// on names is exact
func LoadCarDriverByName(
	ctx context.Context,
	conn repository.Querier,
	carEntryID int,
	firstName, lastName string,
) (*model.CarDriver, error) {
	row := conn.QueryRow(ctx, `
	select cd.id, cd.car_entry_id, cd.driver_id, cd.driver_number
	from car_driver cd join driver d on d.id = cd.driver_id
	where cd.car_entry_id=$1 and d.first_name=$2 and d.last_name=$3
	order by cd.id limit 1
	`, carEntryID, firstName, lastName)
	return scanCarDriver(row)
}

// the first reported driver number wins for an existing association
func FindOrCreateCarDriver(
	ctx context.Context,
	conn repository.Querier,
	arg *model.CarDriver,
) (*model.CarDriver, error) {
	ret, err := LoadCarDriver(ctx, conn, arg.CarEntryID, arg.DriverID)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return CreateCarDriver(ctx, conn, arg)
}

func LoadCarDrivers(
	ctx context.Context,
	conn repository.Querier,
	carEntryID int,
) ([]*model.CarDriver, error) {
	rows, err := conn.Query(ctx, `
	select id, car_entry_id, driver_id, driver_number
	from car_driver where car_entry_id=$1 order by driver_number
	`, carEntryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.CarDriver, 0)
	for rows.Next() {
		var item model.CarDriver
		if err := rows.Scan(&item.ID, &item.CarEntryID, &item.DriverID,
			&item.DriverNumber); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

func scanCarDriver(row pgx.Row) (*model.CarDriver, error) {
	var ret model.CarDriver
	if err := row.Scan(&ret.ID, &ret.CarEntryID, &ret.DriverID,
		&ret.DriverNumber); err != nil {
		return nil, err
	}
	return &ret, nil
}
