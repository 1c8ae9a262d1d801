package carentry

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
	arg *model.CarEntry,
) (*model.CarEntry, error) {
	row := conn.QueryRow(ctx, `
	insert into car_entry (session_id, team_id, class_id, car_model_id, number, tire_supplier)
	values ($1,$2,$3,$4,$5,$6)
	returning id
	`, arg.SessionID, arg.TeamID, arg.ClassID, arg.CarModelID, arg.Number,
		arg.TireSupplier)
	if err := row.Scan(&arg.ID); err != nil {
		return nil, err
	}
	return arg, nil
}

// natural key of a car entry is (sessionId, number)
func LoadBySessionAndNumber(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	number string,
) (*model.CarEntry, error) {
	row := conn.QueryRow(ctx, `
	select id, session_id, team_id, class_id, car_model_id, number, tire_supplier
	from car_entry where session_id=$1 and number=$2
	`, sessionID, number)
	return scanRow(row)
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	arg *model.CarEntry,
) (*model.CarEntry, error) {
	ret, err := LoadBySessionAndNumber(ctx, conn, arg.SessionID, arg.Number)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, arg)
}

func LoadBySession(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
) ([]*model.CarEntry, error) {
	rows, err := conn.Query(ctx, `
	select id, session_id, team_id, class_id, car_model_id, number, tire_supplier
	from car_entry where session_id=$1 order by number
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.CarEntry, 0)
	for rows.Next() {
		var item model.CarEntry
		if err := rows.Scan(&item.ID, &item.SessionID, &item.TeamID,
			&item.ClassID, &item.CarModelID, &item.Number,
			&item.TireSupplier); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

func scanRow(row pgx.Row) (*model.CarEntry, error) {
	var ret model.CarEntry
	if err := row.Scan(&ret.ID, &ret.SessionID, &ret.TeamID, &ret.ClassID,
		&ret.CarModelID, &ret.Number, &ret.TireSupplier); err != nil {
		return nil, err
	}
	return &ret, nil
}
