package series

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
	name string,
) (*model.Series, error) {
	row := conn.QueryRow(ctx, `
	insert into series (name) values ($1)
	returning id
	`, name)
	ret := &model.Series{Name: name}
	if err := row.Scan(&ret.ID); err != nil {
		return nil, err
	}
	return ret, nil
}

func LoadByName(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.Series, error) {
	row := conn.QueryRow(ctx, `
	select id, name from series where name=$1
	`, name)
	var ret model.Series
	if err := row.Scan(&ret.ID, &ret.Name); err != nil {
		return nil, err
	}
	return &ret, nil
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id int,
) (*model.Series, error) {
	row := conn.QueryRow(ctx, `
	select id, name from series where id=$1
	`, id)
	var ret model.Series
	if err := row.Scan(&ret.ID, &ret.Name); err != nil {
		return nil, err
	}
	return &ret, nil
}

// an existing row always wins over a new insert
func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.Series, error) {
	ret, err := LoadByName(ctx, conn, name)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, name)
}

func LoadAll(
	ctx context.Context,
	conn repository.Querier,
) ([]*model.Series, error) {
	rows, err := conn.Query(ctx, `
	select id, name from series order by name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Series, 0)
	for rows.Next() {
		var item model.Series
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}
