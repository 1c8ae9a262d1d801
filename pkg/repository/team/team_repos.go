package team

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
) (*model.Team, error) {
	row := conn.QueryRow(ctx, `
	insert into team (name) values ($1)
	returning id
	`, name)
	ret := &model.Team{Name: name}
	if err := row.Scan(&ret.ID); err != nil {
		return nil, err
	}
	return ret, nil
}

// teams carry no unique constraint on name, so the lookup picks the
// oldest matching row to stay deterministic
func LoadByName(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.Team, error) {
	row := conn.QueryRow(ctx, `
	select id, name from team where name=$1 order by id limit 1
	`, name)
	var ret model.Team
	if err := row.Scan(&ret.ID, &ret.Name); err != nil {
		return nil, err
	}
	return &ret, nil
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	name string,
) (*model.Team, error) {
	ret, err := LoadByName(ctx, conn, name)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, name)
}
