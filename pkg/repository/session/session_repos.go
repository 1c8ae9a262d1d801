package session

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
	sess *model.Session,
) (*model.Session, error) {
	row := conn.QueryRow(ctx, `
	insert into session (event_id, name, type, start_datetime, duration_seconds)
	values ($1,$2,$3,$4,$5)
	returning id
	`, sess.EventID, sess.Name, sess.Type, sess.StartTime, sess.DurationSeconds)
	if err := row.Scan(&sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id int,
) (*model.Session, error) {
	row := conn.QueryRow(ctx, `
	select id, event_id, name, type, start_datetime, duration_seconds
	from session where id=$1
	`, id)
	return scanRow(row)
}

// natural key of a session is (eventId, name, type)
func LoadByKey(
	ctx context.Context,
	conn repository.Querier,
	eventID int,
	name string,
	sessionType string,
) (*model.Session, error) {
	row := conn.QueryRow(ctx, `
	select id, event_id, name, type, start_datetime, duration_seconds
	from session where event_id=$1 and name=$2 and type=$3
	`, eventID, name, sessionType)
	return scanRow(row)
}

func FindOrCreate(
	ctx context.Context,
	conn repository.Querier,
	sess *model.Session,
) (*model.Session, error) {
	ret, err := LoadByKey(ctx, conn, sess.EventID, sess.Name, sess.Type)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return Create(ctx, conn, sess)
}

func LoadByEvent(
	ctx context.Context,
	conn repository.Querier,
	eventID int,
) ([]*model.Session, error) {
	rows, err := conn.Query(ctx, `
	select id, event_id, name, type, start_datetime, duration_seconds
	from session where event_id=$1 order by start_datetime
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Session, 0)
	for rows.Next() {
		var item model.Session
		if err := rows.Scan(&item.ID, &item.EventID, &item.Name, &item.Type,
			&item.StartTime, &item.DurationSeconds); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

func scanRow(row pgx.Row) (*model.Session, error) {
	var ret model.Session
	if err := row.Scan(&ret.ID, &ret.EventID, &ret.Name, &ret.Type,
		&ret.StartTime, &ret.DurationSeconds); err != nil {
		return nil, err
	}
	return &ret, nil
}
