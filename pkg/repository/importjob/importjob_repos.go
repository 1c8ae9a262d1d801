package importjob

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

func Create(
	ctx context.Context,
	conn repository.Querier,
	job *model.ImportJob,
) error {
	_, err := conn.Exec(ctx, `
	insert into import_job (id, kind, url, session_id, state)
	values ($1,$2,$3,$4,$5)
	`, job.ID, job.Kind, job.URL, job.SessionID, job.State)
	return err
}

func MarkStarted(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
	startedAt time.Time,
) error {
	_, err := conn.Exec(ctx, `
	update import_job set state=$2, started_at=$3 where id=$1
	`, id, model.JobInProgress, startedAt)
	return err
}

func MarkCompleted(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
	endedAt time.Time,
) error {
	_, err := conn.Exec(ctx, `
	update import_job set state=$2, ended_at=$3 where id=$1
	`, id, model.JobCompleted, endedAt)
	return err
}

// a failed job keeps its error message; restarts get a fresh job id
func MarkFailed(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
	endedAt time.Time,
	errorMessage string,
) error {
	_, err := conn.Exec(ctx, `
	update import_job set state=$2, ended_at=$3, error_message=$4 where id=$1
	`, id, model.JobFailed, endedAt, errorMessage)
	return err
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
) (*model.ImportJob, error) {
	row := conn.QueryRow(ctx, `
	select id, kind, url, session_id, state, started_at, ended_at, error_message
	from import_job where id=$1
	`, id)
	return scanRow(row)
}

func scanRow(row pgx.Row) (*model.ImportJob, error) {
	var ret model.ImportJob
	if err := row.Scan(&ret.ID, &ret.Kind, &ret.URL, &ret.SessionID,
		&ret.State, &ret.StartedAt, &ret.EndedAt,
		&ret.ErrorMessage); err != nil {
		return nil, err
	}
	return &ret, nil
}
