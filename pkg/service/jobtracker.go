package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/nats-io/nats.go"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/importer"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
	importjobrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/importjob"
)

// JobEventsSubject carries import job transitions as JSON messages.
const JobEventsSubject = "racingstat.import.jobs"

// dbJobTracker persists job transitions in the import_job table.
type dbJobTracker struct {
	conn repository.Querier
}

func NewDBJobTracker(conn repository.Querier) importer.JobTracker {
	return &dbJobTracker{conn: conn}
}

func (t *dbJobTracker) MarkStarted(
	ctx context.Context, id uuid.UUID, at time.Time,
) error {
	return importjobrepo.MarkStarted(ctx, t.conn, id, at)
}

func (t *dbJobTracker) MarkCompleted(
	ctx context.Context, id uuid.UUID, at time.Time,
) error {
	return importjobrepo.MarkCompleted(ctx, t.conn, id, at)
}

func (t *dbJobTracker) MarkFailed(
	ctx context.Context, id uuid.UUID, at time.Time, msg string,
) error {
	return importjobrepo.MarkFailed(ctx, t.conn, id, at, msg)
}

type jobEvent struct {
	ID    string         `json:"id"`
	State model.JobState `json:"state"`
	At    time.Time      `json:"at"`
	Error string         `json:"error,omitempty"`
}

// natsJobTracker decorates another tracker and additionally publishes
// each transition. Publish problems are logged, never fatal: the
// database record is the source of truth.
type natsJobTracker struct {
	delegate importer.JobTracker
	conn     *nats.Conn
	l        *log.Logger
}

func NewNatsJobTracker(
	delegate importer.JobTracker,
	conn *nats.Conn,
	l *log.Logger,
) importer.JobTracker {
	return &natsJobTracker{delegate: delegate, conn: conn, l: l.Named("nats")}
}

func (t *natsJobTracker) MarkStarted(
	ctx context.Context, id uuid.UUID, at time.Time,
) error {
	t.publish(jobEvent{ID: id.String(), State: model.JobInProgress, At: at})
	return t.delegate.MarkStarted(ctx, id, at)
}

func (t *natsJobTracker) MarkCompleted(
	ctx context.Context, id uuid.UUID, at time.Time,
) error {
	t.publish(jobEvent{ID: id.String(), State: model.JobCompleted, At: at})
	return t.delegate.MarkCompleted(ctx, id, at)
}

func (t *natsJobTracker) MarkFailed(
	ctx context.Context, id uuid.UUID, at time.Time, msg string,
) error {
	t.publish(jobEvent{ID: id.String(), State: model.JobFailed, At: at, Error: msg})
	return t.delegate.MarkFailed(ctx, id, at, msg)
}

func (t *natsJobTracker) publish(evt jobEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		t.l.Error("could not marshal job event", log.ErrorField(err))
		return
	}
	if err := t.conn.Publish(JobEventsSubject, data); err != nil {
		t.l.Warn("could not publish job event",
			log.String("id", evt.ID), log.ErrorField(err))
	}
}
