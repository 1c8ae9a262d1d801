package importer

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/csv"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
)

// JobTracker receives the state transitions of an import job. The
// orchestrator only reports into it; it never reads job state back.
type JobTracker interface {
	MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, at time.Time, msg string) error
}

// Status is the outcome reported to the caller of an import.
type Status struct {
	SessionID *int           `json:"sessionId"`
	State     model.JobState `json:"status"`
	Error     *string        `json:"error"`
}

// Orchestrator wraps one importer invocation per job: fetch, import,
// report. Errors never cross its boundary; failures become a FAILED
// transition carrying the error message. A FAILED job is terminal.
type Orchestrator struct {
	conn    repository.Querier
	fetcher *Fetcher
	tracker JobTracker
	l       *log.Logger
}

func NewOrchestrator(
	conn repository.Querier,
	tracker JobTracker,
	l *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		conn:    conn,
		fetcher: NewFetcher(),
		tracker: tracker,
		l:       l.Named("import"),
	}
}

func (o *Orchestrator) Run(
	ctx context.Context,
	job *model.ImportJob,
	dialect csv.Dialect,
) Status {
	o.l.Info("import job starting",
		log.String("id", job.ID.String()),
		log.String("kind", job.Kind),
		log.String("url", job.URL),
		log.Int("session", job.SessionID))

	if err := o.tracker.MarkStarted(ctx, job.ID, time.Now()); err != nil {
		return o.failed(ctx, job, err)
	}

	body, err := o.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		return o.failed(ctx, job, err)
	}
	defer body.Close()

	switch job.Kind {
	case model.KindTimecard:
		err = NewTimecardImporter(o.conn, o.l).Import(ctx, body, job.SessionID)
	default:
		err = NewResultsImporter(o.conn, o.l).Import(ctx, body, job.SessionID, dialect)
	}
	if err != nil {
		return o.failed(ctx, job, err)
	}

	if err := o.tracker.MarkCompleted(ctx, job.ID, time.Now()); err != nil {
		o.l.Error("could not record job completion",
			log.String("id", job.ID.String()), log.ErrorField(err))
	}
	o.l.Info("import job completed", log.String("id", job.ID.String()))
	return Status{SessionID: &job.SessionID, State: model.JobCompleted}
}

func (o *Orchestrator) failed(
	ctx context.Context,
	job *model.ImportJob,
	cause error,
) Status {
	o.l.Error("import job failed",
		log.String("id", job.ID.String()), log.ErrorField(cause))
	if err := o.tracker.MarkFailed(ctx, job.ID, time.Now(), cause.Error()); err != nil {
		o.l.Error("could not record job failure",
			log.String("id", job.ID.String()), log.ErrorField(err))
	}
	msg := cause.Error()
	return Status{State: model.JobFailed, Error: &msg}
}
