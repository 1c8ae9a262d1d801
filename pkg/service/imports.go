package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/csv"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/importer"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
	importjobrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/importjob"
)

type ImportService struct {
	conn    repository.Querier
	tracker importer.JobTracker
	l       *log.Logger
}

func InitImportService(
	conn repository.Querier,
	tracker importer.JobTracker,
	l *log.Logger,
) *ImportService {
	return &ImportService{conn: conn, tracker: tracker, l: l}
}

type ImportParams struct {
	URL       string
	SessionID int
	Kind      string // model.KindResults or model.KindTimecard
	Dialect   csv.Dialect
}

// Run registers a new job and processes it to completion. Failures are
// reported through the returned status, never as an error; a failed job
// stays failed and a retry means a fresh job.
func (s *ImportService) Run(ctx context.Context, arg ImportParams) importer.Status {
	id, err := uuid.NewV4()
	if err != nil {
		return failedStatus(err)
	}
	job := &model.ImportJob{
		ID:        id,
		Kind:      arg.Kind,
		URL:       arg.URL,
		SessionID: arg.SessionID,
		State:     model.JobPending,
	}
	if err := importjobrepo.Create(ctx, s.conn, job); err != nil {
		s.l.Error("could not register import job", log.ErrorField(err))
		return failedStatus(err)
	}
	return importer.NewOrchestrator(s.conn, s.tracker, s.l).Run(ctx, job, arg.Dialect)
}

func failedStatus(err error) importer.Status {
	msg := err.Error()
	return importer.Status{State: model.JobFailed, Error: &msg}
}
