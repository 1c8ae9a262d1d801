package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type JobState string

const (
	JobPending    JobState = "PENDING"
	JobInProgress JobState = "IN_PROGRESS"
	JobCompleted  JobState = "COMPLETED"
	JobFailed     JobState = "FAILED"
)

const (
	KindResults  = "RESULTS"
	KindTimecard = "TIMECARD"
)

// ImportJob tracks one asynchronous import. A FAILED job is terminal;
// a restart means a new job with a new id.
type ImportJob struct {
	ID           uuid.UUID  `json:"id"`
	Kind         string     `json:"kind"` // RESULTS or TIMECARD
	URL          string     `json:"url"`
	SessionID    int        `json:"sessionId"`
	State        JobState   `json:"state"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	ErrorMessage *string    `json:"errorMessage,omitempty"`
}
