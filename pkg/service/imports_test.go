//nolint:lll // test data
package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/csv"
	base "github.com/arjunakankipati/racing-stat-service-go/testsupport/basedata"
	"github.com/arjunakankipati/racing-stat-service-go/testsupport/testdb"
)

const sampleResultsCsv = `POS;NUMBER;TEAM;CLASS;VEHICLE;TIRES;STATUS;LAPS;DRIVER1_FIRSTNAME;DRIVER1_SECONDNAME
1;88;Proton Competition;GTP;Porsche 963;Michelin;Running;301;Felipe;NASR
`

func csvServer(payload string, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			//nolint:errcheck // test fixture
			w.Write([]byte(payload))
		}))
}

func TestImportServiceCompletesJob(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	srv := csvServer(sampleResultsCsv, http.StatusOK)
	defer srv.Close()

	svc := InitImportService(pool, NewDBJobTracker(pool), log.Default())
	status := svc.Run(context.Background(), ImportParams{
		URL:       srv.URL,
		SessionID: sess.ID,
		Kind:      model.KindResults,
		Dialect:   csv.DialectIMSA,
	})

	if status.State != model.JobCompleted {
		t.Fatalf("status = %v (error %v), want COMPLETED", status.State, status.Error)
	}
	if status.SessionID == nil || *status.SessionID != sess.ID {
		t.Errorf("status session = %v, want %d", status.SessionID, sess.ID)
	}

	var state string
	var started, ended bool
	if err := pool.QueryRow(context.Background(), `
	select state, started_at is not null, ended_at is not null from import_job
	`).Scan(&state, &started, &ended); err != nil {
		t.Fatalf("job record: %v", err)
	}
	if state != string(model.JobCompleted) {
		t.Errorf("job state = %s, want COMPLETED", state)
	}
	if !started || !ended {
		t.Errorf("job timestamps incomplete: started=%v ended=%v", started, ended)
	}
}

func TestImportServiceFailsOnMalformedData(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)

	badTimecard := `NUMBER;DRIVER_NUMBER;LAP_NUMBER;LAP_TIME;ELAPSED;HOUR
88;1;1;broken;1:48.656;13:01:48.656
`
	srv := csvServer(badTimecard, http.StatusOK)
	defer srv.Close()

	svc := InitImportService(pool, NewDBJobTracker(pool), log.Default())
	status := svc.Run(context.Background(), ImportParams{
		URL:       srv.URL,
		SessionID: sess.ID,
		Kind:      model.KindTimecard,
	})

	if status.State != model.JobFailed {
		t.Fatalf("status = %v, want FAILED", status.State)
	}
	if status.Error == nil {
		t.Fatal("failed status carries no error message")
	}

	var state, errorMessage string
	if err := pool.QueryRow(context.Background(), `
	select state, error_message from import_job
	`).Scan(&state, &errorMessage); err != nil {
		t.Fatalf("job record: %v", err)
	}
	if state != string(model.JobFailed) {
		t.Errorf("job state = %s, want FAILED", state)
	}
	if !strings.Contains(errorMessage, "car entry") &&
		!strings.Contains(errorMessage, "lap time") {
		t.Errorf("unexpected diagnostic: %q", errorMessage)
	}
}

func TestImportServiceFailsOnTransportError(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	srv := csvServer("gone", http.StatusNotFound)
	defer srv.Close()

	svc := InitImportService(pool, NewDBJobTracker(pool), log.Default())
	status := svc.Run(context.Background(), ImportParams{
		URL:       srv.URL,
		SessionID: sess.ID,
		Kind:      model.KindResults,
		Dialect:   csv.DialectIMSA,
	})

	if status.State != model.JobFailed {
		t.Fatalf("status = %v, want FAILED", status.State)
	}
	if status.Error == nil || !strings.Contains(*status.Error, "HTTP 404") {
		t.Errorf("error = %v, want HTTP 404 diagnostic", status.Error)
	}
}
