//nolint:lll // test data
package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/csv"
	base "github.com/arjunakankipati/racing-stat-service-go/testsupport/basedata"
	"github.com/arjunakankipati/racing-stat-service-go/testsupport/testdb"
)

const timecardCsv = `NUMBER;DRIVER_NUMBER;DRIVER_NAME;LAP_NUMBER;LAP_TIME;KPH;S1_LARGE;S2_LARGE;S3_LARGE;ELAPSED;HOUR
88;1;;1;1:48.656;183.9;0:35.123;0:36.456;0:37.077;1:48.656;13:01:48.656
88;1;;2;1:47.991;184.2;0:35.001;0:36.201;;3:36.647;13:03:36.647
54;;Miguel MOLINA;1;1:49.102;182.8;0:35.900;;;1:49.102;13:01:49.102
`

// last row re-reports lap 1 of car 88: the later row replaces the earlier one
const timecardDuplicateCsv = timecardCsv +
	"88;1;;1;1:50.000;180.0;0:36.000;0:36.900;0:37.100;1:50.000;13:01:50.000\n"

func importResultsFixture(t *testing.T, pool *pgxpool.Pool, sessionID int) {
	t.Helper()
	imp := NewResultsImporter(pool, log.Default())
	if err := imp.Import(context.Background(),
		strings.NewReader(imsaResultsCsv), sessionID, csv.DialectIMSA); err != nil {
		t.Fatalf("seeding results: %v", err)
	}
}

func TestTimecardImport(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	importResultsFixture(t, pool, sess.ID)

	imp := NewTimecardImporter(pool, log.Default())
	if err := imp.Import(context.Background(),
		strings.NewReader(timecardCsv), sess.ID); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if num := countRows(t, pool, "lap"); num != 3 {
		t.Errorf("got %d laps, want 3", num)
	}
	if num := countRows(t, pool, "sector"); num != 6 {
		t.Errorf("got %d sectors, want 6", num)
	}

	// the name-resolved row landed on car 54's driver
	var carNumber string
	var lapTime decimal.Decimal
	if err := pool.QueryRow(context.Background(), `
	select ce.number, l.lap_time_seconds from lap l
	  join car_entry ce on ce.id = l.car_entry_id
	  join driver d on d.id = l.driver_id
	where d.last_name = 'MOLINA'
	`).Scan(&carNumber, &lapTime); err != nil {
		t.Fatalf("name-resolved lap: %v", err)
	}
	if carNumber != "54" {
		t.Errorf("lap resolved to car %s, want 54", carNumber)
	}
	want, _ := decimal.NewFromString("109.102")
	if !lapTime.Equal(want) {
		t.Errorf("lap time = %s, want %s", lapTime, want)
	}
}

func TestTimecardSectorLinkage(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	importResultsFixture(t, pool, sess.ID)

	imp := NewTimecardImporter(pool, log.Default())
	if err := imp.Import(context.Background(),
		strings.NewReader(timecardCsv), sess.ID); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	// lap 1 of car 88 carries 3 sectors whose sum matches the staged
	// values of that row, proving the id assignment used the right lap
	var numSectors int
	var sum decimal.Decimal
	if err := pool.QueryRow(context.Background(), `
	select count(*), coalesce(sum(s.sector_time_seconds),0)
	from sector s
	  join lap l on l.id = s.lap_id
	  join car_entry ce on ce.id = l.car_entry_id
	where ce.number = '88' and l.lap_number = 1
	`).Scan(&numSectors, &sum); err != nil {
		t.Fatalf("sector linkage: %v", err)
	}
	if numSectors != 3 {
		t.Errorf("got %d sectors on lap 1, want 3", numSectors)
	}
	want, _ := decimal.NewFromString("108.656") // 35.123 + 36.456 + 37.077
	if !sum.Equal(want) {
		t.Errorf("sector sum = %s, want %s", sum, want)
	}

	// lap 2 only reported two sector times
	if err := pool.QueryRow(context.Background(), `
	select count(*) from sector s
	  join lap l on l.id = s.lap_id
	  join car_entry ce on ce.id = l.car_entry_id
	where ce.number = '88' and l.lap_number = 2
	`).Scan(&numSectors); err != nil {
		t.Fatalf("sector linkage: %v", err)
	}
	if numSectors != 2 {
		t.Errorf("got %d sectors on lap 2, want 2", numSectors)
	}
}

func TestTimecardImportDuplicateLapKeepsLaterRow(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	importResultsFixture(t, pool, sess.ID)

	imp := NewTimecardImporter(pool, log.Default())
	if err := imp.Import(context.Background(),
		strings.NewReader(timecardDuplicateCsv), sess.ID); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	// still one lap 1 for car 88
	if num := countRows(t, pool, "lap"); num != 3 {
		t.Errorf("got %d laps, want 3", num)
	}

	var lapTime decimal.Decimal
	if err := pool.QueryRow(context.Background(), `
	select l.lap_time_seconds from lap l
	  join car_entry ce on ce.id = l.car_entry_id
	where ce.number = '88' and l.lap_number = 1
	`).Scan(&lapTime); err != nil {
		t.Fatalf("duplicate lap: %v", err)
	}
	want, _ := decimal.NewFromString("110.000")
	if !lapTime.Equal(want) {
		t.Errorf("lap 1 time = %s, want %s (later row wins)", lapTime, want)
	}
}

func TestTimecardImportUnknownCar(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	importResultsFixture(t, pool, sess.ID)

	badCsv := `NUMBER;DRIVER_NUMBER;LAP_NUMBER;LAP_TIME;ELAPSED;HOUR
77;1;1;1:48.656;1:48.656;13:01:48.656
`
	err := NewTimecardImporter(pool, log.Default()).Import(
		context.Background(), strings.NewReader(badCsv), sess.ID)
	if !errors.Is(err, ErrCarEntryNotFound) {
		t.Errorf("Import() error = %v, want ErrCarEntryNotFound", err)
	}
	if num := countRows(t, pool, "lap"); num != 0 {
		t.Errorf("got %d laps after failed import, want 0", num)
	}
}

func TestTimecardImportUnknownDriverNumber(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	importResultsFixture(t, pool, sess.ID)

	badCsv := `NUMBER;DRIVER_NUMBER;LAP_NUMBER;LAP_TIME;ELAPSED;HOUR
88;9;1;1:48.656;1:48.656;13:01:48.656
`
	err := NewTimecardImporter(pool, log.Default()).Import(
		context.Background(), strings.NewReader(badCsv), sess.ID)
	if !errors.Is(err, ErrCarDriverAssociationNotFound) {
		t.Errorf("Import() error = %v, want ErrCarDriverAssociationNotFound", err)
	}
}

func TestTimecardImportMalformedLapTime(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	importResultsFixture(t, pool, sess.ID)

	badCsv := `NUMBER;DRIVER_NUMBER;LAP_NUMBER;LAP_TIME;ELAPSED;HOUR
88;1;1;not-a-time;1:48.656;13:01:48.656
`
	err := NewTimecardImporter(pool, log.Default()).Import(
		context.Background(), strings.NewReader(badCsv), sess.ID)
	if !errors.Is(err, csv.ErrMalformedLapTime) {
		t.Errorf("Import() error = %v, want ErrMalformedLapTime", err)
	}
	if num := countRows(t, pool, "lap"); num != 0 {
		t.Errorf("got %d laps after failed import, want 0", num)
	}
}
