package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/processing/csv"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
	carentryrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/carentry"
	driverrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/driver"
	eventrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/event"
	resultrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/result"
	sessionrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/session"
)

// results sheets list up to 6 driver seats per car
const maxDriverSlots = 6

// ResultsImporter normalizes a classification sheet into result rows
// plus the catalog entities they reference. Any row failure aborts the
// whole import; result rows are written in one batch at end of stream.
type ResultsImporter struct {
	conn repository.Querier
	l    *log.Logger
}

func NewResultsImporter(conn repository.Querier, l *log.Logger) *ResultsImporter {
	return &ResultsImporter{conn: conn, l: l.Named("results")}
}

//nolint:funlen // sequential pipeline
func (imp *ResultsImporter) Import(
	ctx context.Context,
	in io.Reader,
	sessionID int,
	dialect csv.Dialect,
) error {
	sess, err := sessionrepo.LoadByID(ctx, imp.conn, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrSessionNotFound, sessionID)
		}
		return err
	}
	ev, err := eventrepo.LoadByID(ctx, imp.conn, sess.EventID)
	if err != nil {
		return err
	}

	reader, err := csv.NewReader(in)
	if err != nil {
		return err
	}

	caches := newEntityCaches(ctx, imp.conn, ev.SeriesID, imp.l)
	entries := make(map[string]*model.CarEntry)
	results := make([]*model.Result, 0)

	for row, ok := reader.Next(); ok; row, ok = reader.Next() {
		entry, err := imp.resolveEntry(ctx, row, sess, ev.SeriesID, dialect,
			caches, entries)
		if err != nil {
			return err
		}
		if err := imp.resolveDrivers(ctx, row, entry, dialect); err != nil {
			return err
		}
		results = append(results, buildResult(row, sess.ID, entry.ID))
	}
	if err := reader.Err(); err != nil {
		return err
	}

	imp.l.Info("persisting results",
		log.Int("session", sess.ID), log.Int("rows", len(results)))
	return resultrepo.BatchCreate(ctx, imp.conn, results)
}

func (imp *ResultsImporter) resolveEntry(
	ctx context.Context,
	row csv.Row,
	sess *model.Session,
	seriesID int,
	dialect csv.Dialect,
	caches *entityCaches,
	entries map[string]*model.CarEntry,
) (*model.CarEntry, error) {
	carNumber := row.Value("NUMBER")
	if entry, ok := entries[carNumber]; ok {
		return entry, nil
	}

	team, err := caches.team.Get(ctx, row.Value("TEAM"))
	if err != nil {
		return nil, err
	}
	cls, err := caches.class.Get(ctx, classKey(seriesID, row.Value("CLASS")))
	if err != nil {
		return nil, err
	}
	carModel, err := caches.carModel.Get(ctx, row.Value("VEHICLE"))
	if err != nil {
		return nil, err
	}

	arg := &model.CarEntry{
		SessionID:  sess.ID,
		TeamID:     team.ID,
		ClassID:    cls.ID,
		CarModelID: carModel.ID,
		Number:     carNumber,
	}
	if tire := row.Value(dialect.TireHeader()); tire != "" {
		arg.TireSupplier = &tire
	}
	entry, err := carentryrepo.FindOrCreate(ctx, imp.conn, arg)
	if err != nil {
		return nil, err
	}
	entries[carNumber] = entry
	return entry, nil
}

// a slot with missing name fields is a shorter roster, not an error
func (imp *ResultsImporter) resolveDrivers(
	ctx context.Context,
	row csv.Row,
	entry *model.CarEntry,
	dialect csv.Dialect,
) error {
	for i := 1; i <= maxDriverSlots; i++ {
		var firstName, lastName string
		if dialect == csv.DialectWEC {
			packed := row.Value(fmt.Sprintf("DRIVER_%d", i))
			if packed == "" {
				continue
			}
			firstName, lastName = csv.SplitWECName(packed)
		} else {
			firstName = row.Value(fmt.Sprintf("DRIVER%d_FIRSTNAME", i))
			lastName = row.Value(fmt.Sprintf("DRIVER%d_SECONDNAME", i))
			if firstName == "" || lastName == "" {
				continue
			}
		}
		drv, err := driverrepo.FindOrCreate(ctx, imp.conn,
			&model.Driver{FirstName: firstName, LastName: lastName})
		if err != nil {
			return err
		}
		if _, err := carentryrepo.FindOrCreateCarDriver(ctx, imp.conn,
			&model.CarDriver{
				CarEntryID:   entry.ID,
				DriverID:     drv.ID,
				DriverNumber: i,
			}); err != nil {
			return err
		}
	}
	return nil
}

// buildResult reads the classification columns. The position comes from
// raw column 0: exports may lead with a byte-order mark that defeats
// header-name matching on the first column.
func buildResult(row csv.Row, sessionID, carEntryID int) *model.Result {
	ret := &model.Result{
		SessionID:  sessionID,
		CarEntryID: carEntryID,
		Position:   csv.IntOrNil(row.Raw(0)),
		Laps:       csv.IntOrNil(row.Value("LAPS")),
		FlLapnum:   csv.IntOrNil(row.Value("FL_LAPNUM")),
		FlKph:      csv.DecimalOrNil(row.Value("FL_KPH")),
	}
	if v := row.Value("STATUS"); v != "" {
		ret.Status = &v
	}
	if v := row.Value("TOTAL_TIME"); v != "" {
		ret.TotalTime = &v
	}
	if v := row.Value("GAP_FIRST"); v != "" {
		ret.GapFirst = &v
	}
	if v := row.Value("FL_TIME"); v != "" {
		ret.FlTime = &v
	}
	return ret
}
