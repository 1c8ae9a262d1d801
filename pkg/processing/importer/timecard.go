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
	laprepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/lap"
	sessionrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/session"
)

const maxSectors = 3

// lapKey is the in-import identity of a lap. Staged sectors carry the
// same key, so the sector→lap linkage never depends on iteration order.
type lapKey struct {
	carEntryID int
	driverID   int
	lapNumber  int
}

// TimecardImporter normalizes a lap-by-lap timecard sheet into lap and
// sector rows. Laps are batch-inserted first; sectors receive their lap
// ids by key lookup and are batch-inserted second.
type TimecardImporter struct {
	conn repository.Querier
	l    *log.Logger
}

func NewTimecardImporter(conn repository.Querier, l *log.Logger) *TimecardImporter {
	return &TimecardImporter{conn: conn, l: l.Named("timecard")}
}

type timecardRun struct {
	imp     *TimecardImporter
	sess    *model.Session
	entries map[string]*model.CarEntry
	// keyOrder keeps the first-seen order so batch inserts stay
	// deterministic
	laps     map[lapKey]*model.Lap
	sectors  map[lapKey][]*model.Sector
	keyOrder []lapKey
}

//nolint:funlen // sequential pipeline
func (imp *TimecardImporter) Import(
	ctx context.Context,
	in io.Reader,
	sessionID int,
) error {
	sess, err := sessionrepo.LoadByID(ctx, imp.conn, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrSessionNotFound, sessionID)
		}
		return err
	}

	entryList, err := carentryrepo.LoadBySession(ctx, imp.conn, sessionID)
	if err != nil {
		return err
	}
	entries := make(map[string]*model.CarEntry, len(entryList))
	for i := range entryList {
		entries[entryList[i].Number] = entryList[i]
	}

	reader, err := csv.NewReader(in)
	if err != nil {
		return err
	}

	run := &timecardRun{
		imp:     imp,
		sess:    sess,
		entries: entries,
		laps:    make(map[lapKey]*model.Lap),
		sectors: make(map[lapKey][]*model.Sector),
	}
	for row, ok := reader.Next(); ok; row, ok = reader.Next() {
		if err := run.processRow(ctx, row); err != nil {
			return err
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}

	return run.persist(ctx)
}

func (r *timecardRun) processRow(ctx context.Context, row csv.Row) error {
	carNumber := row.Value("NUMBER")
	entry, ok := r.entries[carNumber]
	if !ok {
		return fmt.Errorf("%w: car number %q in session %d",
			ErrCarEntryNotFound, carNumber, r.sess.ID)
	}

	assoc, err := r.resolveCarDriver(ctx, row, entry)
	if err != nil {
		return err
	}

	lapNumber := csv.IntOrNil(row.Value("LAP_NUMBER"))
	if lapNumber == nil {
		zero := 0
		lapNumber = &zero
	}
	key := lapKey{
		carEntryID: entry.ID,
		driverID:   assoc.DriverID,
		lapNumber:  *lapNumber,
	}

	lap, err := r.buildLap(row, key)
	if err != nil {
		return err
	}
	sectors, err := buildSectors(row, key)
	if err != nil {
		return err
	}

	if _, exists := r.laps[key]; exists {
		// source feeds occasionally re-report a lap; the later row wins
		r.imp.l.Warn("duplicate lap reported, keeping later row",
			log.String("car", carNumber),
			log.Int("driver", key.driverID),
			log.Int("lap", key.lapNumber))
	} else {
		r.keyOrder = append(r.keyOrder, key)
	}
	r.laps[key] = lap
	r.sectors[key] = sectors
	return nil
}

// resolveCarDriver prefers the numeric seat index; sheets without one
// carry a packed driver name instead.
func (r *timecardRun) resolveCarDriver(
	ctx context.Context,
	row csv.Row,
	entry *model.CarEntry,
) (*model.CarDriver, error) {
	if driverNumber := csv.IntOrNil(row.Value("DRIVER_NUMBER")); driverNumber != nil {
		assoc, err := carentryrepo.LoadCarDriverByNumber(
			ctx, r.imp.conn, entry.ID, *driverNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: car %s driver number %d",
					ErrCarDriverAssociationNotFound, entry.Number, *driverNumber)
			}
			return nil, err
		}
		return assoc, nil
	}

	driverName := row.Value("DRIVER_NAME")
	firstName, lastName := csv.SplitWECName(driverName)
	assoc, err := carentryrepo.LoadCarDriverByName(
		ctx, r.imp.conn, entry.ID, firstName, lastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: car %s driver %q",
				ErrCarDriverAssociationNotFound, entry.Number, driverName)
		}
		return nil, err
	}
	return assoc, nil
}

func (r *timecardRun) buildLap(row csv.Row, key lapKey) (*model.Lap, error) {
	lapTime, err := csv.ParseLapTime(row.Value("LAP_TIME"))
	if err != nil {
		return nil, err
	}
	elapsed, err := csv.ParseElapsedSeconds(row.Value("ELAPSED"))
	if err != nil {
		return nil, err
	}
	timestamp, err := csv.ReconstructTimestamp(
		row.Value("HOUR"), elapsed, r.sess.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Lap{
		CarEntryID:            key.carEntryID,
		DriverID:              key.driverID,
		LapNumber:             key.lapNumber,
		LapTimeSeconds:        lapTime,
		SessionElapsedSeconds: elapsed,
		Timestamp:             timestamp,
		AverageSpeedKph:       csv.DecimalOrNil(row.Value("KPH")),
	}, nil
}

// blank sector columns are skipped; malformed ones abort the import
func buildSectors(row csv.Row, key lapKey) ([]*model.Sector, error) {
	ret := make([]*model.Sector, 0, maxSectors)
	for n := 1; n <= maxSectors; n++ {
		raw := row.Value(fmt.Sprintf("S%d_LARGE", n))
		if raw == "" {
			continue
		}
		sectorTime, err := csv.ParseLargeSectorTime(raw)
		if err != nil {
			return nil, err
		}
		ret = append(ret, &model.Sector{
			SectorNumber:      n,
			SectorTimeSeconds: sectorTime,
		})
	}
	return ret, nil
}

// persist writes laps first, then assigns each staged sector the
// database id of the lap sharing its key.
func (r *timecardRun) persist(ctx context.Context) error {
	laps := make([]*model.Lap, 0, len(r.keyOrder))
	for _, key := range r.keyOrder {
		laps = append(laps, r.laps[key])
	}
	if err := laprepo.BatchCreate(ctx, r.imp.conn, laps); err != nil {
		return err
	}

	sectors := make([]*model.Sector, 0)
	for _, key := range r.keyOrder {
		for _, s := range r.sectors[key] {
			s.LapID = r.laps[key].ID
			sectors = append(sectors, s)
		}
	}
	r.imp.l.Info("persisting timecard",
		log.Int("session", r.sess.ID),
		log.Int("laps", len(laps)),
		log.Int("sectors", len(sectors)))
	if len(sectors) == 0 {
		return nil
	}
	return laprepo.BatchCreateSectors(ctx, r.imp.conn, sectors)
}
