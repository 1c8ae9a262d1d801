package basedata

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	carentryrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/carentry"
	carmodelrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/carmodel"
	classrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/class"
	driverrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/driver"
	eventrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/event"
	seriesrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/series"
	sessionrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/session"
	teamrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/team"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-01-27T13:00:00Z")
	return t
}

func SampleEvent(seriesID int) *model.Event {
	return &model.Event{
		SeriesID:  seriesID,
		Name:      "Test 24h",
		Year:      2024,
		StartDate: TestTime(),
		EndDate:   TestTime().Add(48 * time.Hour),
	}
}

func SampleSession(eventID int) *model.Session {
	return &model.Session{
		EventID:         eventID,
		Name:            "Race",
		Type:            "RACE",
		StartTime:       TestTime(),
		DurationSeconds: 86400,
	}
}

// CreateSampleSession seeds series, event and one race session and
// returns the session ready for importer tests.
func CreateSampleSession(db *pgxpool.Pool) *model.Session {
	ctx := context.Background()
	ser, err := seriesrepo.FindOrCreate(ctx, db, "Test Endurance Series")
	if err != nil {
		log.Fatalf("createSampleSession: %v\n", err)
	}
	ev, err := eventrepo.FindOrCreate(ctx, db, SampleEvent(ser.ID))
	if err != nil {
		log.Fatalf("createSampleSession: %v\n", err)
	}
	sess, err := sessionrepo.FindOrCreate(ctx, db, SampleSession(ev.ID))
	if err != nil {
		log.Fatalf("createSampleSession: %v\n", err)
	}
	return sess
}

// CreateSampleEntry seeds one car entry with a single associated driver
// on the given session.
func CreateSampleEntry(
	db *pgxpool.Pool,
	sess *model.Session,
	number string,
) (*model.CarEntry, *model.Driver) {
	ctx := context.Background()
	ev, err := eventrepo.LoadByID(ctx, db, sess.EventID)
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	team, err := teamrepo.FindOrCreate(ctx, db, "Test Racing")
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	cls, err := classrepo.FindOrCreate(ctx, db, ev.SeriesID, "HY")
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	cm, err := carmodelrepo.FindOrCreate(ctx, db,
		&model.CarModel{Name: "Test LMDh"})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	entry, err := carentryrepo.FindOrCreate(ctx, db, &model.CarEntry{
		SessionID:  sess.ID,
		TeamID:     team.ID,
		ClassID:    cls.ID,
		CarModelID: cm.ID,
		Number:     number,
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	drv, err := driverrepo.FindOrCreate(ctx, db, &model.Driver{
		FirstName: "Test",
		LastName:  "DRIVER" + number,
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	if _, err := carentryrepo.FindOrCreateCarDriver(ctx, db, &model.CarDriver{
		CarEntryID:   entry.ID,
		DriverID:     drv.ID,
		DriverNumber: 1,
	}); err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	return entry, drv
}
