package carentry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository/carentry"
	driverrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/driver"
	base "github.com/arjunakankipati/racing-stat-service-go/testsupport/basedata"
	"github.com/arjunakankipati/racing-stat-service-go/testsupport/testdb"
)

func TestLoadBySessionAndNumber(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	entry, _ := base.CreateSampleEntry(pool, sess, "88")
	type args struct {
		number string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{name: "existing entry", args: args{number: "88"}},
		{name: "unknown entry", args: args{number: "99"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			got, err := carentry.LoadBySessionAndNumber(ctx, pool, sess.ID, tt.args.number)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadBySessionAndNumber() error = %v, wantErr %v",
					err, tt.wantErr)
				return
			}
			if err == nil && got.ID != entry.ID {
				t.Errorf("LoadBySessionAndNumber() id = %d, want %d",
					got.ID, entry.ID)
			}
		})
	}
}

func TestFindOrCreateReturnsExisting(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	entry, _ := base.CreateSampleEntry(pool, sess, "88")
	ctx := context.Background()

	got, err := carentry.FindOrCreate(ctx, pool, &model.CarEntry{
		SessionID:  sess.ID,
		TeamID:     entry.TeamID,
		ClassID:    entry.ClassID,
		CarModelID: entry.CarModelID,
		Number:     "88",
	})
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	if got.ID != entry.ID {
		t.Errorf("FindOrCreate() id = %d, want existing %d", got.ID, entry.ID)
	}
}

func TestLoadCarDriverByNumber(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	entry, drv := base.CreateSampleEntry(pool, sess, "88")
	ctx := context.Background()

	got, err := carentry.LoadCarDriverByNumber(ctx, pool, entry.ID, 1)
	if err != nil {
		t.Fatalf("LoadCarDriverByNumber() error = %v", err)
	}
	if got.DriverID != drv.ID {
		t.Errorf("LoadCarDriverByNumber() driver = %d, want %d",
			got.DriverID, drv.ID)
	}

	if _, err := carentry.LoadCarDriverByNumber(ctx, pool, entry.ID, 9); !errors.Is(
		err, pgx.ErrNoRows) {
		t.Errorf("LoadCarDriverByNumber() error = %v, want ErrNoRows", err)
	}
}

func TestLoadCarDriverByName(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	entry, drv := base.CreateSampleEntry(pool, sess, "88")
	ctx := context.Background()

	got, err := carentry.LoadCarDriverByName(ctx, pool, entry.ID,
		drv.FirstName, drv.LastName)
	if err != nil {
		t.Fatalf("LoadCarDriverByName() error = %v", err)
	}
	if got.DriverID != drv.ID {
		t.Errorf("LoadCarDriverByName() driver = %d, want %d",
			got.DriverID, drv.ID)
	}

	// name matching is exact, no case folding
	if _, err := carentry.LoadCarDriverByName(ctx, pool, entry.ID,
		drv.FirstName, "driver88"); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("LoadCarDriverByName() error = %v, want ErrNoRows", err)
	}
}

func TestFindOrCreateCarDriverKeepsFirstNumber(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	entry, drv := base.CreateSampleEntry(pool, sess, "88")
	ctx := context.Background()

	// the seeded association carries driver number 1; a later sheet
	// reporting the same driver as seat 2 must not change it
	got, err := carentry.FindOrCreateCarDriver(ctx, pool, &model.CarDriver{
		CarEntryID:   entry.ID,
		DriverID:     drv.ID,
		DriverNumber: 2,
	})
	if err != nil {
		t.Fatalf("FindOrCreateCarDriver() error = %v", err)
	}
	if got.DriverNumber != 1 {
		t.Errorf("FindOrCreateCarDriver() number = %d, want 1 (first wins)",
			got.DriverNumber)
	}
}

func TestLoadCarDrivers(t *testing.T) {
	pool := testdb.InitTestDb()
	sess := base.CreateSampleSession(pool)
	entry, _ := base.CreateSampleEntry(pool, sess, "88")
	ctx := context.Background()

	second, err := driverrepo.FindOrCreate(ctx, pool, &model.Driver{
		FirstName: "Other",
		LastName:  "DRIVER",
	})
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	if _, err := carentry.FindOrCreateCarDriver(ctx, pool, &model.CarDriver{
		CarEntryID:   entry.ID,
		DriverID:     second.ID,
		DriverNumber: 2,
	}); err != nil {
		t.Fatalf("FindOrCreateCarDriver() error = %v", err)
	}

	got, err := carentry.LoadCarDrivers(ctx, pool, entry.ID)
	if err != nil {
		t.Fatalf("LoadCarDrivers() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadCarDrivers() returned %d associations, want 2", len(got))
	}
	if got[0].DriverNumber != 1 || got[1].DriverNumber != 2 {
		t.Errorf("LoadCarDrivers() not ordered by driver number: %d, %d",
			got[0].DriverNumber, got[1].DriverNumber)
	}
}
