package series

import (
	"context"
	"testing"

	"github.com/arjunakankipati/racing-stat-service-go/testsupport/testdb"
)

func TestFindOrCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	first, err := FindOrCreate(ctx, pool, "FIA WEC")
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	again, err := FindOrCreate(ctx, pool, "FIA WEC")
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("FindOrCreate() id = %d, want existing %d", again.ID, first.ID)
	}

	got, err := LoadByName(ctx, pool, "FIA WEC")
	if err != nil {
		t.Fatalf("LoadByName() error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("LoadByName() id = %d, want %d", got.ID, first.ID)
	}
	if _, err := LoadByName(ctx, pool, "unknown"); err == nil {
		t.Error("LoadByName() found a series for an unknown name")
	}
}

func TestLoadAll(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	for _, name := range []string{"FIA WEC", "IMSA WeatherTech"} {
		if _, err := FindOrCreate(ctx, pool, name); err != nil {
			t.Fatalf("FindOrCreate() error = %v", err)
		}
	}

	got, err := LoadAll(ctx, pool)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadAll() returned %d series, want 2", len(got))
	}
	if got[0].Name != "FIA WEC" || got[1].Name != "IMSA WeatherTech" {
		t.Errorf("LoadAll() not ordered by name: %s, %s",
			got[0].Name, got[1].Name)
	}
}
