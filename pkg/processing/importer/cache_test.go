package importer

import (
	"context"
	"testing"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	base "github.com/arjunakankipati/racing-stat-service-go/testsupport/basedata"
	"github.com/arjunakankipati/racing-stat-service-go/testsupport/testdb"
)

func TestEntityCachesResolveOnce(t *testing.T) {
	pool := testdb.InitTestDb()
	base.CreateSampleSession(pool)

	ctx := context.Background()
	caches := newEntityCaches(ctx, pool, 1, log.Default())

	first, err := caches.team.Get(ctx, "Proton Competition")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	second, err := caches.team.Get(ctx, "Proton Competition")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("cache returned different teams: %d vs %d", first.ID, second.ID)
	}
	if num := countRows(t, pool, "team"); num != 1 {
		t.Errorf("got %d team rows, want 1 (single find-or-create)", num)
	}
}

func TestEntityCachesAreIndependentPerImport(t *testing.T) {
	pool := testdb.InitTestDb()
	base.CreateSampleSession(pool)

	ctx := context.Background()
	one := newEntityCaches(ctx, pool, 1, log.Default())
	two := newEntityCaches(ctx, pool, 1, log.Default())

	a, err := one.team.Get(ctx, "AF Corse")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	b, err := two.team.Get(ctx, "AF Corse")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// separate caches, but find-or-create converges on the same row
	if a.ID != b.ID {
		t.Errorf("independent caches resolved different rows: %d vs %d", a.ID, b.ID)
	}
	if num := countRows(t, pool, "team"); num != 1 {
		t.Errorf("got %d team rows, want 1", num)
	}
}
