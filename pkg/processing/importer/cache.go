package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/model"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/repository"
	carmodelrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/carmodel"
	classrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/class"
	teamrepo "github.com/arjunakankipati/racing-stat-service-go/pkg/repository/team"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/utils/cache"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/utils/cache/loadercache"
)

// entityCaches resolve natural keys to rows via find-or-create. One
// instance is owned by exactly one import run; concurrent imports must
// not share resolution state.
type entityCaches struct {
	team     cache.Cache[string, model.Team]
	class    cache.Cache[string, model.Class]
	carModel cache.Cache[string, model.CarModel]
}

func newEntityCaches(
	ctx context.Context,
	conn repository.Querier,
	seriesID int,
	l *log.Logger,
) *entityCaches {
	return &entityCaches{
		team: loadercache.New(
			loadercache.WithLogger[string, model.Team](l),
			loadercache.WithLoader[string, model.Team](
				func(name string) (*model.Team, error) {
					return teamrepo.FindOrCreate(ctx, conn, name)
				})),
		class: loadercache.New(
			loadercache.WithLogger[string, model.Class](l),
			loadercache.WithLoader[string, model.Class](
				func(key string) (*model.Class, error) {
					name := key[strings.Index(key, ":")+1:]
					return classrepo.FindOrCreate(ctx, conn, seriesID, name)
				})),
		carModel: loadercache.New(
			loadercache.WithLogger[string, model.CarModel](l),
			loadercache.WithLoader[string, model.CarModel](
				func(name string) (*model.CarModel, error) {
					return carmodelrepo.FindOrCreate(ctx, conn,
						&model.CarModel{Name: name})
				})),
	}
}

// classKey scopes class resolution to the session's series.
func classKey(seriesID int, name string) string {
	return fmt.Sprintf("%d:%s", seriesID, name)
}
