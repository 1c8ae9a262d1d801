package postgres

import (
	"context"
	stdlog "log"

	"github.com/exaring/otelpgx"
	pgxuuid "github.com/jackc/pgx-gofrs-uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgx-contrib/pgxtrace"

	"github.com/arjunakankipati/racing-stat-service-go/log"
)

var DbPool *pgxpool.Pool

type PoolConfigOption func(cfg *pgxpool.Config)

// WithTracer logs queries on the given logger at the given level.
func WithTracer(logger *log.Logger, level log.Level) PoolConfigOption {
	return func(cfg *pgxpool.Config) {
		cfg.ConnConfig.Tracer = pgxtrace.CompositeQueryTracer{
			&zapQueryTracer{log: logger, level: level},
		}
	}
}

// WithOtlpTracer sends query spans to the configured otel tracer provider.
func WithOtlpTracer() PoolConfigOption {
	return func(cfg *pgxpool.Config) {
		cfg.ConnConfig.Tracer = otelpgx.NewTracer()
	}
}

func InitWithURL(url string, opts ...PoolConfigOption) *pgxpool.Pool {
	dbConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		stdlog.Fatalf("Unable to parse database config %v\n", err)
	}

	dbConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}
	for _, opt := range opts {
		opt(dbConfig)
	}

	DbPool, err = pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		stdlog.Fatalf("Unable to create the database pool %v\n", err)
	}
	if err := DbPool.Ping(context.Background()); err != nil {
		stdlog.Fatalf("Unable to get a valid database connection %v\n", err)
	}
	return DbPool
}

func CloseDB() {
	DbPool.Close()
}

type zapQueryTracer struct {
	log   *log.Logger
	level log.Level
}

//nolint:whitespace // can't make both editor and linter happy
func (tracer *zapQueryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	if tracer.level == log.DebugLevel {
		tracer.log.Debug("Executing",
			log.String("sql", data.SQL), log.Any("args", data.Args))
	}
	return ctx
}

//nolint:whitespace // can't make both editor and linter happy
func (tracer *zapQueryTracer) TraceQueryEnd(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	if data.Err != nil {
		tracer.log.Error("query failed", log.ErrorField(data.Err))
	}
}
