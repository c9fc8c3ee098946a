package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/repositories"
)

// SchemaIntrospector reads the table catalog of a schema.
type SchemaIntrospector interface {
	Introspect(ctx context.Context, schema string) ([]models.TableMetadata, error)
}

// QueryRunner executes compiled SELECT text.
type QueryRunner interface {
	Query(ctx context.Context, query string) ([]models.Row, error)
}

// Datasource is an open connection to the database being visualised.
type Datasource struct {
	Details models.ConnectionDetails
	Dialect database.Dialect
	Schema  SchemaIntrospector
	Data    QueryRunner

	closeFn func()

	mu       sync.Mutex
	inFlight int
	retired  bool
	closed   bool
}

func NewDatasource(details models.ConnectionDetails, dialect database.Dialect, schema SchemaIntrospector, data QueryRunner, closeFn func()) *Datasource {
	details.Password = ""
	return &Datasource{
		Details: details,
		Dialect: dialect,
		Schema:  schema,
		Data:    data,
		closeFn: closeFn,
	}
}

// Close releases the underlying pool immediately.
func (d *Datasource) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.retired = true
	d.closeLocked()
	d.mu.Unlock()
}

// Retire closes the datasource once every acquired use has been released.
func (d *Datasource) Retire() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.retired = true
	if d.inFlight == 0 {
		d.closeLocked()
	}
}

func (d *Datasource) acquire() {
	d.mu.Lock()
	d.inFlight++
	d.mu.Unlock()
}

func (d *Datasource) release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.inFlight--
	if d.retired && d.inFlight == 0 {
		d.closeLocked()
	}
}

func (d *Datasource) closeLocked() {
	if d.closed {
		return
	}
	d.closed = true
	if d.closeFn != nil {
		d.closeFn()
	}
}

// Connector opens a datasource from connection details.
type Connector func(ctx context.Context, details models.ConnectionDetails) (*Datasource, error)

// NewConnector returns the driver-backed connector: pgx for Postgres,
// database/sql for MySQL and SQL Server.
func NewConnector(opts database.PoolOptions, logger *zap.Logger) Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, details models.ConnectionDetails) (*Datasource, error) {
		dialect, err := database.GetDialect(details.Driver)
		if err != nil {
			return nil, err
		}

		switch details.Driver {
		case models.DriverPostgres:
			pool, err := database.ConnectPostgres(ctx, details, opts, logger)
			if err != nil {
				return nil, err
			}
			return NewDatasource(details, dialect,
				repositories.NewSchemaRepository(pool),
				repositories.NewDataRepository(pool),
				pool.Close,
			), nil
		case models.DriverMySQL, models.DriverSQLServer:
			db, err := database.OpenSQL(ctx, details, opts, logger)
			if err != nil {
				return nil, err
			}
			return NewDatasource(details, dialect,
				repositories.NewSQLSchemaRepository(db, dialect),
				repositories.NewSQLDataRepository(db),
				func() { db.Close() },
			), nil
		default:
			return nil, fmt.Errorf("unsupported driver %q", details.Driver)
		}
	}
}
