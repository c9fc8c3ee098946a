package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/models"
)

// PoolOptions tunes the connection pool opened for a datasource.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	PingTimeout     time.Duration
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// PostgresDSN builds a postgres:// URL with the credentials escaped.
func PostgresDSN(details models.ConnectionDetails) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(details.Username, details.Password),
		Host:     net.JoinHostPort(details.Host, details.Port),
		Path:     "/" + details.DatabaseName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func MySQLDSN(details models.ConnectionDetails) string {
	cfg := mysql.NewConfig()
	cfg.User = details.Username
	cfg.Passwd = details.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(details.Host, details.Port)
	cfg.DBName = details.DatabaseName
	cfg.ParseTime = true
	cfg.Timeout = 10 * time.Second
	return cfg.FormatDSN()
}

func SQLServerDSN(details models.ConnectionDetails) string {
	query := url.Values{}
	query.Add("database", details.DatabaseName)
	query.Add("encrypt", "disable")
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(details.Username, details.Password),
		Host:     net.JoinHostPort(details.Host, details.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// ConnectPostgres opens a pgx pool and pings it before returning.
func ConnectPostgres(ctx context.Context, details models.ConnectionDetails, opts PoolOptions, logger *zap.Logger) (*pgxpool.Pool, error) {
	logger.Info("Connecting to datasource", zap.String("datasource", details.Redacted()))

	config, err := pgxpool.ParseConfig(PostgresDSN(details))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = opts.MaxConnLifetime
	config.MaxConnIdleTime = opts.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Datasource connection pool established", zap.String("datasource", details.Redacted()))
	return pool, nil
}

// OpenSQL opens a database/sql handle for the MySQL and SQL Server drivers.
func OpenSQL(ctx context.Context, details models.ConnectionDetails, opts PoolOptions, logger *zap.Logger) (*sql.DB, error) {
	var driverName, dsn string
	switch details.Driver {
	case models.DriverMySQL:
		driverName, dsn = "mysql", MySQLDSN(details)
	case models.DriverSQLServer:
		driverName, dsn = "sqlserver", SQLServerDSN(details)
	default:
		return nil, fmt.Errorf("unsupported driver %q", details.Driver)
	}

	logger.Info("Connecting to datasource", zap.String("datasource", details.Redacted()))

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}

	db.SetMaxOpenConns(int(opts.MaxConns))
	db.SetMaxIdleConns(int(opts.MinConns))
	db.SetConnMaxLifetime(opts.MaxConnLifetime)
	db.SetConnMaxIdleTime(opts.MaxConnIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Datasource connection pool established", zap.String("datasource", details.Redacted()))
	return db, nil
}
