package models

import (
	"fmt"
	"strconv"
)

// Supported datasource drivers.
const (
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
	DriverSQLServer = "sqlserver"
)

// ConnectionDetails locates the datasource to visualise. The password is only
// held for the lifetime of the connection attempt and is never persisted.
type ConnectionDetails struct {
	Host         string `json:"host" binding:"required"`
	Port         string `json:"port" binding:"required"`
	DatabaseName string `json:"databaseName" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password"`
	Driver       string `json:"driver"`
	Schema       string `json:"schema"`
}

// DefaultPort is the well-known port of a driver.
func DefaultPort(driver string) string {
	switch driver {
	case DriverMySQL:
		return "3306"
	case DriverSQLServer, "mssql":
		return "1433"
	default:
		return "5432"
	}
}

// Normalize fills in the driver, port and schema defaults.
func (d ConnectionDetails) Normalize() ConnectionDetails {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}
	if d.Driver == "mssql" {
		d.Driver = DriverSQLServer
	}
	if d.Port == "" {
		d.Port = DefaultPort(d.Driver)
	}
	if d.Schema == "" {
		switch d.Driver {
		case DriverMySQL:
			d.Schema = d.DatabaseName
		case DriverSQLServer:
			d.Schema = "dbo"
		default:
			d.Schema = "public"
		}
	}
	return d
}

func (d ConnectionDetails) Validate() error {
	switch d.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLServer:
	default:
		return fmt.Errorf("unsupported driver %q", d.Driver)
	}
	if d.Host == "" {
		return fmt.Errorf("host is required")
	}
	if _, err := strconv.Atoi(d.Port); err != nil {
		return fmt.Errorf("port must be numeric: %q", d.Port)
	}
	if d.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}
	if d.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

// Redacted renders the connection without its password, for logs.
func (d ConnectionDetails) Redacted() string {
	return fmt.Sprintf("%s://%s@%s:%s/%s", d.Driver, d.Username, d.Host, d.Port, d.DatabaseName)
}

// ConnectionOptions are previously used connection values offered for autocomplete.
type ConnectionOptions struct {
	Usernames []string `json:"usernames"`
	Hosts     []string `json:"hosts"`
	Ports     []string `json:"ports"`
	Databases []string `json:"databases"`
}
