package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/logging"
	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/repositories"
	"github.com/Abdus2609/vizor/internal/services"
)

const passwordEnv = "VIZOR_PASSWORD"

// skipConnect marks commands that do not need a datasource.
const skipConnect = "skip-connect"

// app is the state shared by every subcommand once the root has connected.
type app struct {
	details  models.ConnectionDetails
	logLevel string
	timeout  time.Duration

	logger        *zap.Logger
	connections   *services.ConnectionService
	catalog       *services.CatalogService
	visualisation *services.VisualisationService
}

func newRootCmd(connector func(*app) services.Connector) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "vizorctl",
		Short:         "Classify table selections, recommend charts and compile their queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New("local", a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger

			a.connections = services.NewConnectionService(connector(a), repositories.NewMemoryConnectionHistory(), logger)
			a.catalog = services.NewCatalogService(catalog.NewStore(), a.connections, a.timeout, logger)
			a.visualisation = services.NewVisualisationService(a.catalog, a.connections, nil, a.timeout, logger)

			if cmd.Annotations[skipConnect] == "true" {
				return nil
			}

			a.details.Password = os.Getenv(passwordEnv)
			if _, err := a.catalog.Connect(cmd.Context(), a.details); err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.connections != nil {
				a.connections.Close()
			}
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.details.Driver, "driver", "postgres", "datasource driver (postgres, mysql, sqlserver)")
	flags.StringVar(&a.details.Host, "host", "localhost", "datasource host")
	flags.StringVar(&a.details.Port, "port", "", "datasource port (defaults per driver)")
	flags.StringVar(&a.details.DatabaseName, "database", "", "database name")
	flags.StringVar(&a.details.Username, "user", "", "database user (password is read from "+passwordEnv+")")
	flags.StringVar(&a.details.Schema, "schema", "", "schema to introspect (defaults per driver)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "introspection and query timeout")

	root.AddCommand(
		newChartsCmd(),
		newCatalogCmd(a),
		newDiscoverCmd(a),
		newExploreCmd(a),
		newCompileCmd(a),
	)
	return root
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// tablesOf returns the distinct table prefixes of qualified column names.
func tablesOf(columns []string) []string {
	seen := map[string]bool{}
	var tables []string
	for _, c := range columns {
		table, _, _ := strings.Cut(c, ".")
		if table == "" || seen[table] {
			continue
		}
		seen[table] = true
		tables = append(tables, table)
	}
	return tables
}
