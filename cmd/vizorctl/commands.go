package main

import (
	"github.com/spf13/cobra"

	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/services"
)

func newChartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "charts",
		Short:       "List the supported chart types",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConnect: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), services.SupportedCharts())
		},
	}
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Introspect the datasource and print its tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), a.catalog.Current().Response())
		},
	}
}

func newDiscoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "discover table.column...",
		Short: "Classify a column selection, list its charts and fetch its rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.visualisation.Discover(cmd.Context(), models.DiscoveryRequest{
				TableNames:      tablesOf(args),
				FullColumnNames: args,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore visId table",
		Short: "List every option one chart type offers on a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.visualisation.Explore(cmd.Context(), models.ExplorationRequest{
				VisID: models.VisID(args[0]),
				Table: args[1],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newCompileCmd(a *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "compile table.column...",
		Short: "Print the query a selection compiles to without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.visualisation.Compile(cmd.Context(), models.CompileRequest{
				Pattern:         pattern,
				TableNames:      tablesOf(args),
				FullColumnNames: args,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "compile for this pattern instead of classifying")
	return cmd
}
