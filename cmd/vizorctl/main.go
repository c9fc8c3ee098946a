package main

import (
	"fmt"
	"os"

	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/services"
)

func main() {
	root := newRootCmd(func(a *app) services.Connector {
		return services.NewConnector(database.DefaultPoolOptions(), a.logger)
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
