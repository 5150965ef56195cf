package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cxcds/usint-in-go/pkg/config"
	"github.com/cxcds/usint-in-go/pkg/db"
	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/params"
	gormstore "github.com/cxcds/usint-in-go/pkg/server/store/gorm"
)

// parameterCmd represents the parameter command
var parameterCmd = &cobra.Command{
	Use:   "parameter",
	Short: "Manage the parameter catalog",
	Long:  `Manage the catalog of observation parameters tracked by revisions.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'parameter' requires a subcommand (seed)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// parameterSeedCmd represents the parameter seed command
var parameterSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the parameter catalog",
	Long: `Seed the parameter catalog.

This command inserts a catalog row for every parameter that belongs to
a signoff group. Parameters already in the catalog are left untouched,
so reseeding after an upgrade is safe.

Example:
  usintctl parameter seed`,
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{URL: config.Get().DatabaseURL})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		catalog := trackedParameters()
		if err := gormstore.NewParametersStore(database).Seed(catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed parameters: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Seeded %d parameters\n", len(catalog))
	},
}

// trackedParameters builds a catalog entry for every parameter in a signoff
// group, deduplicated across groups.
func trackedParameters() []model.Parameter {
	seen := make(map[string]struct{})
	var catalog []model.Parameter
	for _, column := range []string{"general", "acis", "acis_si", "hrc_si"} {
		for _, name := range params.SignoffParams(column) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			catalog = append(catalog, model.Parameter{
				Name:         name,
				IsModifiable: true,
				DataType:     "json",
				Description:  params.Label(name),
			})
		}
	}
	return catalog
}

func init() {
	rootCmd.AddCommand(parameterCmd)
	parameterCmd.AddCommand(parameterSeedCmd)
}
