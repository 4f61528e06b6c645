package main

import (
	"carhoot/internal/di"
	"carhoot/internal/structures"
	"fmt"
	"github.com/spf13/cobra"
	"log"
)

const releaseVersion = "1.0.0"

func main() {
	log.SetFlags(0)
	flags := &structures.CliFlags{}
	cobra.CheckErr(newRootCmd(flags).Execute())
}

func newRootCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "carhoot",
		Short:         "Daily car guessing game server.",
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", "config/carhoot.yaml", "path to the yaml config file")
	pf.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(newServeCmd(flags), newSeedCmd(flags))
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	return cmd
}

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			return app.Run()
		},
	}
}

func newSeedCmd(flags *structures.CliFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load catalog vehicles from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, err := di.InitSeeder(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			report, err := seeder.SeedFile(cmd.Context(), file)
			if err != nil {
				return err
			}
			cmd.Printf("%d created, %d updated\n", report.Created, report.Updated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "config/vehicles.json", "vehicles JSON array")
	return cmd
}
