package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storedesk/internal/cli"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Load demo records into the configured backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		backend, _ := cmd.Flags().GetString("backend")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.RunSeed(cli.SeedOptions{
			ConfigPath:  configPath,
			Backend:     backend,
			Debug:       debug,
			FixturePath: args[0],
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
