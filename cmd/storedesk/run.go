package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storedesk/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive desk session",
	Long:  `Opens the configured backend and presents the main menu until the operator chooses Exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		backend, _ := cmd.Flags().GetString("backend")
		debug, _ := cmd.Flags().GetBool("debug")
		headless, _ := cmd.Flags().GetBool("headless")

		err := cli.RunSession(cli.RunOptions{
			ConfigPath: configPath,
			Backend:    backend,
			Debug:      debug,
			Headless:   headless,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Plain output: no banner, no Markdown rendering")

	// 'run' is the default when no command is given.
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
