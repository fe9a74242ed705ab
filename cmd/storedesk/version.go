package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/storedesk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of storedesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("storedesk version %s\n", strings.TrimSpace(storedesk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
