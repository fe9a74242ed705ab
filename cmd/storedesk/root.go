package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storedesk",
	Short: "Storedesk is a terminal desk for a small store's catalog",
	Long:  `Storedesk lets an operator manage clients, categories, products and orders through numbered menus.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./storedesk.yaml when present)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: memory, sqlite or redis")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
