package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storedesk"
	"github.com/aretw0/storedesk/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu tree",
	Long:  `Builds the desk menu without opening a backend and prints it as an outline or a Mermaid diagram (graph TD).`,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")

		m := storedesk.New().Menu()
		switch format {
		case "tree":
			fmt.Print(graph.GenerateTree(m))
		case "mermaid":
			fmt.Print(graph.GenerateMermaid(m, "storedesk"))
		default:
			fmt.Printf("Error: unknown format %q (want tree or mermaid)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)

	menuCmd.Flags().String("format", "tree", "Output format: tree or mermaid")
}
