package main

import (
	"fmt"

	"github.com/iti/jsontopo"
	"github.com/spf13/cobra"
)

var toposCmd = &cobra.Command{
	Use:   "topos",
	Short: "List registered topologies",
	Long:  `List the names all registered topologies can be selected by.`,
	Args:  cobra.NoArgs,
	Run:   runTopos,
}

func init() {
	rootCmd.AddCommand(toposCmd)
}

func runTopos(cmd *cobra.Command, args []string) {
	for _, name := range jsontopo.Topos() {
		fmt.Println(name)
	}
}
