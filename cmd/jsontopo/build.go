package main

import (
	"fmt"

	"github.com/iti/jsontopo"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a topology and write its description file",
	Long: `Build the selected topology and write the result as a description
file. The extension of the output name selects the encoding: .json for
JSON, anything else for YAML. With --dict the description is wrapped
in a one-entry dictionary keyed by the topology name, so further
descriptions can be merged into the same file later.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var (
	buildOut  string
	buildName string
	buildDict bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "topo.yaml", "output description file")
	buildCmd.Flags().StringVar(&buildName, "name", "topo", "name recorded in the description")
	buildCmd.Flags().BoolVar(&buildDict, "dict", false, "wrap the description in a dictionary")
}

func runBuild(cmd *cobra.Command, args []string) error {
	if _, err := jsontopo.CheckOutputFiles([]string{buildOut}); err != nil {
		return fmt.Errorf("cannot write %s: %w", buildOut, err)
	}

	tf, err := resolveTopo(buildName)
	if err != nil {
		return err
	}
	td := tf.Transform()

	if buildDict {
		tdd := jsontopo.CreateTopoDescDict(buildName)
		if err := tdd.AddTopoDesc(&td, false); err != nil {
			return err
		}
		if err := tdd.WriteToFile(buildOut); err != nil {
			return fmt.Errorf("failed to write %s: %w", buildOut, err)
		}
	} else if err := td.WriteToFile(buildOut); err != nil {
		return fmt.Errorf("failed to write %s: %w", buildOut, err)
	}

	fmt.Printf("wrote %s (%d switches, %d hosts, %d links)\n",
		buildOut, len(td.Switches), len(td.Hosts), len(td.Links))
	return nil
}
