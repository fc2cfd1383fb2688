package main

import (
	"fmt"
	"os"

	"github.com/iti/jsontopo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	verbose  bool
	topoSpec string
)

var rootCmd = &cobra.Command{
	Use:   "jsontopo",
	Short: "Build network-emulator topologies from JSON graph files",
	Long: `jsontopo builds network-emulator topology descriptions.

A topology is selected with a specification string of the form
"name,key=value,...", for example "nsfnet,jsonPath=config/NSFNET.json"
or "linear,n=4". Built topologies can be written as description files
(YAML or JSON), exported to Graphviz DOT, or served over HTTP.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jsontopo.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&topoSpec, "topo", "t", "nsfnet", `topology specification, "name,key=value,..."`)

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("topo", rootCmd.PersistentFlags().Lookup("topo"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jsontopo")
	}

	viper.SetEnvPrefix("jsontopo")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveTopo builds the topology selected by the --topo specification
// into a fresh recording frame named name.
func resolveTopo(name string) (*jsontopo.TopoFrame, error) {
	spec := viper.GetString("topo")

	topo, err := jsontopo.TopoFromSpec(spec)
	if err != nil {
		return nil, err
	}

	tf := jsontopo.CreateTopoFrame(name)
	if err := topo.Build(tf); err != nil {
		return nil, fmt.Errorf("failed to build topology %q: %w", spec, err)
	}
	return tf, nil
}
