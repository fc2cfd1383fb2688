package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/iti/jsontopo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build a topology and serve its description over HTTP",
	Long: `Build the selected topology once and serve it as JSON.
GET /topology returns the built description; GET /topos returns the
names of all registered topologies.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	tf, err := resolveTopo("served")
	if err != nil {
		return err
	}
	td := tf.Transform()

	http.HandleFunc("/topology", func(w http.ResponseWriter, r *http.Request) {
		topologyJSON, err := json.Marshal(td)
		if err != nil {
			log.Printf("error marshaling topology: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(topologyJSON)
	})

	http.HandleFunc("/topos", func(w http.ResponseWriter, r *http.Request) {
		namesJSON, err := json.Marshal(jsontopo.Topos())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(namesJSON)
	})

	addr := viper.GetString("addr")
	log.Printf("serving topology %s (%d switches, %d hosts, %d links) on %s",
		td.Name, len(td.Switches), len(td.Hosts), len(td.Links), addr)
	log.Fatal(http.ListenAndServe(addr, nil))
	return nil
}
