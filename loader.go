package jsontopo

// file loader.go holds the topology loader that reads a JSON graph
// file and drives switch, host, and link construction on a Builder.

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// DefaultTopoPath is the graph file read when no jsonPath option is given.
const DefaultTopoPath = "config/NSFNET.json"

// Errors reported while building devices from a resolved document.
var (
	ErrEmptyIdent  = errors.New("node identity empty after cleaning")
	ErrUnknownNode = errors.New("link references unknown node(s)")
)

// A TopoLoader builds an emulated network from the graph in a JSON
// file: one switch per node, optionally one host attached to every
// switch, and one link per edge. A loader holds no state between
// builds; the graph it produces lives in the builder it drives.
type TopoLoader struct {
	jsonPath string
	addHosts bool
}

// loaderParams are the options recognized by the nsfnet factory.
type loaderParams struct {
	JSONPath string `mapstructure:"jsonPath"`
	AddHosts string `mapstructure:"addHosts"`
}

func init() {
	RegisterTopo("nsfnet", func(opts Options) (Topo, error) {
		params := loaderParams{}
		if err := opts.Decode(&params); err != nil {
			return nil, err
		}
		return CreateTopoLoader(params.JSONPath, hostsEnabled(params.AddHosts)), nil
	})
}

// hostsEnabled interprets a boolean-like option value. Host creation
// stays enabled for every value except the literal string "false",
// compared case-insensitively.
func hostsEnabled(value string) bool {
	return !strings.EqualFold(value, "false")
}

// CreateTopoLoader is an initialization constructor. An empty path
// selects DefaultTopoPath.
func CreateTopoLoader(jsonPath string, addHosts bool) *TopoLoader {
	tl := new(TopoLoader)
	if len(jsonPath) == 0 {
		jsonPath = DefaultTopoPath
	}
	tl.jsonPath = jsonPath
	tl.addHosts = addHosts
	return tl
}

// Path returns the graph file the loader reads.
func (tl *TopoLoader) Path() string {
	return tl.jsonPath
}

// Build reads and parses the loader's graph file and issues the
// construction calls for its devices against bldr, in document order:
// switches first, then hosts when enabled, then links. Every failure
// aborts the build; nothing already issued is rolled back.
func (tl *TopoLoader) Build(bldr Builder) error {
	data, err := os.ReadFile(tl.jsonPath)
	if err != nil {
		return fmt.Errorf("topology file %s: %w", tl.jsonPath, err)
	}
	g, err := ParseGraph(data)
	if err != nil {
		return err
	}
	nodes, err := g.Nodes()
	if err != nil {
		return err
	}
	links, err := g.Links()
	if err != nil {
		return err
	}

	// switch handles are keyed by the raw identity; edges reference
	// nodes exactly as they were written, not by the cleaned form
	swByIdent := make(map[string]Device)
	idents := make([]string, 0, len(nodes))

	for _, node := range nodes {
		ident := node.Identity()
		cleaned := CleanIdent(ident)
		if len(cleaned) == 0 {
			return fmt.Errorf("%w: %q", ErrEmptyIdent, ident)
		}
		sw, err := bldr.CreateSwitch(SwitchName(cleaned))
		if err != nil {
			return fmt.Errorf("create switch for node %q: %w", ident, err)
		}
		if !slices.Contains(idents, ident) {
			idents = append(idents, ident)
		}
		swByIdent[ident] = sw
	}

	if tl.addHosts {
		for _, ident := range idents {
			host, err := bldr.CreateHost(HostName(CleanIdent(ident)))
			if err != nil {
				return fmt.Errorf("create host for node %q: %w", ident, err)
			}
			if err := bldr.CreateLink(host, swByIdent[ident]); err != nil {
				return fmt.Errorf("link host for node %q: %w", ident, err)
			}
		}
	}

	for _, link := range links {
		u, v, err := link.Endpoints()
		if err != nil {
			return err
		}
		swU, uPresent := swByIdent[u]
		swV, vPresent := swByIdent[v]
		if !uPresent || !vPresent {
			return fmt.Errorf("%w: %q -> %q", ErrUnknownNode, u, v)
		}
		if err := bldr.CreateLink(swU, swV); err != nil {
			return fmt.Errorf("link %q -> %q: %w", u, v, err)
		}
	}

	return nil
}
