package jsontopo

// file dot.go holds the export of a recorded topology to Graphviz DOT
// form, for rendering with the usual graph viewers.

import (
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// a dotNode labels a gonum graph node with the device name it stands for
type dotNode struct {
	id   int64
	name string
}

// ID returns the graph identifier of the node.
func (dn dotNode) ID() int64 {
	return dn.id
}

// DOTID returns the device name, used as the DOT vertex identifier.
func (dn dotNode) DOTID() string {
	return dn.name
}

// ExportDOT renders the frame as an undirected Graphviz graph whose
// vertex identifiers are device names. Links from a device to itself
// and links naming devices the frame does not record are skipped, as
// neither can be drawn.
func (tf *TopoFrame) ExportDOT() ([]byte, error) {
	dg := simple.NewUndirectedGraph()
	dnByName := make(map[string]dotNode)

	addNode := func(name string) {
		dn := dotNode{id: int64(len(dnByName)), name: name}
		dnByName[name] = dn
		dg.AddNode(dn)
	}

	for _, sf := range tf.Switches {
		addNode(sf.Name)
	}
	for _, hf := range tf.Hosts {
		addNode(hf.Name)
	}

	for _, lf := range tf.Links {
		a, aPresent := dnByName[lf.A.DevName()]
		b, bPresent := dnByName[lf.B.DevName()]
		if !aPresent || !bPresent || a.id == b.id {
			continue
		}
		dg.SetEdge(simple.Edge{F: a, T: b})
	}

	return dot.Marshal(dg, tf.Name, "", "  ")
}
