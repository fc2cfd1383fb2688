package jsontopo

// file graph.go holds the schema layer for raw topology documents:
// the top-level collection aliases and the node and edge entry forms
// the loader accepts, each resolved into a tagged union when the
// document is decoded.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection aliases, tried in order. The first alias whose value is a
// non-empty array is used; an absent key, a null, or an empty array
// falls through to the next alias.
var nodeAliases = []string{"nodes", "Vertices", "routers"}
var linkAliases = []string{"links", "Edges", "edges"}

// Errors reported while normalizing a raw topology document.
var (
	ErrNoNodes       = errors.New("no nodes found")
	ErrNoLinks       = errors.New("no links found")
	ErrEdgeShape     = errors.New("edge must be [u,v] or {src,dst}")
	ErrEdgeEndpoints = errors.New("edge missing endpoints")
)

// Graph is a topology document as read from file, keyed by its
// top-level collections. Keys other than the recognized aliases are
// retained but never interpreted.
type Graph map[string]json.RawMessage

// ParseGraph unmarshals the bytes of a topology document.
func ParseGraph(data []byte) (Graph, error) {
	g := make(Graph)
	err := json.Unmarshal(data, &g)
	if err != nil {
		return nil, fmt.Errorf("malformed topology document: %w", err)
	}
	return g, nil
}

// resolveAlias returns the entries under the first alias whose value
// decodes to a non-empty array. A present value that does not decode
// is reported immediately rather than skipped. The flag reports
// whether any alias resolved.
func resolveAlias[E any](g Graph, aliases []string) ([]E, bool, error) {
	for _, key := range aliases {
		raw, present := g[key]
		if !present {
			continue
		}
		var entries []E
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, false, fmt.Errorf("collection %s: %w", key, err)
		}
		if len(entries) == 0 {
			continue
		}
		return entries, true, nil
	}
	return nil, false, nil
}

// Nodes resolves the node collection through its aliases. If every
// alias is absent or empty the document has no usable nodes.
func (g Graph) Nodes() ([]NodeSpec, error) {
	nodes, found, err := resolveAlias[NodeSpec](g, nodeAliases)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoNodes
	}
	return nodes, nil
}

// Links resolves the edge collection through its aliases.
func (g Graph) Links() ([]EdgeSpec, error) {
	links, found, err := resolveAlias[EdgeSpec](g, linkAliases)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoLinks
	}
	return links, nil
}

// A scalarText holds the literal text of one JSON value along with how
// it was given. Strings keep their content, numbers and booleans their
// token text, null the token "null", and composite values their
// compact encoding.
type scalarText struct {
	text    string
	present bool
	null    bool
}

// UnmarshalJSON captures the value's literal text. Any valid JSON
// value has a text rendering usable as an identity, so decoding a
// scalar never fails.
func (st *scalarText) UnmarshalJSON(data []byte) error {
	st.present = true
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty JSON value")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		st.text = s
	case data[0] == 'n':
		st.null = true
		st.text = "null"
	case data[0] == '{' || data[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		st.text = buf.String()
	default:
		st.text = string(data)
	}
	return nil
}

// A NodeSpec is one entry of the node collection. Exactly one of its
// two forms is set, fixed when the document is decoded.
type NodeSpec struct {
	Scalar scalarText // bare scalar entry
	Keyed  *KeyedNode // object entry
}

// A KeyedNode is the object form of a node entry, identified by its
// first present field among id, name, and node.
type KeyedNode struct {
	ID   scalarText `json:"id"`
	Name scalarText `json:"name"`
	Node scalarText `json:"node"`

	raw string // compact text of the whole entry, the fallback identity
}

// UnmarshalJSON fixes the form of the entry: an object decodes into
// the keyed form, anything else is kept as scalar text.
func (ns *NodeSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		kn := new(KeyedNode)
		if err := json.Unmarshal(data, kn); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		kn.raw = buf.String()
		ns.Keyed = kn
		return nil
	}
	return ns.Scalar.UnmarshalJSON(data)
}

// Identity returns the raw identity of the entry: the scalar text, or
// for the keyed form the value of the first present field among id,
// name, and node, else the compact text of the whole entry.
func (ns NodeSpec) Identity() string {
	if ns.Keyed == nil {
		return ns.Scalar.text
	}
	kn := ns.Keyed
	switch {
	case kn.ID.present:
		return kn.ID.text
	case kn.Name.present:
		return kn.Name.text
	case kn.Node.present:
		return kn.Node.text
	}
	return kn.raw
}

// An EdgeSpec is one entry of the edge collection. Exactly one of its
// two forms is set, fixed when the document is decoded.
type EdgeSpec struct {
	Pair  []scalarText // two-element array entry
	Keyed *KeyedEdge   // object entry
}

// A KeyedEdge is the object form of an edge entry. The first endpoint
// is src, falling back to u when src is absent; the second is dst,
// falling back to v. A present null does not fall back.
type KeyedEdge struct {
	Src scalarText `json:"src"`
	Dst scalarText `json:"dst"`
	U   scalarText `json:"u"`
	V   scalarText `json:"v"`

	raw string // compact text of the whole entry, used in error reports
}

// UnmarshalJSON fixes the form of the entry. An array must have
// exactly two elements; a bare scalar is not an edge.
func (es *EdgeSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrEdgeShape
	}
	switch data[0] {
	case '{':
		ke := new(KeyedEdge)
		if err := json.Unmarshal(data, ke); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		ke.raw = buf.String()
		es.Keyed = ke
		return nil
	case '[':
		var pair []scalarText
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("%w: %s", ErrEdgeShape, string(data))
		}
		es.Pair = pair
		return nil
	}
	return fmt.Errorf("%w: %s", ErrEdgeShape, string(data))
}

// Endpoints returns the two raw endpoint identities of the edge.
func (es EdgeSpec) Endpoints() (string, string, error) {
	if es.Keyed != nil {
		return es.Keyed.endpoints()
	}
	if len(es.Pair) == 2 {
		return es.Pair[0].text, es.Pair[1].text, nil
	}
	return "", "", ErrEdgeShape
}

func (ke *KeyedEdge) endpoints() (string, string, error) {
	u := ke.Src
	if !u.present {
		u = ke.U
	}
	v := ke.Dst
	if !v.present {
		v = ke.V
	}
	if !u.present || u.null || !v.present || v.null {
		return "", "", fmt.Errorf("%w: %s", ErrEdgeEndpoints, ke.raw)
	}
	return u.text, v.text, nil
}
