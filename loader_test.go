package jsontopo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDev and fakeBuilder record the construction calls a topology
// issues, in order, standing in for the hosting emulator.
type fakeDev struct {
	name    string
	devType string
}

func (fd *fakeDev) DevName() string {
	return fd.name
}

func (fd *fakeDev) DevType() string {
	return fd.devType
}

type fakeBuilder struct {
	switches []string
	hosts    []string
	links    [][2]string
	failOn   string // device name whose creation is rejected
}

func (fb *fakeBuilder) CreateSwitch(name string) (Device, error) {
	if name == fb.failOn {
		return nil, fmt.Errorf("builder rejected %s", name)
	}
	fb.switches = append(fb.switches, name)
	return &fakeDev{name: name, devType: "Switch"}, nil
}

func (fb *fakeBuilder) CreateHost(name string) (Device, error) {
	if name == fb.failOn {
		return nil, fmt.Errorf("builder rejected %s", name)
	}
	fb.hosts = append(fb.hosts, name)
	return &fakeDev{name: name, devType: "Host"}, nil
}

func (fb *fakeBuilder) CreateLink(a, b Device) error {
	fb.links = append(fb.links, [2]string{a.DevName(), b.DevName()})
	return nil
}

// writeGraph stores a document under a temporary directory and returns
// its path.
func writeGraph(t *testing.T, doc string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(fname, []byte(doc), 0644))
	return fname
}

func TestBuildScalarNodes(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["1", "2", "3"], "links": [["1", "2"], ["2", "3"]]}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, true).Build(fb))

	assert.Equal(t, []string{"s1", "s2", "s3"}, fb.switches)
	assert.Equal(t, []string{"h1", "h2", "h3"}, fb.hosts)
	assert.Equal(t, [][2]string{
		{"h1", "s1"}, {"h2", "s2"}, {"h3", "s3"},
		{"s1", "s2"}, {"s2", "s3"},
	}, fb.links)
}

func TestBuildWithoutHosts(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["1", "2", "3"], "links": [["1", "2"], ["2", "3"]]}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, false).Build(fb))

	assert.Equal(t, []string{"s1", "s2", "s3"}, fb.switches)
	assert.Empty(t, fb.hosts)
	assert.Equal(t, [][2]string{{"s1", "s2"}, {"s2", "s3"}}, fb.links)
}

func TestBuildKeyedNodesAndEdges(t *testing.T) {
	fname := writeGraph(t, `{
		"nodes": [{"id": "A"}, {"name": "B"}],
		"links": [{"u": "A", "v": "B"}]
	}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, true).Build(fb))

	assert.Equal(t, []string{"sA", "sB"}, fb.switches)
	assert.Equal(t, []string{"hA", "hB"}, fb.hosts)
	assert.Equal(t, [][2]string{
		{"hA", "sA"}, {"hB", "sB"},
		{"sA", "sB"},
	}, fb.links)
}

// Edges are matched against the raw identity, exactly as written in
// the document, even when cleaning changes the derived device names.
func TestBuildMatchesRawIdentity(t *testing.T) {
	fname := writeGraph(t, `{
		"nodes": ["r-1", "r-2"],
		"links": [["r-1", "r-2"]]
	}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, true).Build(fb))

	assert.Equal(t, []string{"sr1", "sr2"}, fb.switches)
	assert.Equal(t, []string{"hr1", "hr2"}, fb.hosts)
	assert.Equal(t, [][2]string{
		{"hr1", "sr1"}, {"hr2", "sr2"},
		{"sr1", "sr2"},
	}, fb.links)
}

// Identities already carrying a prefix letter are not prefixed again.
func TestBuildPrefixNotStacked(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["s7", "h8"], "links": [["s7", "h8"]]}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, true).Build(fb))

	assert.Equal(t, []string{"s7", "sh8"}, fb.switches)
	assert.Equal(t, []string{"hs7", "h8"}, fb.hosts)
}

func TestBuildUnknownEndpoint(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["X", "Y"], "links": [["X", "Z"]]}`)

	fb := &fakeBuilder{}
	err := CreateTopoLoader(fname, true).Build(fb)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.Contains(t, err.Error(), `"Z"`)
	assert.Contains(t, err.Error(), `"X"`)
}

func TestBuildAliasFallback(t *testing.T) {
	// nodes is present but empty, so the loader must fall through to
	// the routers alias rather than failing validation
	fname := writeGraph(t, `{
		"nodes": [],
		"routers": ["r1", "r2"],
		"links": [],
		"edges": [["r1", "r2"]]
	}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, false).Build(fb))

	assert.Equal(t, []string{"sr1", "sr2"}, fb.switches)
	assert.Equal(t, [][2]string{{"sr1", "sr2"}}, fb.links)
}

func TestBuildValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "no nodes", doc: `{"links": [["1", "2"]]}`, want: ErrNoNodes},
		{name: "empty nodes everywhere", doc: `{"nodes": [], "Vertices": [], "links": [["1", "2"]]}`, want: ErrNoNodes},
		{name: "no links", doc: `{"nodes": ["1"]}`, want: ErrNoLinks},
		{name: "empty links everywhere", doc: `{"nodes": ["1"], "links": [], "Edges": [], "edges": []}`, want: ErrNoLinks},
		{name: "identity cleans to empty", doc: `{"nodes": ["!!"], "links": [["!!", "!!"]]}`, want: ErrEmptyIdent},
		{name: "edge missing endpoint", doc: `{"nodes": ["A"], "links": [{"src": "A"}]}`, want: ErrEdgeEndpoints},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fname := writeGraph(t, tc.doc)
			err := CreateTopoLoader(fname, true).Build(&fakeBuilder{})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuildEdgeShapeError(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["1", "2"], "links": [["1", "2", "3"]]}`)

	err := CreateTopoLoader(fname, true).Build(&fakeBuilder{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEdgeShape)
}

func TestBuildFileErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	err := CreateTopoLoader(missing, true).Build(&fakeBuilder{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeGraph(t, `{"nodes": [`)
	err = CreateTopoLoader(bad, true).Build(&fakeBuilder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed topology document")
}

func TestBuildBuilderErrorPropagates(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["1", "2"], "links": [["1", "2"]]}`)

	fb := &fakeBuilder{failOn: "s2"}
	err := CreateTopoLoader(fname, true).Build(fb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "builder rejected s2")
	// nothing beyond the failing call was issued
	assert.Equal(t, []string{"s1"}, fb.switches)
	assert.Empty(t, fb.hosts)
}

// A repeated raw identity creates a switch per occurrence but keeps a
// single registration, at its first position, holding the last handle.
func TestBuildDuplicateIdentity(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["1", "2", "1"], "links": [["1", "2"]]}`)

	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(fname, true).Build(fb))

	assert.Equal(t, []string{"s1", "s2", "s1"}, fb.switches)
	assert.Equal(t, []string{"h1", "h2"}, fb.hosts)
}

func TestLoaderDefaults(t *testing.T) {
	tl := CreateTopoLoader("", true)
	assert.Equal(t, DefaultTopoPath, tl.Path())
}

// The shipped NSFNET graph builds the full 14-switch backbone.
func TestBuildShippedNSFNET(t *testing.T) {
	fb := &fakeBuilder{}
	require.NoError(t, CreateTopoLoader(DefaultTopoPath, true).Build(fb))

	assert.Len(t, fb.switches, 14)
	assert.Len(t, fb.hosts, 14)
	assert.Len(t, fb.links, 14+21)
	assert.Equal(t, "s1", fb.switches[0])
	assert.Equal(t, "s14", fb.switches[13])
}

func TestHostsEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "true", want: true},
		{value: "false", want: false},
		{value: "FALSE", want: false},
		{value: "False", want: false},
		{value: "0", want: true},
		{value: "no", want: true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, hostsEnabled(tc.value), "hostsEnabled(%q)", tc.value)
	}
}

func TestNsfnetFactory(t *testing.T) {
	fname := writeGraph(t, `{"nodes": ["1", "2"], "links": [["1", "2"]]}`)

	topo, err := TopoFromSpec("nsfnet,jsonPath=" + fname + ",addHosts=FALSE")
	require.NoError(t, err)

	fb := &fakeBuilder{}
	require.NoError(t, topo.Build(fb))
	assert.Equal(t, []string{"s1", "s2"}, fb.switches)
	assert.Empty(t, fb.hosts)

	topo, err = TopoFromSpec("nsfnet,jsonPath=" + fname + ",addHosts=0")
	require.NoError(t, err)

	fb = &fakeBuilder{}
	require.NoError(t, topo.Build(fb))
	assert.Equal(t, []string{"h1", "h2"}, fb.hosts)
}

func TestNsfnetFactoryRejectsUnknownOption(t *testing.T) {
	_, err := TopoFromSpec("nsfnet,bogus=1")
	require.Error(t, err)
}
