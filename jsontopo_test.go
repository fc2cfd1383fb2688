package jsontopo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestParseTopoSpec(t *testing.T) {
	tests := []struct {
		spec     string
		wantName string
		wantOpts Options
		wantErr  string
	}{
		{spec: "nsfnet", wantName: "nsfnet", wantOpts: Options{}},
		{spec: "nsfnet,jsonPath=a.json,addHosts=false", wantName: "nsfnet",
			wantOpts: Options{"jsonPath": "a.json", "addHosts": "false"}},
		{spec: "linear, n=4", wantName: "linear", wantOpts: Options{"n": "4"}},
		{spec: "single,,k=2", wantName: "single", wantOpts: Options{"k": "2"}},
		{spec: "a,k=v=w", wantName: "a", wantOpts: Options{"k": "v=w"}},
		{spec: "rand,n", wantErr: "not of the form key=value"},
		{spec: "", wantErr: "has no name"},
		{spec: " ,k=v", wantErr: "has no name"},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			name, opts, err := ParseTopoSpec(tc.spec)
			if len(tc.wantErr) > 0 {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantOpts, opts)
		})
	}
}

func TestOptionsDecode(t *testing.T) {
	type params struct {
		N int     `mapstructure:"n" validate:"gte=1"`
		P float64 `mapstructure:"p"`
	}

	p := params{N: 2, P: 0.5}
	require.NoError(t, Options{"n": "7"}.Decode(&p))
	assert.Equal(t, 7, p.N)
	assert.Equal(t, 0.5, p.P) // untouched fields keep their presets

	err := Options{"n": "0"}.Decode(&params{N: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid topology options")

	err = Options{"q": "1"}.Decode(&params{N: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode topology options")
}

func TestRegisterTopo(t *testing.T) {
	fn := func(opts Options) (Topo, error) { return &SingleTopo{K: 1}, nil }

	RegisterTopo("registertest", fn)
	_, present := LookupTopo("registertest")
	assert.True(t, present)

	assert.Panics(t, func() { RegisterTopo("registertest", fn) })
	assert.Panics(t, func() { RegisterTopo("", fn) })
	assert.Panics(t, func() { RegisterTopo("nilfactory", nil) })
}

func TestLookupTopo(t *testing.T) {
	_, present := LookupTopo("nsfnet")
	assert.True(t, present)

	_, present = LookupTopo("absent")
	assert.False(t, present)
}

func TestTopos(t *testing.T) {
	names := Topos()
	assert.True(t, slices.IsSorted(names))
	assert.Subset(t, names, []string{"linear", "nsfnet", "rand", "single"})
}

func TestTopoFromSpecErrors(t *testing.T) {
	_, err := TopoFromSpec("absent,n=2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no topology registered under name absent")

	_, err = TopoFromSpec("linear,badfield")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not of the form key=value")
}
