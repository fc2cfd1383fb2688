package jsontopo

// file gen.go holds parametric topologies registered alongside the
// file-driven nsfnet loader: fixed shapes for quick experiments and a
// randomized mesh.

import (
	"fmt"

	"github.com/iti/rngstream"
)

func init() {
	RegisterTopo("single", func(opts Options) (Topo, error) {
		params := singleParams{K: 2}
		if err := opts.Decode(&params); err != nil {
			return nil, err
		}
		return &SingleTopo{K: params.K}, nil
	})

	RegisterTopo("linear", func(opts Options) (Topo, error) {
		params := linearParams{N: 2}
		if err := opts.Decode(&params); err != nil {
			return nil, err
		}
		return &LinearTopo{N: params.N}, nil
	})

	RegisterTopo("rand", func(opts Options) (Topo, error) {
		params := randParams{N: 4, P: 0.1, Stream: "randtopo"}
		if err := opts.Decode(&params); err != nil {
			return nil, err
		}
		return &RandTopo{N: params.N, P: params.P, Stream: params.Stream,
			AddHosts: hostsEnabled(params.AddHosts)}, nil
	})
}

type singleParams struct {
	K int `mapstructure:"k" validate:"gte=1"`
}

// A SingleTopo is one switch with K hosts attached to it.
type SingleTopo struct {
	K int
}

// Build creates the switch, then its hosts in index order.
func (st *SingleTopo) Build(bldr Builder) error {
	sw, err := bldr.CreateSwitch("s1")
	if err != nil {
		return err
	}
	for idx := 1; idx <= st.K; idx += 1 {
		host, err := bldr.CreateHost(fmt.Sprintf("h%d", idx))
		if err != nil {
			return err
		}
		if err := bldr.CreateLink(host, sw); err != nil {
			return err
		}
	}
	return nil
}

type linearParams struct {
	N int `mapstructure:"n" validate:"gte=1"`
}

// A LinearTopo is a chain of N switches, each with one host attached.
type LinearTopo struct {
	N int
}

// Build creates switch and host pairs in index order, linking each
// switch to its predecessor in the chain.
func (lt *LinearTopo) Build(bldr Builder) error {
	switches := make([]Device, lt.N)
	for idx := 1; idx <= lt.N; idx += 1 {
		sw, err := bldr.CreateSwitch(fmt.Sprintf("s%d", idx))
		if err != nil {
			return err
		}
		switches[idx-1] = sw

		host, err := bldr.CreateHost(fmt.Sprintf("h%d", idx))
		if err != nil {
			return err
		}
		if err := bldr.CreateLink(host, sw); err != nil {
			return err
		}
		if idx > 1 {
			if err := bldr.CreateLink(switches[idx-2], sw); err != nil {
				return err
			}
		}
	}
	return nil
}

type randParams struct {
	N        int     `mapstructure:"n" validate:"gte=2"`
	P        float64 `mapstructure:"p" validate:"gte=0,lte=1"`
	Stream   string  `mapstructure:"stream"`
	AddHosts string  `mapstructure:"addHosts"`
}

// A RandTopo is N switches joined in a chain, with every switch pair
// not on the chain linked with probability P. Link draws come from a
// dedicated rngstream stream named by Stream.
type RandTopo struct {
	N        int
	P        float64
	Stream   string
	AddHosts bool
}

// Build creates the switches, their hosts when enabled, the chain
// links, and then the extra randomized links in pair order.
func (rt *RandTopo) Build(bldr Builder) error {
	rng := rngstream.New(rt.Stream)

	switches := make([]Device, rt.N)
	for idx := 1; idx <= rt.N; idx += 1 {
		sw, err := bldr.CreateSwitch(fmt.Sprintf("s%d", idx))
		if err != nil {
			return err
		}
		switches[idx-1] = sw
	}

	if rt.AddHosts {
		for idx := 1; idx <= rt.N; idx += 1 {
			host, err := bldr.CreateHost(fmt.Sprintf("h%d", idx))
			if err != nil {
				return err
			}
			if err := bldr.CreateLink(host, switches[idx-1]); err != nil {
				return err
			}
		}
	}

	for i := 0; i < rt.N; i += 1 {
		for j := i + 1; j < rt.N; j += 1 {
			if j != i+1 && rng.RandU01() >= rt.P {
				continue
			}
			if err := bldr.CreateLink(switches[i], switches[j]); err != nil {
				return err
			}
		}
	}
	return nil
}
