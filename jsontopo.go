package jsontopo

// file jsontopo.go holds the interfaces through which topologies are
// built and the registry through which the hosting emulator looks
// topologies up by name.

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// The Device interface lets common code handle the emulated network
// objects (switch, host) a builder creates during topology construction.
type Device interface {
	DevName() string // returns the name given to the device at creation
	DevType() string // returns the kind of device, e.g. "Switch", "Host"
}

// The Builder interface is the construction API a topology drives.
// The hosting emulator supplies an implementation whose devices are
// live emulated objects; TopoFrame supplies one that just records the
// built graph.
type Builder interface {
	CreateSwitch(name string) (Device, error)
	CreateHost(name string) (Device, error)
	CreateLink(a, b Device) error
}

// The Topo interface is implemented by every registered topology.
// Build issues the construction calls for the topology's devices
// against the builder, in a fixed order, and reports the first failure.
type Topo interface {
	Build(bldr Builder) error
}

// A Factory creates a configured topology from the options carried in
// a topology specification string.
type Factory func(opts Options) (Topo, error)

var topoMu sync.RWMutex
var topoByName = make(map[string]Factory)

// RegisterTopo makes a topology available to LookupTopo and
// TopoFromSpec under the given name. It panics if the name is empty,
// the factory is nil, or the name is already taken, as registration
// collisions are programming errors.
func RegisterTopo(name string, fn Factory) {
	topoMu.Lock()
	defer topoMu.Unlock()
	if len(name) == 0 || fn == nil {
		panic("jsontopo: RegisterTopo called with empty name or nil factory")
	}
	if _, present := topoByName[name]; present {
		panic(fmt.Sprintf("jsontopo: topology %s registered twice", name))
	}
	topoByName[name] = fn
}

// LookupTopo returns the factory registered under name, and a flag
// reporting whether one was found.
func LookupTopo(name string) (Factory, bool) {
	topoMu.RLock()
	defer topoMu.RUnlock()
	fn, present := topoByName[name]
	return fn, present
}

// Topos returns the sorted names of all registered topologies.
func Topos() []string {
	topoMu.RLock()
	defer topoMu.RUnlock()
	names := make([]string, 0, len(topoByName))
	for name := range topoByName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TopoFromSpec resolves a topology specification string of the form
// "name,key=value,..." into a configured topology, ready to build.
func TopoFromSpec(spec string) (Topo, error) {
	name, opts, err := ParseTopoSpec(spec)
	if err != nil {
		return nil, err
	}
	fn, present := LookupTopo(name)
	if !present {
		return nil, fmt.Errorf("no topology registered under name %s", name)
	}
	return fn(opts)
}
