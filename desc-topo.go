package jsontopo

// file desc-topo.go holds structs, methods, and data structures
// supporting the construction of and access to recorded topology
// descriptions: the frame built through the Builder API during
// construction and the flat form written to description files.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// To serialize and deserialize the structures describing a built
// topology we keep them fully instantiated, without pointers, while
// construction of linked structures is easier with pointers. There
// are therefore two representations: the 'Frame' forms hold pointers
// and are built incrementally through the Builder calls, and each
// transforms into a pointer-free 'Desc' form for serialization.

// A SwitchFrame holds a pre-serialization representation of a switch.
type SwitchFrame struct {
	Name string // unique string identifier used to reference the switch
}

// DevName returns the name of the switch.
func (sf *SwitchFrame) DevName() string {
	return sf.Name
}

// DevType identifies the frame as a switch.
func (sf *SwitchFrame) DevType() string {
	return "Switch"
}

// A HostFrame holds a pre-serialization representation of a host.
type HostFrame struct {
	Name string // unique string identifier used to reference the host
}

// DevName returns the name of the host.
func (hf *HostFrame) DevName() string {
	return hf.Name
}

// DevType identifies the frame as a host.
func (hf *HostFrame) DevType() string {
	return "Host"
}

// A LinkFrame joins two devices recorded in the same frame.
type LinkFrame struct {
	A Device
	B Device
}

// A TopoFrame records a topology as it is built: every switch, host,
// and link a Topo creates through the Builder interface, with device
// names unique across the frame. It is the reference Builder used
// when the consumer of the topology is a description file rather than
// a live emulation.
type TopoFrame struct {
	Name     string
	Switches []*SwitchFrame
	Hosts    []*HostFrame
	Links    []*LinkFrame

	devByName map[string]Device
}

// CreateTopoFrame is an initialization constructor.
// Its output struct records the devices a topology build creates.
func CreateTopoFrame(name string) *TopoFrame {
	tf := new(TopoFrame)
	tf.Name = name

	tf.Switches = make([]*SwitchFrame, 0)
	tf.Hosts = make([]*HostFrame, 0)
	tf.Links = make([]*LinkFrame, 0)
	tf.devByName = make(map[string]Device)

	return tf
}

// register claims a device name in the frame.
func (tf *TopoFrame) register(dev Device) error {
	name := dev.DevName()
	if len(name) == 0 {
		return fmt.Errorf("attempt to add unnamed device to topology %s", tf.Name)
	}
	if _, present := tf.devByName[name]; present {
		return fmt.Errorf("attempt to re-add device %s to topology %s", name, tf.Name)
	}
	tf.devByName[name] = dev
	return nil
}

// CreateSwitch records a new switch under the given name.
func (tf *TopoFrame) CreateSwitch(name string) (Device, error) {
	sf := &SwitchFrame{Name: name}
	if err := tf.register(sf); err != nil {
		return nil, err
	}
	tf.Switches = append(tf.Switches, sf)
	return sf, nil
}

// CreateHost records a new host under the given name.
func (tf *TopoFrame) CreateHost(name string) (Device, error) {
	hf := &HostFrame{Name: name}
	if err := tf.register(hf); err != nil {
		return nil, err
	}
	tf.Hosts = append(tf.Hosts, hf)
	return hf, nil
}

// CreateLink records a link between two devices already present in
// the frame. Parallel links are permitted; links to devices the frame
// has not created are not.
func (tf *TopoFrame) CreateLink(a, b Device) error {
	aErr := tf.attached(a)
	bErr := tf.attached(b)
	if rtnerr := ReportErrs([]error{aErr, bErr}); rtnerr != nil {
		return rtnerr
	}
	tf.Links = append(tf.Links, &LinkFrame{A: a, B: b})
	return nil
}

// attached checks that dev is the device the frame records under its name.
func (tf *TopoFrame) attached(dev Device) error {
	if dev == nil {
		return fmt.Errorf("link endpoint in topology %s is nil", tf.Name)
	}
	stored, present := tf.devByName[dev.DevName()]
	if !present || stored != dev {
		return fmt.Errorf("device %s not part of topology %s", dev.DevName(), tf.Name)
	}
	return nil
}

// DevByName looks up a recorded device, with a flag reporting whether
// the name is known to the frame.
func (tf *TopoFrame) DevByName(name string) (Device, bool) {
	dev, present := tf.devByName[name]
	return dev, present
}

// NumDevs returns the number of devices recorded in the frame.
func (tf *TopoFrame) NumDevs() int {
	return len(tf.devByName)
}

// A SwitchDesc defines the serializable representation of a switch.
type SwitchDesc struct {
	Name string `json:"name" yaml:"name"`
}

// A HostDesc defines the serializable representation of a host.
type HostDesc struct {
	Name string `json:"name" yaml:"name"`
}

// A LinkDesc defines the serializable representation of a link,
// naming its two endpoint devices.
type LinkDesc struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

type SwitchDescSlice []SwitchDesc
type HostDescSlice []HostDesc
type LinkDescSlice []LinkDesc

// A TopoDesc contains all of the switches, hosts, and links of a
// built topology, as they are written to a description file.
type TopoDesc struct {
	Name     string          `json:"name" yaml:"name"`
	Switches SwitchDescSlice `json:"switches" yaml:"switches"`
	Hosts    HostDescSlice   `json:"hosts" yaml:"hosts"`
	Links    LinkDescSlice   `json:"links" yaml:"links"`
}

// Transform returns a serializable TopoDesc, transformed from the
// frame, with devices and links in creation order.
func (tf *TopoFrame) Transform() TopoDesc {
	td := new(TopoDesc)
	td.Name = tf.Name

	td.Switches = make(SwitchDescSlice, len(tf.Switches))
	for idx := 0; idx < len(tf.Switches); idx += 1 {
		td.Switches[idx] = SwitchDesc{Name: tf.Switches[idx].Name}
	}

	td.Hosts = make(HostDescSlice, len(tf.Hosts))
	for idx := 0; idx < len(tf.Hosts); idx += 1 {
		td.Hosts[idx] = HostDesc{Name: tf.Hosts[idx].Name}
	}

	td.Links = make(LinkDescSlice, len(tf.Links))
	for idx := 0; idx < len(tf.Links); idx += 1 {
		td.Links[idx] = LinkDesc{
			A: tf.Links[idx].A.DevName(),
			B: tf.Links[idx].B.DevName(),
		}
	}

	return *td
}

// marshalByExt serializes a description struct, selecting json or
// yaml encoding from the extension of the target file name. Names
// with no recognized extension get yaml.
func marshalByExt(v any, filename string) ([]byte, error) {
	pathExt := path.Ext(filename)
	if pathExt == ".json" || pathExt == ".JSON" {
		return json.MarshalIndent(v, "", "\t")
	}
	return yaml.Marshal(v)
}

// WriteToFile stores the TopoDesc struct to the file whose name is
// given. Serialization to json or to yaml is selected based on the
// extension of this name.
func (td *TopoDesc) WriteToFile(filename string) error {
	bytes, merr := marshalByExt(*td, filename)
	if merr != nil {
		panic(merr)
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		panic(cerr)
	}
	_, werr := f.WriteString(string(bytes[:]))
	if werr != nil {
		panic(werr)
	}
	err := f.Close()
	if err != nil {
		panic(err)
	}

	return werr
}

// ReadTopoDesc deserializes a byte slice holding a representation of
// a TopoDesc struct. If the input argument of dict (those bytes) is
// empty, the file whose name is given is read to acquire them. A
// deserialized representation is returned, or an error if one is
// generated from a file read or the deserialization.
func ReadTopoDesc(filename string, useYAML bool, dict []byte) (*TopoDesc, error) {
	var err error

	// if the dict slice of bytes is empty we get them from the file
	// whose name is an argument
	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := TopoDesc{}

	if useYAML {
		err = yaml.Unmarshal(dict, &example)
	} else {
		err = json.Unmarshal(dict, &example)
	}

	if err != nil {
		return nil, err
	}

	return &example, nil
}

// A TopoDescDict holds a map (Descs) of topology descriptions keyed
// by their names, so that a suite of prepared topologies can travel
// in one file.
type TopoDescDict struct {
	// DictName is an identifier for this collection of descriptions
	DictName string `json:"dictname" yaml:"dictname"`

	Descs map[string]TopoDesc `json:"descs" yaml:"descs"`
}

// CreateTopoDescDict is an initialization constructor.
// Its output struct has methods for integrating descriptions.
func CreateTopoDescDict(name string) *TopoDescDict {
	tdd := new(TopoDescDict)
	tdd.DictName = name
	tdd.Descs = make(map[string]TopoDesc)

	return tdd
}

// AddTopoDesc includes a description in the dictionary, optionally
// overwriting an entry with the same name.
func (tdd *TopoDescDict) AddTopoDesc(td *TopoDesc, overwrite bool) error {
	if _, present := tdd.Descs[td.Name]; present && !overwrite {
		return fmt.Errorf("attempt to overwrite topology description %s", td.Name)
	}
	tdd.Descs[td.Name] = *td
	return nil
}

// RecoverTopoDesc returns the named description, with a flag
// reporting whether it was found in the dictionary.
func (tdd *TopoDescDict) RecoverTopoDesc(name string) (*TopoDesc, bool) {
	td, present := tdd.Descs[name]
	if !present {
		return nil, false
	}

	return &td, true
}

// WriteToFile stores the TopoDescDict struct to the file whose name
// is given. Serialization to json or to yaml is selected based on the
// extension of this name.
func (tdd *TopoDescDict) WriteToFile(filename string) error {
	bytes, merr := marshalByExt(*tdd, filename)
	if merr != nil {
		panic(merr)
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		panic(cerr)
	}
	_, werr := f.WriteString(string(bytes[:]))
	if werr != nil {
		panic(werr)
	}
	err := f.Close()
	if err != nil {
		panic(err)
	}

	return werr
}

// ReadTopoDescDict deserializes a byte slice holding a representation
// of a TopoDescDict struct. If the dict argument is empty, the file
// whose name is given is read to acquire the bytes.
func ReadTopoDescDict(filename string, useYAML bool, dict []byte) (*TopoDescDict, error) {
	var err error

	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	example := TopoDescDict{}

	if useYAML {
		err = yaml.Unmarshal(dict, &example)
	} else {
		err = json.Unmarshal(dict, &example)
	}

	if err != nil {
		return nil, err
	}

	return &example, nil
}

// ReportErrs transforms a list of errors and transforms the non-nil
// ones into a single error with comma-separated report of all the
// constituent errors, and returns it.
func ReportErrs(errs []error) error {
	errMsg := make([]string, 0)
	for _, err := range errs {
		if err != nil {
			errMsg = append(errMsg, err.Error())
		}
	}
	if len(errMsg) == 0 {
		return nil
	}

	return errors.New(strings.Join(errMsg, ","))
}

// CheckReadableFiles probes the file system to ensure that every one
// of the argument filenames exists and is readable.
func CheckReadableFiles(names []string) (bool, error) {
	return CheckFiles(names, true)
}

// CheckOutputFiles probes the file system to ensure that every
// argument filename can be written.
func CheckOutputFiles(names []string) (bool, error) {
	return CheckFiles(names, false)
}

// CheckFiles probes the file system for permitted access to all the
// argument filenames, optionally checking also for the existence of
// those files for the purposes of reading them.
func CheckFiles(names []string, checkExistence bool) (bool, error) {
	errs := make([]error, 0)

	// the directory of each named file must exist
	for _, name := range names {
		if len(name) == 0 {
			continue
		}

		directory, _ := filepath.Split(name)
		if len(directory) == 0 {
			continue
		}
		if _, err := os.Stat(directory); err != nil {
			errs = append(errs, err)
		}
	}

	// if required, check for the reachability and existence of each file
	if checkExistence {
		for _, name := range names {
			if _, err := os.Stat(name); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) == 0 {
		return true, nil
	}

	rtnerr := ReportErrs(errs)
	return false, rtnerr
}
