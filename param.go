package jsontopo

// file param.go holds the option set handed to topology factories and
// the parsing of topology specification strings into it.

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Options carries the key=value settings from a topology specification
// string, uninterpreted. Factories decode them into their own
// parameter structs with Decode.
type Options map[string]string

// validate checks decoded parameter structs against their validate tags
var validate = validator.New()

// ParseTopoSpec splits a topology specification string of the form
// "name,key=value,..." into the topology name and its options. Blank
// option fields are skipped; a field without '=' is an error.
func ParseTopoSpec(spec string) (string, Options, error) {
	fields := strings.Split(spec, ",")
	name := strings.TrimSpace(fields[0])
	if len(name) == 0 {
		return "", nil, fmt.Errorf("topology specification %q has no name", spec)
	}

	opts := make(Options)
	for _, field := range fields[1:] {
		if len(strings.TrimSpace(field)) == 0 {
			continue
		}
		key, value, found := strings.Cut(field, "=")
		if !found {
			return "", nil, fmt.Errorf("topology option %q is not of the form key=value", field)
		}
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return name, opts, nil
}

// Decode maps the options into the parameter struct out, converting
// option strings to the field types, and validates the result. Fields
// absent from the options keep the values out already carries, so
// factories preset their defaults before decoding. Options that match
// no field are errors.
func (opts Options) Decode(out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("failed to decode topology options: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid topology options: %w", err)
	}
	return nil
}
