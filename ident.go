package jsontopo

// file ident.go holds the identity cleaning and device naming rules
// applied to node identities read from a graph file.

import (
	"strings"
	"unicode"
)

const switchPrefix = "s"
const hostPrefix = "h"

// CleanIdent reduces a raw node identity to the characters usable in
// a device name, keeping letters, digits, and underscore and dropping
// everything else. Cleaning an already clean identity is a no-op.
func CleanIdent(raw string) string {
	var cleaned strings.Builder
	cleaned.Grow(len(raw))
	for _, r := range raw {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			cleaned.WriteRune(r)
		}
	}
	return cleaned.String()
}

// SwitchName derives a switch name from a cleaned identity, prepending
// the switch prefix unless the identity already starts with it.
func SwitchName(cleaned string) string {
	if strings.HasPrefix(cleaned, switchPrefix) {
		return cleaned
	}
	return switchPrefix + cleaned
}

// HostName derives a host name from a cleaned identity, prepending the
// host prefix unless the identity already starts with it.
func HostName(cleaned string) string {
	if strings.HasPrefix(cleaned, hostPrefix) {
		return cleaned
	}
	return hostPrefix + cleaned
}
