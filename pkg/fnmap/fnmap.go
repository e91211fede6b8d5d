// Package fnmap builds and queries the per-Plan function-anchor registry.
// A Map is populated once from a Plan's extension list and is read-only
// thereafter; it is shared, unmodified, between RelConverter and the
// filter subsystem's predicate classification.
package fnmap

import (
	"strings"

	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb/extensions"

	"github.com/Deegue/velox-intel/pkg/xerrors"
)

// Map is an immutable anchor -> function-spec-string registry. Spec
// strings are colon-delimited "name:type,type,...".
type Map struct {
	byAnchor map[uint32]string
}

// Build populates a Map from a Plan's extension declarations, keeping only
// the extension_function entries; extension_type and
// extension_type_variation declarations are irrelevant to this module's
// scope and are skipped.
func Build(extensions []*pb.SimpleExtensionDeclaration) *Map {
	m := &Map{byAnchor: make(map[uint32]string, len(extensions))}
	for _, decl := range extensions {
		fn := decl.GetExtensionFunction()
		if fn == nil {
			continue
		}
		m.byAnchor[fn.GetFunctionAnchor()] = fn.GetName()
	}
	return m
}

// Spec returns the full "name:type,type,..." spec string registered for
// anchor.
func (m *Map) Spec(anchor uint32) (string, error) {
	s, ok := m.byAnchor[anchor]
	if !ok {
		return "", xerrors.InvalidInputf("unknown function anchor %d", anchor)
	}
	return s, nil
}

// ShortName returns the function name prefix of the spec string registered
// for anchor (the portion before the first ':').
func (m *Map) ShortName(anchor uint32) (string, error) {
	s, err := m.Spec(anchor)
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], nil
	}
	return s, nil
}

// ArgTypes returns the comma-separated type-signature suffix of the spec
// string registered for anchor, split into individual tokens (e.g. "i32",
// "i64", "fp64"). Returns nil if the spec carries no ':'-delimited suffix.
func (m *Map) ArgTypes(anchor uint32) ([]string, error) {
	s, err := m.Spec(anchor)
	if err != nil {
		return nil, err
	}
	i := strings.IndexByte(s, ':')
	if i < 0 || i+1 >= len(s) {
		return nil, nil
	}
	return strings.Split(s[i+1:], ","), nil
}
