// Package types holds the engine-side type model that this converter
// threads through plan nodes. Resolving a Substrait type token to a
// concrete Type is the job of the external TypeMapper collaborator (the
// type parser and function-signature registry are explicitly out of scope
// for this module, per the surrounding spec); this package only defines the
// narrow surface RelConverter and the filter subsystem need from a Type.
package types

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"
)

// Kind is the reduced set of scalar kinds the filter subsystem cares about.
// Only int32, int64, double and bytes are supported for subfield filter
// synthesis; every other Kind is Unsupported there.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt32
	KindInt64
	KindDouble
	KindBytes
	KindBoolean
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindDouble:
		return "double"
	case KindBytes:
		return "bytes"
	case KindBoolean:
		return "boolean"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Type is the engine-typed result of mapping a Substrait type token. The
// concrete implementation lives with the caller's TypeMapper; this
// interface is the only contract the converter and filter packages rely on.
type Type interface {
	Kind() Kind
	String() string
}

// TypeMapper resolves a Substrait type token to an engine Type. It is an
// external collaborator: this module only depends on the interface.
type TypeMapper interface {
	Map(t *pb.Type) (Type, error)
}

// Basic is a minimal Type implementation sufficient for the filter
// subsystem and for tests; production callers typically inject a richer
// TypeMapper backed by the engine's real type registry.
type Basic struct {
	kind Kind
	name string
}

// NewBasic returns a Basic type of the given kind, named for diagnostics.
func NewBasic(kind Kind, name string) *Basic {
	return &Basic{kind: kind, name: name}
}

func (b *Basic) Kind() Kind    { return b.kind }
func (b *Basic) String() string { return b.name }
