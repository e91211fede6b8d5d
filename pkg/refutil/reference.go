// Package refutil resolves a Substrait field reference to a flat column
// ordinal. Only the direct-reference/struct-field shape is supported,
// which is the only shape RelConverter and the filter subsystem ever
// produce or consume.
package refutil

import pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

// ColumnIndex resolves fr to a column ordinal. ok is false if fr is not a
// direct struct-field reference (e.g. a masked or list-element reference),
// which callers must treat as "not a plain field selection".
func ColumnIndex(fr *pb.Expression_FieldReference) (int, bool) {
	if fr == nil {
		return 0, false
	}
	direct := fr.GetDirectReference()
	if direct == nil {
		return 0, false
	}
	sf := direct.GetStructField()
	if sf == nil {
		return 0, false
	}
	return int(sf.GetField()), true
}
