package types

import "github.com/cockroachdb/errors"

// RowType is an ordered (name, Type) schema. It is the concrete vehicle by
// which RelConverter threads schemas top-down from a Read's base schema
// through Filter/Project/Aggregate/Join.
type RowType struct {
	names []string
	types []Type
}

// NewRowType builds a RowType from parallel name/type slices. The slices
// must have equal length; mismatches are a programmer error in the caller,
// not a recoverable input error, so this panics rather than returning one.
func NewRowType(names []string, types []Type) *RowType {
	if len(names) != len(types) {
		panic(errors.AssertionFailedf("row type name/type length mismatch: %d vs %d", len(names), len(types)))
	}
	return &RowType{names: names, types: types}
}

// Size returns the number of columns.
func (r *RowType) Size() int { return len(r.names) }

// NameAt returns the column name at the given ordinal.
func (r *RowType) NameAt(i int) string { return r.names[i] }

// TypeAt returns the column type at the given ordinal.
func (r *RowType) TypeAt(i int) Type { return r.types[i] }

// KindAt is a convenience accessor combining TypeAt and Type.Kind, used
// pervasively by the filter subsystem when it needs a column's Kind but not
// its full Type.
func (r *RowType) KindAt(i int) Kind {
	if i < 0 || i >= len(r.types) || r.types[i] == nil {
		return KindUnknown
	}
	return r.types[i].Kind()
}

// Names returns the column names, in order. Callers must not mutate the
// returned slice.
func (r *RowType) Names() []string { return r.names }

// Types returns the column types, in order. Callers must not mutate the
// returned slice.
func (r *RowType) Types() []Type { return r.types }

// Concat returns a new RowType formed by left's columns followed by
// right's, used to build the output schema of a HashJoin.
func Concat(left, right *RowType) *RowType {
	names := make([]string, 0, left.Size()+right.Size())
	tys := make([]Type, 0, cap(names))
	names = append(names, left.names...)
	names = append(names, right.names...)
	tys = append(tys, left.types...)
	tys = append(tys, right.types...)
	return &RowType{names: names, types: tys}
}
