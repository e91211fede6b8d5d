package filter

// ValueKind distinguishes which field of a Value is populated.
type ValueKind int

const (
	ValueInt64 ValueKind = iota
	ValueDouble
	ValueBytes
)

// Value is a column literal captured while walking a conjunction. Int32
// literals are stored in I64 (coerced) since the filter subsystem only
// distinguishes bigint/double/bytes downstream.
type Value struct {
	Kind  ValueKind
	I64   int64
	F64   float64
	Bytes []byte
}

func int64Value(v int64) Value  { return Value{Kind: ValueInt64, I64: v} }
func doubleValue(v float64) Value { return Value{Kind: ValueDouble, F64: v} }
func bytesValue(v []byte) Value { return Value{Kind: ValueBytes, Bytes: v} }
