package filter

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/fnmap"
	"github.com/Deegue/velox-intel/pkg/types"
	"github.com/cockroachdb/errors"

	"github.com/Deegue/velox-intel/pkg/xerrors"
)

// BuildSubfieldFilters absorbs every predicate in subfield into per-column
// FilterInfo accumulators, then materializes each into a TypedFilter using
// colKind to resolve each column's engine Kind.
func BuildSubfieldFilters(subfield []*pb.Expression, fnMap *fnmap.Map, colKind func(int) types.Kind) (map[int]TypedFilter, error) {
	cols := map[int]*FilterInfo{}
	ensure := func(idx int) *FilterInfo {
		fi, ok := cols[idx]
		if !ok {
			fi = NewFilterInfo()
			cols[idx] = fi
		}
		return fi
	}

	for _, e := range subfield {
		sf := e.GetScalarFunction()
		if sf == nil {
			return nil, xerrors.InvalidInputf("subfield predicate is not a scalar function")
		}
		name, err := fnMap.ShortName(sf.GetFunctionReference())
		if err != nil {
			return nil, err
		}
		if err := applyTop(cols, ensure, sf, name, fnMap); err != nil {
			return nil, err
		}
	}

	return Synthesize(cols, colKind)
}

func applyTop(cols map[int]*FilterInfo, ensure func(int) *FilterInfo, sf *pb.Expression_ScalarFunction, name string, fnMap *fnmap.Map) error {
	switch name {
	case "is_not_null":
		col, ok := fieldOrWithLiteral(sf)
		if !ok {
			return errors.AssertionFailedf("is_not_null missing field argument")
		}
		ensure(col).ForbidNull()

	case "gte", "gt", "lte", "lt", "equal":
		col, ok := fieldOrWithLiteral(sf)
		if !ok {
			return errors.AssertionFailedf("%s missing field argument", name)
		}
		lit, ok := literalArg(sf)
		if !ok {
			return xerrors.InvalidInputf("%s missing literal argument", name)
		}
		v, err := literalValue(lit)
		if err != nil {
			return err
		}
		applyComparison(ensure(col), name, v, false)

	case "in":
		args := sf.GetArguments()
		col, ok := fieldOrWithLiteral(sf)
		if !ok {
			return errors.AssertionFailedf("in missing field argument")
		}
		fi := ensure(col)
		for _, a := range args {
			lit := a.GetValue().GetLiteral()
			if lit == nil {
				continue
			}
			v, err := literalValue(lit)
			if err != nil {
				return err
			}
			fi.AppendValue(v)
		}

	case "not":
		child := sf.GetArguments()[0].GetValue().GetScalarFunction()
		cname, err := fnMap.ShortName(child.GetFunctionReference())
		if err != nil {
			return err
		}
		return applyReversed(ensure, child, cname)

	case "or":
		for _, a := range sf.GetArguments() {
			child := a.GetValue().GetScalarFunction()
			cname, err := fnMap.ShortName(child.GetFunctionReference())
			if err != nil {
				return err
			}
			col, ok := fieldOrWithLiteral(child)
			if !ok {
				return errors.AssertionFailedf("or child missing field argument")
			}
			ensure(col).newPosition()
			if err := applyTop(cols, ensure, child, cname, fnMap); err != nil {
				return err
			}
		}

	default:
		return errors.AssertionFailedf("unexpected pushable predicate %q reached synthesis", name)
	}
	return nil
}

func applyReversed(ensure func(int) *FilterInfo, sf *pb.Expression_ScalarFunction, name string) error {
	col, ok := fieldOrWithLiteral(sf)
	if !ok {
		return errors.AssertionFailedf("not(%s) missing field argument", name)
	}
	lit, ok := literalArg(sf)
	if !ok {
		return xerrors.InvalidInputf("not(%s) missing literal argument", name)
	}
	v, err := literalValue(lit)
	if err != nil {
		return err
	}
	applyComparison(ensure(col), name, v, true)
	return nil
}

// applyComparison applies one of gte/gt/lte/lt/equal to fi, honoring the
// reverse flag that models NOT without constructing a negated AST.
func applyComparison(fi *FilterInfo, name string, v Value, reverse bool) {
	switch name {
	case "gte":
		if !reverse {
			fi.SetLower(v, false)
		} else {
			fi.SetUpper(v, false)
		}
	case "gt":
		if !reverse {
			fi.SetLower(v, true)
		} else {
			fi.SetUpper(v, true)
		}
	case "lte":
		if !reverse {
			fi.SetUpper(v, false)
		} else {
			fi.SetLower(v, false)
		}
	case "lt":
		if !reverse {
			fi.SetUpper(v, true)
		} else {
			fi.SetLower(v, true)
		}
	case "equal":
		if !reverse {
			fi.SetLower(v, false)
			fi.SetUpper(v, false)
		} else {
			fi.SetNotValue(v)
		}
	}
}

func literalArg(sf *pb.Expression_ScalarFunction) (*pb.Expression_Literal, bool) {
	for _, a := range sf.GetArguments() {
		if lit := a.GetValue().GetLiteral(); lit != nil {
			return lit, true
		}
	}
	return nil, false
}

func literalValue(lit *pb.Expression_Literal) (Value, error) {
	switch v := lit.GetLiteralType().(type) {
	case *pb.Expression_Literal_I32:
		return int64Value(int64(v.I32)), nil
	case *pb.Expression_Literal_I64:
		return int64Value(v.I64), nil
	case *pb.Expression_Literal_Fp64:
		return doubleValue(v.Fp64), nil
	case *pb.Expression_Literal_String_:
		return bytesValue([]byte(v.String_)), nil
	case *pb.Expression_Literal_Binary:
		return bytesValue(v.Binary), nil
	default:
		return Value{}, xerrors.Unsupportedf("unsupported literal kind %T", v)
	}
}

// Synthesize materializes every initialized column's FilterInfo into a
// TypedFilter, skipping columns that were never touched.
func Synthesize(cols map[int]*FilterInfo, colKind func(int) types.Kind) (map[int]TypedFilter, error) {
	out := make(map[int]TypedFilter, len(cols))
	for idx, fi := range cols {
		if !fi.Initialized {
			continue
		}
		tf, err := materialize(fi, colKind(idx))
		if err != nil {
			return nil, err
		}
		if tf != nil {
			out[idx] = tf
		}
	}
	return out, nil
}

func materialize(fi *FilterInfo, kind types.Kind) (TypedFilter, error) {
	switch {
	case len(fi.Values) > 0:
		if fi.HasAnyBound() || fi.HasNotValue {
			return nil, errors.AssertionFailedf("IN filter column carries bound or not-value entries")
		}
		return materializeValues(fi, kind)

	case fi.HasNotValue:
		if fi.HasAnyBound() {
			return nil, errors.AssertionFailedf("not-equal filter column carries bound entries")
		}
		return materializeNotValue(fi, kind)

	case !fi.HasAnyBound() && !fi.NullAllowed:
		return IsNotNull{}, nil

	default:
		return materializeRanges(fi, kind)
	}
}

func materializeValues(fi *FilterInfo, kind types.Kind) (TypedFilter, error) {
	switch kind {
	case types.KindInt32, types.KindInt64:
		vals := make([]int64, len(fi.Values))
		for i, v := range fi.Values {
			vals[i] = v.I64
		}
		return &InValues[int64]{Values: vals, Allowed: fi.NullAllowed, kind: KindBigintValues}, nil
	case types.KindDouble:
		vals := make([]float64, len(fi.Values))
		for i, v := range fi.Values {
			vals[i] = v.F64
		}
		return &InValues[float64]{Values: vals, Allowed: fi.NullAllowed, kind: KindDoubleValues}, nil
	case types.KindBytes:
		vals := make([]string, len(fi.Values))
		for i, v := range fi.Values {
			vals[i] = string(v.Bytes)
		}
		return &InValues[string]{Values: vals, Allowed: fi.NullAllowed, kind: KindBytesValues}, nil
	default:
		return nil, xerrors.Unsupportedf("filter synthesis unsupported for column kind %s", kind)
	}
}

func materializeNotValue(fi *FilterInfo, kind types.Kind) (TypedFilter, error) {
	switch kind {
	case types.KindInt32, types.KindInt64:
		lo := &Range[int64]{Upper: Bound[int64]{Value: fi.NotValue.I64, Exclusive: true}, Lower: unboundedBound[int64](), Allowed: fi.NullAllowed, kind: KindBigintRange}
		hi := &Range[int64]{Lower: Bound[int64]{Value: fi.NotValue.I64, Exclusive: true}, Upper: unboundedBound[int64](), Allowed: fi.NullAllowed, kind: KindBigintRange}
		return &MultiRange[int64]{Ranges: []*Range[int64]{lo, hi}, Allowed: fi.NullAllowed, kind: KindBigintMultiRange}, nil
	case types.KindDouble:
		lo := &Range[float64]{Upper: Bound[float64]{Value: fi.NotValue.F64, Exclusive: true}, Lower: unboundedBound[float64](), Allowed: fi.NullAllowed, kind: KindDoubleRange}
		hi := &Range[float64]{Lower: Bound[float64]{Value: fi.NotValue.F64, Exclusive: true}, Upper: unboundedBound[float64](), Allowed: fi.NullAllowed, kind: KindDoubleRange}
		return &MultiRange[float64]{Ranges: []*Range[float64]{lo, hi}, Allowed: fi.NullAllowed, kind: KindDoubleMultiRange}, nil
	case types.KindBytes:
		v := string(fi.NotValue.Bytes)
		lo := &Range[string]{Upper: Bound[string]{Value: v, Exclusive: true}, Lower: unboundedBound[string](), Allowed: fi.NullAllowed, kind: KindBytesRange}
		hi := &Range[string]{Lower: Bound[string]{Value: v, Exclusive: true}, Upper: unboundedBound[string](), Allowed: fi.NullAllowed, kind: KindBytesRange}
		return &MultiRange[string]{Ranges: []*Range[string]{lo, hi}, Allowed: fi.NullAllowed, kind: KindBytesMultiRange}, nil
	default:
		return nil, xerrors.Unsupportedf("filter synthesis unsupported for column kind %s", kind)
	}
}

func materializeRanges(fi *FilterInfo, kind types.Kind) (TypedFilter, error) {
	n := len(fi.LowerBounds)
	if len(fi.UpperBounds) > n {
		n = len(fi.UpperBounds)
	}
	if n == 0 {
		n = 1
	}
	switch kind {
	case types.KindInt32, types.KindInt64:
		ranges := make([]*Range[int64], n)
		for i := 0; i < n; i++ {
			ranges[i] = &Range[int64]{Lower: lowerBoundAt[int64](fi, i, func(v Value) int64 { return v.I64 }), Upper: upperBoundAt[int64](fi, i, func(v Value) int64 { return v.I64 }), Allowed: fi.NullAllowed, kind: KindBigintRange}
		}
		if n == 1 {
			return ranges[0], nil
		}
		return &MultiRange[int64]{Ranges: ranges, Allowed: fi.NullAllowed, kind: KindBigintMultiRange}, nil
	case types.KindDouble:
		ranges := make([]*Range[float64], n)
		for i := 0; i < n; i++ {
			ranges[i] = &Range[float64]{Lower: lowerBoundAt[float64](fi, i, func(v Value) float64 { return v.F64 }), Upper: upperBoundAt[float64](fi, i, func(v Value) float64 { return v.F64 }), Allowed: fi.NullAllowed, kind: KindDoubleRange}
		}
		if n == 1 {
			return ranges[0], nil
		}
		return &MultiRange[float64]{Ranges: ranges, Allowed: fi.NullAllowed, kind: KindDoubleMultiRange}, nil
	case types.KindBytes:
		// Bytes bounds use "" as the placeholder value for an unbounded
		// side; the Unbounded flag, not the value, encodes "no bound".
		ranges := make([]*Range[string], n)
		for i := 0; i < n; i++ {
			ranges[i] = &Range[string]{Lower: lowerBoundAt[string](fi, i, func(v Value) string { return string(v.Bytes) }), Upper: upperBoundAt[string](fi, i, func(v Value) string { return string(v.Bytes) }), Allowed: fi.NullAllowed, kind: KindBytesRange}
		}
		if n == 1 {
			return ranges[0], nil
		}
		return &MultiRange[string]{Ranges: ranges, Allowed: fi.NullAllowed, kind: KindBytesMultiRange}, nil
	default:
		return nil, xerrors.Unsupportedf("filter synthesis unsupported for column kind %s", kind)
	}
}

func lowerBoundAt[T any](fi *FilterInfo, i int, extract func(Value) T) Bound[T] {
	if i >= len(fi.LowerHasBound) || !fi.LowerHasBound[i] {
		return unboundedBound[T]()
	}
	return Bound[T]{Value: extract(fi.LowerBounds[i]), Exclusive: fi.LowerExclusives[i]}
}

func upperBoundAt[T any](fi *FilterInfo, i int, extract func(Value) T) Bound[T] {
	if i >= len(fi.UpperHasBound) || !fi.UpperHasBound[i] {
		return unboundedBound[T]()
	}
	return Bound[T]{Value: extract(fi.UpperBounds[i]), Exclusive: fi.UpperExclusives[i]}
}
