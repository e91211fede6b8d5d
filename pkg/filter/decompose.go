package filter

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/fnmap"
	"github.com/Deegue/velox-intel/pkg/refutil"
	"github.com/Deegue/velox-intel/pkg/xerrors"
)

// commonPushable is the fixed set of short-names directly eligible for
// subfield pushdown.
var commonPushable = map[string]bool{
	"is_not_null": true,
	"gte":         true,
	"gt":          true,
	"lte":         true,
	"lt":          true,
	"equal":       true,
	"in":          true,
}

// reversibleComparison is the subset of commonPushable a NOT may wrap.
var reversibleComparison = map[string]bool{
	"gte": true, "gt": true, "lte": true, "lt": true, "equal": true,
}

// Classification is the disjoint partition of a flattened conjunction into
// subfield-pushable and residual predicates.
type Classification struct {
	Subfield  []*pb.Expression
	Remaining []*pb.Expression
}

// Flatten walks expr, descending into nested "and" scalar functions and
// collecting their leaves. A non-"and" scalar function (or any other
// expression shape) is a leaf in its own right and is appended as-is;
// whether that leaf is itself well-formed is Classify's job.
func Flatten(expr *pb.Expression, fnMap *fnmap.Map) ([]*pb.Expression, error) {
	if expr == nil {
		return nil, nil
	}
	sf := expr.GetScalarFunction()
	if sf != nil {
		name, err := fnMap.ShortName(sf.GetFunctionReference())
		if err != nil {
			return nil, err
		}
		if name == "and" {
			var out []*pb.Expression
			for _, arg := range sf.GetArguments() {
				child := arg.GetValue()
				if child == nil {
					return nil, xerrors.InvalidInputf("and argument missing value")
				}
				sub, err := Flatten(child, fnMap)
				if err != nil {
					return nil, err
				}
				out = append(out, sub...)
			}
			return out, nil
		}
	}
	return []*pb.Expression{expr}, nil
}

// Classify partitions a flattened predicate list into subfield-pushable
// and residual expressions, preserving order within each list. Every
// element of flat must be a scalar function; a non-function element is a
// fatal InvalidInput, per the "conditions() only ever flattens ands"
// invariant.
func Classify(flat []*pb.Expression, fnMap *fnmap.Map) (*Classification, error) {
	inCols := getInColIndices(flat, fnMap)
	notEqualCols := map[int]bool{}

	cls := &Classification{}
	for _, e := range flat {
		ok, err := classifyOne(e, fnMap, inCols, notEqualCols)
		if err != nil {
			return nil, err
		}
		if ok {
			cls.Subfield = append(cls.Subfield, e)
		} else {
			cls.Remaining = append(cls.Remaining, e)
		}
	}
	return cls, nil
}

func classifyOne(e *pb.Expression, fnMap *fnmap.Map, inCols, notEqualCols map[int]bool) (bool, error) {
	sf := e.GetScalarFunction()
	if sf == nil {
		return false, xerrors.InvalidInputf("predicate is not a scalar function: %T", e.GetRexType())
	}
	name, err := fnMap.ShortName(sf.GetFunctionReference())
	if err != nil {
		return false, err
	}
	switch {
	case name == "not":
		return classifyNot(sf, fnMap, inCols, notEqualCols)
	case name == "or":
		return classifyOr(sf, fnMap, inCols)
	case name == "in":
		args := sf.GetArguments()
		if len(args) == 0 || args[0].GetValue().GetSelection() == nil {
			return false, xerrors.InvalidInputf("in predicate's first argument is not a field reference")
		}
		return classifyCommon(name, sf, inCols), nil
	case commonPushable[name]:
		return classifyCommon(name, sf, inCols), nil
	default:
		return false, nil
	}
}

func classifyCommon(name string, sf *pb.Expression_ScalarFunction, inCols map[int]bool) bool {
	col, ok := fieldOrWithLiteral(sf)
	if !ok {
		return false
	}
	if inCols[col] && name != "is_not_null" && name != "in" {
		return false
	}
	return true
}

func classifyNot(sf *pb.Expression_ScalarFunction, fnMap *fnmap.Map, inCols, notEqualCols map[int]bool) (bool, error) {
	args := sf.GetArguments()
	if len(args) != 1 {
		return false, nil
	}
	child := args[0].GetValue().GetScalarFunction()
	if child == nil {
		return false, nil
	}
	cname, err := fnMap.ShortName(child.GetFunctionReference())
	if err != nil {
		return false, err
	}
	if !reversibleComparison[cname] {
		return false, nil
	}
	col, ok := fieldOrWithLiteral(child)
	if !ok {
		return false, nil
	}
	if inCols[col] {
		return false, nil
	}
	if cname == "equal" {
		if notEqualCols[col] {
			return false, nil
		}
		notEqualCols[col] = true
	}
	return true, nil
}

func classifyOr(sf *pb.Expression_ScalarFunction, fnMap *fnmap.Map, inCols map[int]bool) (bool, error) {
	args := sf.GetArguments()
	if len(args) != 2 {
		return false, nil
	}
	col, ok := childrenOnSameField(sf)
	if !ok {
		return false, nil
	}
	inCount := 0
	for _, a := range args {
		child := a.GetValue().GetScalarFunction()
		if child == nil {
			return false, nil
		}
		cname, err := fnMap.ShortName(child.GetFunctionReference())
		if err != nil {
			return false, err
		}
		if !commonPushable[cname] {
			return false, nil
		}
		ccol, ok2 := fieldOrWithLiteral(child)
		if !ok2 || ccol != col {
			return false, nil
		}
		if inCols[ccol] {
			return false, nil
		}
		if cname == "in" {
			inCount++
			if inCount > 1 {
				return false, nil
			}
		}
		if cname == "in" || cname == "is_not_null" {
			hasIntType, err := signatureHasIntType(fnMap, child)
			if err != nil {
				return false, err
			}
			if hasIntType {
				return false, nil
			}
		}
	}
	return true, nil
}

func signatureHasIntType(fnMap *fnmap.Map, sf *pb.Expression_ScalarFunction) (bool, error) {
	types, err := fnMap.ArgTypes(sf.GetFunctionReference())
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t == "i32" || t == "i64" {
			return true, nil
		}
	}
	return false, nil
}

// fieldOrWithLiteral returns the field-reference column index carried by
// sf's arguments if every argument is either that single field reference
// or a literal (any count of literals, to accommodate is_not_null's single
// field argument, a comparison's field+literal pair, and in's field plus
// its variadic literal list). Any other argument shape, or more than one
// distinct field reference, returns ok=false.
func fieldOrWithLiteral(sf *pb.Expression_ScalarFunction) (colIdx int, ok bool) {
	args := sf.GetArguments()
	if len(args) == 0 {
		return 0, false
	}
	fieldIdx := -1
	for _, a := range args {
		v := a.GetValue()
		switch {
		case v.GetSelection() != nil:
			idx, ok2 := refutil.ColumnIndex(v.GetSelection())
			if !ok2 {
				return 0, false
			}
			if fieldIdx != -1 && fieldIdx != idx {
				return 0, false
			}
			fieldIdx = idx
		case v.GetLiteral() != nil:
			// literal argument, fine at any position
		default:
			return 0, false
		}
	}
	if fieldIdx == -1 {
		return 0, false
	}
	return fieldIdx, true
}

// childrenOnSameField reports whether every scalar-function argument of an
// OR references the same column index. Only field references are
// considered; a child with no field reference at all disqualifies the
// whole OR.
func childrenOnSameField(orFn *pb.Expression_ScalarFunction) (int, bool) {
	col := -1
	for _, a := range orFn.GetArguments() {
		sf := a.GetValue().GetScalarFunction()
		if sf == nil {
			return 0, false
		}
		found := -1
		for _, sa := range sf.GetArguments() {
			fr := sa.GetValue().GetSelection()
			if fr == nil {
				continue
			}
			idx, ok := refutil.ColumnIndex(fr)
			if !ok {
				return 0, false
			}
			if found != -1 && found != idx {
				return 0, false
			}
			found = idx
		}
		if found == -1 {
			return 0, false
		}
		if col != -1 && col != found {
			return 0, false
		}
		col = found
	}
	if col == -1 {
		return 0, false
	}
	return col, true
}

// getInColIndices scans the flattened list for "in" predicates whose first
// argument is a plain field selection, recording their column indices.
// Used to enforce that IN excludes all pushdown on that column besides
// IsNotNull.
func getInColIndices(flat []*pb.Expression, fnMap *fnmap.Map) map[int]bool {
	out := map[int]bool{}
	for _, e := range flat {
		sf := e.GetScalarFunction()
		if sf == nil {
			continue
		}
		name, err := fnMap.ShortName(sf.GetFunctionReference())
		if err != nil || name != "in" {
			continue
		}
		args := sf.GetArguments()
		if len(args) == 0 {
			continue
		}
		fr := args[0].GetValue().GetSelection()
		if fr == nil {
			continue
		}
		if idx, ok := refutil.ColumnIndex(fr); ok {
			out[idx] = true
		}
	}
	return out
}
