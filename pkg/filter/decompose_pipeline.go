package filter

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/fnmap"
	"github.com/Deegue/velox-intel/pkg/split"
	"github.com/Deegue/velox-intel/pkg/types"
)

// Result is the output of Decompose: the typed filters to push into the
// scan and the residual expression to evaluate above it.
type Result struct {
	Subfield map[int]TypedFilter
	Residual exprconv.Expr
}

// Decompose runs the full pipeline for one Read's predicate: flatten the
// AND tree, classify each leaf as subfield-pushable or residual,
// synthesize the pushable leaves into typed filters, gate them against the
// target format, and compose whatever remains residual into one expr.
//
// pred may be nil, meaning the Read carries no filter at all.
func Decompose(
	pred *pb.Expression,
	fnMap *fnmap.Map,
	rowType *types.RowType,
	format split.Format,
	conv exprconv.Converter,
) (*Result, error) {
	if pred == nil {
		return &Result{}, nil
	}

	flat, err := Flatten(pred, fnMap)
	if err != nil {
		return nil, err
	}
	cls, err := Classify(flat, fnMap)
	if err != nil {
		return nil, err
	}

	subfield, err := BuildSubfieldFilters(cls.Subfield, fnMap, rowType.KindAt)
	if err != nil {
		return nil, err
	}

	residualExprs := cls.Remaining
	if !FormatAllows(format, subfield) {
		subfield = nil
		residualExprs = flat
	}

	residual, err := composeResidual(residualExprs, rowType, conv)
	if err != nil {
		return nil, err
	}

	return &Result{Subfield: subfield, Residual: residual}, nil
}

func composeResidual(exprs []*pb.Expression, rowType *types.RowType, conv exprconv.Converter) (exprconv.Expr, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	converted := make([]exprconv.Expr, len(exprs))
	for i, e := range exprs {
		ce, err := conv.Convert(e, rowType)
		if err != nil {
			return nil, err
		}
		converted[i] = ce
	}
	return conv.ConjunctAll(converted), nil
}
