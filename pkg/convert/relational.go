package convert

import (
	"context"

	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/fnmap"
	"github.com/Deegue/velox-intel/pkg/plan"
	"github.com/Deegue/velox-intel/pkg/refutil"
	"github.com/Deegue/velox-intel/pkg/types"
	"github.com/Deegue/velox-intel/pkg/xerrors"
)

func (c *Converter) buildFilter(ctx context.Context, r *pb.FilterRel) (plan.Node, error) {
	input, err := c.buildRel(ctx, r.GetInput())
	if err != nil {
		return nil, err
	}
	pred, err := c.exprConv.Convert(r.GetCondition(), input.OutputType())
	if err != nil {
		return nil, err
	}
	return plan.NewFilter(c.ids.Next(), input, pred), nil
}

func (c *Converter) buildProject(ctx context.Context, r *pb.ProjectRel) (plan.Node, error) {
	input, err := c.buildRel(ctx, r.GetInput())
	if err != nil {
		return nil, err
	}

	exprs := r.GetExpressions()
	id := c.ids.Next()
	converted := make([]exprconv.Expr, len(exprs))
	names := make([]string, len(exprs))
	outTypes := make([]types.Type, len(exprs))
	for i, e := range exprs {
		ce, err := c.exprConv.Convert(e, input.OutputType())
		if err != nil {
			return nil, err
		}
		converted[i] = ce
		names[i] = c.names.ColumnName(id, i)
		outTypes[i] = ce.Type()
	}

	outputType := types.NewRowType(names, outTypes)
	return plan.NewProject(id, outputType, input, converted, names), nil
}

func (c *Converter) buildAggregate(ctx context.Context, r *pb.AggregateRel) (plan.Node, error) {
	input, err := c.buildRel(ctx, r.GetInput())
	if err != nil {
		return nil, err
	}
	inputType := input.OutputType()

	var groupingKeys []int
	for _, g := range r.GetGroupings() {
		for _, ge := range g.GetGroupingExpressions() {
			sel := ge.GetSelection()
			if sel == nil {
				return nil, xerrors.InvalidInputf("aggregate grouping expression is not a field selection")
			}
			col, ok := refutil.ColumnIndex(sel)
			if !ok {
				return nil, xerrors.InvalidInputf("aggregate grouping expression is not a plain field reference")
			}
			groupingKeys = append(groupingKeys, col)
		}
	}

	srcMeasures := r.GetMeasures()
	id := c.ids.Next()
	total := len(groupingKeys) + len(srcMeasures)
	names := make([]string, total)
	outTypes := make([]types.Type, total)

	for i, col := range groupingKeys {
		names[i] = c.names.ColumnName(id, i)
		outTypes[i] = inputType.TypeAt(col)
	}

	measures := make([]plan.Measure, len(srcMeasures))
	for i, m := range srcMeasures {
		fn := m.GetMeasure()
		if fn == nil {
			return nil, xerrors.InvalidInputf("aggregate measure is missing its function")
		}
		shortName, err := c.fnMap.ShortName(fn.GetFunctionReference())
		if err != nil {
			return nil, err
		}
		args, err := measureArgColumns(fn)
		if err != nil {
			return nil, err
		}
		outIdx := len(groupingKeys) + i
		outName := c.names.ColumnName(id, outIdx)
		measures[i] = plan.Measure{FuncName: shortName, Args: args, OutputName: outName}
		names[outIdx] = outName

		outType, err := c.typeMapper.Map(fn.GetOutputType())
		if err != nil {
			return nil, err
		}
		outTypes[outIdx] = outType
	}

	phase, err := aggPhase(srcMeasures)
	if err != nil {
		return nil, err
	}

	outputType := types.NewRowType(names, outTypes)
	return plan.NewAggregation(id, outputType, input, groupingKeys, measures, phase), nil
}

func measureArgColumns(fn *pb.AggregateFunction) ([]int, error) {
	args := fn.GetArguments()
	cols := make([]int, 0, len(args))
	for _, a := range args {
		sel := a.GetValue().GetSelection()
		if sel == nil {
			return nil, xerrors.InvalidInputf("aggregate measure argument is not a field selection")
		}
		col, ok := refutil.ColumnIndex(sel)
		if !ok {
			return nil, xerrors.InvalidInputf("aggregate measure argument is not a plain field reference")
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// aggPhase derives the aggregation step from the first measure's Substrait
// phase, forcing Single when there are no measures at all.
func aggPhase(measures []*pb.AggregateRel_Measure) (plan.AggPhase, error) {
	if len(measures) == 0 {
		return plan.PhaseSingle, nil
	}
	fn := measures[0].GetMeasure()
	if fn == nil {
		return 0, xerrors.InvalidInputf("aggregate measure is missing its function")
	}
	switch fn.GetPhase() {
	case pb.AggregationPhase_AGGREGATION_PHASE_INITIAL_TO_INTERMEDIATE:
		return plan.PhasePartial, nil
	case pb.AggregationPhase_AGGREGATION_PHASE_INTERMEDIATE_TO_INTERMEDIATE:
		return plan.PhaseIntermediate, nil
	case pb.AggregationPhase_AGGREGATION_PHASE_INTERMEDIATE_TO_RESULT:
		return plan.PhaseFinal, nil
	case pb.AggregationPhase_AGGREGATION_PHASE_INITIAL_TO_RESULT:
		return plan.PhaseSingle, nil
	default:
		return 0, xerrors.Unsupportedf("aggregate phase %v is not supported", fn.GetPhase())
	}
}

func (c *Converter) buildJoin(ctx context.Context, r *pb.JoinRel) (plan.Node, error) {
	left, err := c.buildRel(ctx, r.GetLeft())
	if err != nil {
		return nil, err
	}
	right, err := c.buildRel(ctx, r.GetRight())
	if err != nil {
		return nil, err
	}
	outputType := types.Concat(left.OutputType(), right.OutputType())

	leftKeys, rightKeys, err := extractJoinKeys(r.GetExpression(), c.fnMap, left.OutputType().Size())
	if err != nil {
		return nil, err
	}

	var postFilter exprconv.Expr
	if r.GetPostJoinFilter() != nil {
		postFilter, err = c.exprConv.Convert(r.GetPostJoinFilter(), outputType)
		if err != nil {
			return nil, err
		}
	}

	joinType, err := joinTypeFrom(r.GetType())
	if err != nil {
		return nil, err
	}

	id := c.ids.Next()
	return plan.NewHashJoin(id, outputType, left, right, joinType, leftKeys, rightKeys, postFilter), nil
}

func joinTypeFrom(t pb.JoinRel_JoinType) (plan.JoinType, error) {
	switch t {
	case pb.JoinRel_JOIN_TYPE_INNER:
		return plan.JoinInner, nil
	case pb.JoinRel_JOIN_TYPE_OUTER:
		return plan.JoinFull, nil
	case pb.JoinRel_JOIN_TYPE_LEFT:
		return plan.JoinLeft, nil
	case pb.JoinRel_JOIN_TYPE_RIGHT:
		return plan.JoinRight, nil
	case pb.JoinRel_JOIN_TYPE_SEMI:
		return plan.JoinLeftSemi, nil
	case pb.JoinRel_JOIN_TYPE_ANTI:
		return plan.JoinAnti, nil
	default:
		return 0, xerrors.Unsupportedf("join type %v is not supported", t)
	}
}

// extractJoinKeys walks the join predicate with an explicit stack rather
// than recursion, permitting only "and" and "eq" short-names. eq's two
// field-reference arguments are resolved against the combined left ∥ right
// schema and split back into per-side ordinals, appended to leftKeys and
// rightKeys in order of encounter.
func extractJoinKeys(expr *pb.Expression, fnMap *fnmap.Map, leftSize int) ([]int, []int, error) {
	if expr == nil {
		return nil, nil, nil
	}
	var leftKeys, rightKeys []int
	stack := []*pb.Expression{expr}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sf := e.GetScalarFunction()
		if sf == nil {
			return nil, nil, xerrors.InvalidInputf("join condition is not a scalar function: %T", e.GetRexType())
		}
		name, err := fnMap.ShortName(sf.GetFunctionReference())
		if err != nil {
			return nil, nil, err
		}
		args := sf.GetArguments()

		switch name {
		case "and":
			if len(args) != 2 {
				return nil, nil, xerrors.InvalidInputf("join 'and' expects 2 arguments, got %d", len(args))
			}
			// Push right-then-left so the left child pops (and is
			// visited) first, preserving order of encounter.
			stack = append(stack, args[1].GetValue(), args[0].GetValue())
		case "eq":
			if len(args) != 2 {
				return nil, nil, xerrors.InvalidInputf("join 'eq' expects 2 arguments, got %d", len(args))
			}
			leftSel := args[0].GetValue().GetSelection()
			rightSel := args[1].GetValue().GetSelection()
			if leftSel == nil || rightSel == nil {
				return nil, nil, xerrors.InvalidInputf("join 'eq' arguments must both be field references")
			}
			leftIdx, ok := refutil.ColumnIndex(leftSel)
			if !ok {
				return nil, nil, xerrors.InvalidInputf("join 'eq' left argument is not a plain field reference")
			}
			rightAbs, ok := refutil.ColumnIndex(rightSel)
			if !ok {
				return nil, nil, xerrors.InvalidInputf("join 'eq' right argument is not a plain field reference")
			}
			rightIdx := rightAbs - leftSize
			if rightIdx < 0 {
				return nil, nil, xerrors.InvalidInputf("join 'eq' right argument %d does not fall within the right input", rightAbs)
			}
			leftKeys = append(leftKeys, leftIdx)
			rightKeys = append(rightKeys, rightIdx)
		default:
			return nil, nil, xerrors.Unsupportedf("join condition function %q is not supported (only and/eq)", name)
		}
	}
	return leftKeys, rightKeys, nil
}
