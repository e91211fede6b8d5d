package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deegue/velox-intel/pkg/connector"
	"github.com/Deegue/velox-intel/pkg/plan"
	"github.com/Deegue/velox-intel/pkg/types"
)

func rowType(names ...string) *types.RowType {
	tys := make([]types.Type, len(names))
	for i := range names {
		tys[i] = types.NewBasic(types.KindInt64, "bigint")
	}
	return types.NewRowType(names, tys)
}

func TestTableScan_SourcesEmpty(t *testing.T) {
	rt := rowType("a")
	handle := connector.NewScanHandle(rt)
	scan := plan.NewTableScan("0", rt, handle, nil, nil)

	assert.Equal(t, "0", string(scan.ID()))
	assert.Empty(t, scan.Sources())
	assert.Same(t, handle, scan.Handle)
}

func TestFilter_InheritsInputSchema(t *testing.T) {
	rt := rowType("a", "b")
	scan := plan.NewTableScan("0", rt, connector.NewScanHandle(rt), nil, nil)
	f := plan.NewFilter("1", scan, nil)

	assert.Same(t, rt, f.OutputType())
	require.Len(t, f.Sources(), 1)
	assert.Same(t, scan, f.Sources()[0])
}

func TestHashJoin_OutputIsLeftConcatRight(t *testing.T) {
	left := plan.NewTableScan("0", rowType("a"), connector.NewScanHandle(rowType("a")), nil, nil)
	right := plan.NewTableScan("1", rowType("b"), connector.NewScanHandle(rowType("b")), nil, nil)
	outputType := types.Concat(left.OutputType(), right.OutputType())

	hj := plan.NewHashJoin("2", outputType, left, right, plan.JoinInner, []int{0}, []int{0}, nil)

	require.Len(t, hj.Sources(), 2)
	assert.Equal(t, 2, hj.OutputType().Size())
	assert.Equal(t, "inner", hj.Type.String())
}

func TestAggPhase_String(t *testing.T) {
	assert.Equal(t, "Partial", plan.PhasePartial.String())
	assert.Equal(t, "Intermediate", plan.PhaseIntermediate.String())
	assert.Equal(t, "Final", plan.PhaseFinal.String())
	assert.Equal(t, "Single", plan.PhaseSingle.String())
}

func TestJoinType_String(t *testing.T) {
	assert.Equal(t, "leftSemi", plan.JoinLeftSemi.String())
	assert.Equal(t, "anti", plan.JoinAnti.String())
}
