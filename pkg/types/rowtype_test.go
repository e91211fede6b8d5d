package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deegue/velox-intel/pkg/types"
)

func TestNewRowType_MismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		types.NewRowType([]string{"a", "b"}, []types.Type{types.NewBasic(types.KindInt64, "bigint")})
	})
}

func TestRowType_Accessors(t *testing.T) {
	rt := types.NewRowType(
		[]string{"a", "b"},
		[]types.Type{types.NewBasic(types.KindInt64, "bigint"), types.NewBasic(types.KindBytes, "varchar")},
	)
	require.Equal(t, 2, rt.Size())
	assert.Equal(t, "a", rt.NameAt(0))
	assert.Equal(t, types.KindBytes, rt.KindAt(1))
	assert.Equal(t, types.KindUnknown, rt.KindAt(5))
}

func TestConcat_PreservesOrder(t *testing.T) {
	left := types.NewRowType([]string{"a"}, []types.Type{types.NewBasic(types.KindInt64, "bigint")})
	right := types.NewRowType([]string{"b"}, []types.Type{types.NewBasic(types.KindDouble, "double")})

	joined := types.Concat(left, right)
	require.Equal(t, 2, joined.Size())
	assert.Equal(t, []string{"a", "b"}, joined.Names())
	assert.Equal(t, types.KindDouble, joined.KindAt(1))
}
