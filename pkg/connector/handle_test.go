package connector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deegue/velox-intel/pkg/connector"
	"github.com/Deegue/velox-intel/pkg/types"
)

func TestNewScanHandle(t *testing.T) {
	rowType := types.NewRowType(
		[]string{"a", "b"},
		[]types.Type{types.NewBasic(types.KindInt64, "bigint"), types.NewBasic(types.KindBytes, "varchar")},
	)
	h := connector.NewScanHandle(rowType)

	assert.Equal(t, connector.ID, h.ConnectorID)
	assert.Equal(t, connector.TableName, h.TableName)
	assert.True(t, h.PushdownEnabled)
	require.Len(t, h.Columns, 2)
	assert.Equal(t, "a", h.Columns[0].Name)
	assert.Equal(t, types.KindBytes, h.Columns[1].Type.Kind())
}
