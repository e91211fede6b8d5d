// Package connector models the (deliberately minimal) data-source binding
// for scan nodes: a fixed logical connector/table identity and per-column
// handles, binding a table and its columns rather than raw file paths.
package connector

import "github.com/Deegue/velox-intel/pkg/types"

const (
	// ID is the logical connector identifier every scan is emitted against.
	ID = "test-hive"
	// TableName is the logical table name every scan is emitted against.
	TableName = "hive_table"
)

// ColumnHandle carries a scanned column's original schema name and type.
type ColumnHandle struct {
	Name string
	Type types.Type
}

// ScanHandle is the connector-side handle attached to a TableScan plan
// node. Filter pushdown is always enabled at the handle level; the
// residual/subfield split lives on the plan node itself.
type ScanHandle struct {
	ConnectorID     string
	TableName       string
	Columns         []ColumnHandle
	PushdownEnabled bool
}

// NewScanHandle builds a ScanHandle from the leaf's row type, deriving one
// ColumnHandle per schema column in order.
func NewScanHandle(rowType *types.RowType) *ScanHandle {
	cols := make([]ColumnHandle, rowType.Size())
	for i := 0; i < rowType.Size(); i++ {
		cols[i] = ColumnHandle{Name: rowType.NameAt(i), Type: rowType.TypeAt(i)}
	}
	return &ScanHandle{
		ConnectorID:     ID,
		TableName:       TableName,
		Columns:         cols,
		PushdownEnabled: true,
	}
}
