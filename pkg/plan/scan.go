package plan

import (
	"github.com/Deegue/velox-intel/pkg/connector"
	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/filter"
	"github.com/Deegue/velox-intel/pkg/nodeid"
	"github.com/Deegue/velox-intel/pkg/types"
)

// TableScan is a scan leaf: it carries the connector-side handle, the
// per-column subfield filters pushed into the scan layer, and whatever
// residual boolean expression must still be evaluated above it.
type TableScan struct {
	base
	Handle          *connector.ScanHandle
	SubfieldFilters map[int]filter.TypedFilter
	Residual        exprconv.Expr
}

// NewTableScan builds a scan leaf. subfieldFilters and residual may both
// be nil/empty for an unfiltered scan.
func NewTableScan(
	id nodeid.ID,
	outputType *types.RowType,
	handle *connector.ScanHandle,
	subfieldFilters map[int]filter.TypedFilter,
	residual exprconv.Expr,
) *TableScan {
	return &TableScan{
		base:            base{id: id, outputType: outputType},
		Handle:          handle,
		SubfieldFilters: subfieldFilters,
		Residual:        residual,
	}
}

// Values is a leaf that materializes literal rows, produced from a
// virtual-table Read.
type Values struct {
	base
	Rows      [][]exprconv.Expr
	BatchSize int
	// Pool is the exprconv.MemoryPool.Name() used to materialize Rows.
	// Empty for a Values node that stands in for a caller-supplied stream
	// input rather than one this converter materialized itself.
	Pool string
}

// NewValues builds a Values leaf. batchSize is the row-count-per-batch
// heuristic inferred from the virtual table's last row width; see
// convert.buildValues for how it's derived. pool is the name of the memory
// pool used to materialize rows, or "" if none was supplied.
func NewValues(id nodeid.ID, outputType *types.RowType, rows [][]exprconv.Expr, batchSize int, pool string) *Values {
	return &Values{base: base{id: id, outputType: outputType}, Rows: rows, BatchSize: batchSize, Pool: pool}
}
