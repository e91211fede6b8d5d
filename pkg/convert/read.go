package convert

import (
	"context"
	"strconv"
	"strings"

	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/connector"
	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/filter"
	"github.com/Deegue/velox-intel/pkg/nodeid"
	"github.com/Deegue/velox-intel/pkg/plan"
	"github.com/Deegue/velox-intel/pkg/split"
	"github.com/Deegue/velox-intel/pkg/types"
	"github.com/Deegue/velox-intel/pkg/xerrors"
)

const streamPrefix = "iterator:"

// buildRead lowers a ReadRel. A stream sentinel returns the referenced
// pre-built input node; a virtual_table builds a Values leaf; anything else
// builds a TableScan leaf backed by local_files splits.
func (c *Converter) buildRead(ctx context.Context, r *pb.ReadRel) (plan.Node, error) {
	streamIdx, isStream, err := streamIndex(r)
	if err != nil {
		return nil, err
	}
	if isStream {
		node, ok := c.inputNodes[streamIdx]
		if !ok {
			return nil, xerrors.InvalidInputf("no input node registered for stream index %d", streamIdx)
		}
		c.splits[node.ID()] = &split.Info{IsStream: true}
		return node, nil
	}

	schemaRowType, err := c.rowTypeFromSchema(r.GetBaseSchema())
	if err != nil {
		return nil, err
	}

	if r.GetVirtualTable() != nil {
		return c.buildValues(r.GetVirtualTable(), schemaRowType)
	}
	return c.buildFileScan(ctx, r, schemaRowType)
}

// streamIndex reports whether items[0]'s uri_file carries the
// "iterator:<idx>" stream sentinel and, if so, its parsed index.
func streamIndex(r *pb.ReadRel) (int, bool, error) {
	items := r.GetLocalFiles().GetItems()
	if len(items) == 0 {
		return 0, false, nil
	}
	uri := items[0].GetUriFile()
	pos := strings.Index(uri, streamPrefix)
	if pos < 0 {
		return 0, false, nil
	}
	suffix := uri[pos+len(streamPrefix):]
	idx, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false, xerrors.ParseErrorf(err, "invalid stream index suffix %q", suffix)
	}
	return idx, true, nil
}

func (c *Converter) rowTypeFromSchema(ns *pb.NamedStruct) (*types.RowType, error) {
	if ns == nil {
		return nil, xerrors.InvalidInputf("read rel is missing base_schema")
	}
	names := ns.GetNames()
	structTypes := ns.GetStruct().GetTypes()
	if len(names) != len(structTypes) {
		return nil, xerrors.InvalidInputf("base schema name/type count mismatch: %d vs %d", len(names), len(structTypes))
	}
	tys := make([]types.Type, len(structTypes))
	for i, t := range structTypes {
		mapped, err := c.typeMapper.Map(t)
		if err != nil {
			return nil, err
		}
		tys[i] = mapped
	}
	return types.NewRowType(names, tys), nil
}

// buildFileScan builds a TableScan leaf, running the schema columns through
// filter.Decompose when a predicate is present and pushdown is enabled.
func (c *Converter) buildFileScan(ctx context.Context, r *pb.ReadRel, schemaRowType *types.RowType) (plan.Node, error) {
	items := r.GetLocalFiles().GetItems()
	if len(items) == 0 {
		return nil, xerrors.InvalidInputf("read rel has no local_files entries")
	}

	info := &split.Info{
		Paths:   make([]string, 0, len(items)),
		Starts:  make([]int64, 0, len(items)),
		Lengths: make([]int64, 0, len(items)),
	}
	for _, it := range items {
		// Every file is expected to share the same partition index; taking
		// the last one in turn preserves that assumption rather than
		// enforcing it.
		info.PartitionIndex = it.GetPartitionIndex()
		info.Paths = append(info.Paths, it.GetUriFile())
		info.Starts = append(info.Starts, it.GetStart())
		info.Lengths = append(info.Lengths, it.GetLength())
		info.Format = split.FormatFromTag(it.GetFormat())
	}

	res, err := c.decomposeReadFilter(r.GetFilter(), schemaRowType, info.Format)
	if err != nil {
		return nil, err
	}

	id := c.ids.Next()
	outputRowType := c.generatedRowType(id, schemaRowType)
	handle := connector.NewScanHandle(schemaRowType)
	node := plan.NewTableScan(id, outputRowType, handle, res.Subfield, res.Residual)

	c.splits[id] = info
	c.log.VEventf(ctx, 2, "table scan %s: %d files, format=%s, %d subfield filters", id, len(items), info.Format, len(res.Subfield))
	return node, nil
}

func (c *Converter) decomposeReadFilter(pred *pb.Expression, schemaRowType *types.RowType, format split.Format) (*filter.Result, error) {
	if pred == nil {
		return &filter.Result{}, nil
	}
	if !c.cfg.EnablePushdown {
		residual, err := c.exprConv.Convert(pred, schemaRowType)
		if err != nil {
			return nil, err
		}
		return &filter.Result{Residual: residual}, nil
	}
	return filter.Decompose(pred, c.fnMap, schemaRowType, format, c.exprConv)
}

// generatedRowType returns schemaRowType's types paired with freshly
// generated n<id>_<i> output names.
func (c *Converter) generatedRowType(id nodeid.ID, schemaRowType *types.RowType) *types.RowType {
	names := make([]string, schemaRowType.Size())
	for i := range names {
		names[i] = c.names.ColumnName(id, i)
	}
	return types.NewRowType(names, schemaRowType.Types())
}

// buildValues lowers a virtual_table Read into a Values leaf. Batch size is
// inferred from the last row's field count divided by the column count.
// A row with too few fields for that layout is rejected as InvalidInput;
// fields beyond the layout are ignored, so wider rows are accepted.
func (c *Converter) buildValues(vt *pb.ReadRel_VirtualTable, schemaRowType *types.RowType) (plan.Node, error) {
	numColumns := schemaRowType.Size()
	values := vt.GetValues()
	id := c.ids.Next()
	outputRowType := c.generatedRowType(id, schemaRowType)

	var poolName string
	if c.pool != nil {
		poolName = c.pool.Name()
	}

	if len(values) == 0 || numColumns == 0 {
		return plan.NewValues(id, outputRowType, nil, 0, poolName), nil
	}

	lastRow := values[len(values)-1]
	batchSize := len(lastRow.GetFields()) / numColumns
	if batchSize <= 0 {
		return nil, xerrors.InvalidInputf("virtual table row width %d is smaller than the %d columns", len(lastRow.GetFields()), numColumns)
	}

	var rows [][]exprconv.Expr
	for _, vec := range values {
		fields := vec.GetFields()
		for b := 0; b < batchSize; b++ {
			row := make([]exprconv.Expr, numColumns)
			for col := 0; col < numColumns; col++ {
				fieldIdx := col*batchSize + b
				if fieldIdx >= len(fields) {
					return nil, xerrors.InvalidInputf("virtual table row missing field at position %d", fieldIdx)
				}
				e, err := c.exprConv.ConvertLiteral(fields[fieldIdx], schemaRowType.TypeAt(col))
				if err != nil {
					return nil, err
				}
				row[col] = e
			}
			rows = append(rows, row)
		}
	}
	return plan.NewValues(id, outputRowType, rows, batchSize, poolName), nil
}
