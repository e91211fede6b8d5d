// Package plan defines the engine's plan-node tree: the output of
// RelConverter. Nodes are a closed sum over {TableScan, Filter, Project,
// Aggregation, HashJoin, Values}, dispatched by a type switch downstream
// rather than through virtual methods, mirroring the tagged-variant
// guidance for this module's other closed hierarchies.
package plan

import (
	"github.com/Deegue/velox-intel/pkg/nodeid"
	"github.com/Deegue/velox-intel/pkg/types"
)

// Node is the common interface every plan node satisfies.
type Node interface {
	ID() nodeid.ID
	OutputType() *types.RowType
	Sources() []Node
}

type base struct {
	id         nodeid.ID
	outputType *types.RowType
	sources    []Node
}

func (b *base) ID() nodeid.ID             { return b.id }
func (b *base) OutputType() *types.RowType { return b.outputType }
func (b *base) Sources() []Node           { return b.sources }
