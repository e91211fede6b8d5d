// Package namegen produces unique per-plan-node output column names.
package namegen

import (
	"fmt"

	"github.com/Deegue/velox-intel/pkg/nodeid"
)

// Generator produces column names of the form "n<nodeId>_<col>". It carries
// no state of its own: uniqueness follows from nodeid.Allocator already
// guaranteeing distinct node IDs.
type Generator struct{}

// ColumnName returns the generated output name for the i'th column
// produced by the node with the given id.
func (Generator) ColumnName(id nodeid.ID, i int) string {
	return fmt.Sprintf("n%s_%d", id, i)
}
