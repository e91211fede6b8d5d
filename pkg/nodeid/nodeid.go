// Package nodeid allocates the stable, opaque plan-node identifiers used
// across the plan, split, namegen, and convert packages. Identifiers are
// monotonically increasing decimal strings starting at "0", matching the
// dense-DFS-leaf-first numbering RelConverter relies on.
package nodeid

import "strconv"

// ID is an opaque, stable plan-node identifier, unique within one
// conversion pass.
type ID string

// Allocator hands out sequential IDs starting at 0. It is exclusive to a
// single conversion; the zero value is ready to use.
type Allocator struct {
	next uint64
}

// NewAllocator returns an Allocator starting at 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns the next unused ID and advances the counter.
func (a *Allocator) Next() ID {
	id := ID(strconv.FormatUint(a.next, 10))
	a.next++
	return id
}
