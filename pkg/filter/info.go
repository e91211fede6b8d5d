package filter

// FilterInfo is a per-column accumulator of range bounds, equality,
// not-equal, in-set, and null-allowance constraints, collected while
// walking one Read's flattened conjunction. It is short-lived: it exists
// only during a single Read lowering and is discarded after synthesis.
//
// LowerBounds/UpperBounds and their parallel Has/Exclusive slices are
// positional: a single AND-conjunct on a column occupies position 0 in
// both; each branch of an OR occupies its own position across both,
// established by newPosition before that branch is applied. Positions a
// branch doesn't touch stay unbounded (Has=false) at synthesis time.
type FilterInfo struct {
	LowerBounds     []Value
	LowerHasBound   []bool
	LowerExclusives []bool

	UpperBounds     []Value
	UpperHasBound   []bool
	UpperExclusives []bool

	Values []Value

	NotValue    Value
	HasNotValue bool

	NullAllowed bool

	Initialized bool
}

// NewFilterInfo returns a FilterInfo with the default nullAllowed=true and
// no constraints recorded.
func NewFilterInfo() *FilterInfo {
	return &FilterInfo{NullAllowed: true}
}

// ForbidNull records an is_not_null predicate against this column.
func (f *FilterInfo) ForbidNull() {
	f.NullAllowed = false
	f.Initialized = true
}

// ensurePosition guarantees at least one (lower, upper) slot exists,
// without disturbing an OR-established position already in progress.
func (f *FilterInfo) ensurePosition() {
	if len(f.LowerBounds) == 0 {
		f.newPosition()
	}
}

// newPosition appends a fresh, doubly-unbounded slot to both bound
// vectors in lockstep, establishing a new OR-branch position. Called once
// per OR child before that child is applied.
func (f *FilterInfo) newPosition() {
	f.LowerBounds = append(f.LowerBounds, Value{})
	f.LowerHasBound = append(f.LowerHasBound, false)
	f.LowerExclusives = append(f.LowerExclusives, false)
	f.UpperBounds = append(f.UpperBounds, Value{})
	f.UpperHasBound = append(f.UpperHasBound, false)
	f.UpperExclusives = append(f.UpperExclusives, false)
}

// SetLower sets the lower bound of the current position (the last one
// established by newPosition, or position 0 for a plain AND-conjunct).
func (f *FilterInfo) SetLower(v Value, exclusive bool) {
	f.ensurePosition()
	i := len(f.LowerBounds) - 1
	f.LowerBounds[i] = v
	f.LowerHasBound[i] = true
	f.LowerExclusives[i] = exclusive
	f.Initialized = true
}

// SetUpper sets the upper bound of the current position.
func (f *FilterInfo) SetUpper(v Value, exclusive bool) {
	f.ensurePosition()
	i := len(f.UpperBounds) - 1
	f.UpperBounds[i] = v
	f.UpperHasBound[i] = true
	f.UpperExclusives[i] = exclusive
	f.Initialized = true
}

// SetNotValue records a single not-equal constraint. A column may carry at
// most one; callers (the decomposer's notEqualCols bookkeeping) are
// responsible for enforcing that before this is invoked twice.
func (f *FilterInfo) SetNotValue(v Value) {
	f.NotValue = v
	f.HasNotValue = true
	f.Initialized = true
}

// AppendValue appends one literal to the IN value set.
func (f *FilterInfo) AppendValue(v Value) {
	f.Values = append(f.Values, v)
	f.Initialized = true
}

// HasAnyBound reports whether any lower or upper bound position was ever
// set (used to enforce the IN/not-value exclusivity invariants at
// materialization time).
func (f *FilterInfo) HasAnyBound() bool {
	for _, has := range f.LowerHasBound {
		if has {
			return true
		}
	}
	for _, has := range f.UpperHasBound {
		if has {
			return true
		}
	}
	return false
}
