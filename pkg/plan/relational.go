package plan

import (
	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/nodeid"
	"github.com/Deegue/velox-intel/pkg/types"
)

// Filter evaluates Predicate above its single input; it never changes the
// input's schema.
type Filter struct {
	base
	Predicate exprconv.Expr
}

func NewFilter(id nodeid.ID, input Node, predicate exprconv.Expr) *Filter {
	return &Filter{base: base{id: id, outputType: input.OutputType(), sources: []Node{input}}, Predicate: predicate}
}

// Project evaluates Expressions above its single input, producing Names as
// the generated output column names, one per expression.
type Project struct {
	base
	Expressions []exprconv.Expr
	Names       []string
}

func NewProject(id nodeid.ID, outputType *types.RowType, input Node, expressions []exprconv.Expr, names []string) *Project {
	return &Project{base: base{id: id, outputType: outputType, sources: []Node{input}}, Expressions: expressions, Names: names}
}

// AggPhase is the aggregation execution phase, derived from the first
// measure's Substrait phase (or forced to Single with no measures).
type AggPhase int

const (
	PhasePartial AggPhase = iota
	PhaseIntermediate
	PhaseFinal
	PhaseSingle
)

func (p AggPhase) String() string {
	switch p {
	case PhasePartial:
		return "Partial"
	case PhaseIntermediate:
		return "Intermediate"
	case PhaseFinal:
		return "Final"
	default:
		return "Single"
	}
}

// Measure is one aggregate function application: its short name, the
// input-column ordinals it reads, and its generated output column name.
type Measure struct {
	FuncName   string
	Args       []int
	OutputName string
}

// Aggregation groups by GroupingKeys (column ordinals into the input) and
// evaluates Measures over each group, in the declared phase.
type Aggregation struct {
	base
	GroupingKeys []int
	Measures     []Measure
	Phase        AggPhase
}

func NewAggregation(id nodeid.ID, outputType *types.RowType, input Node, groupingKeys []int, measures []Measure, phase AggPhase) *Aggregation {
	return &Aggregation{
		base:         base{id: id, outputType: outputType, sources: []Node{input}},
		GroupingKeys: groupingKeys,
		Measures:     measures,
		Phase:        phase,
	}
}

// JoinType is the engine-side join kind a Substrait JoinRel.JoinType maps
// to. Only inner/full/left/right/left-semi/anti exist; there is no
// right-semi or null-aware variant.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinFull
	JoinLeft
	JoinRight
	JoinLeftSemi
	JoinAnti
)

func (t JoinType) String() string {
	switch t {
	case JoinInner:
		return "inner"
	case JoinFull:
		return "full"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinLeftSemi:
		return "leftSemi"
	case JoinAnti:
		return "anti"
	default:
		return "unknown"
	}
}

// HashJoin joins Sources()[0] (left) and Sources()[1] (right) on
// LeftKeys[i] = RightKeys[i] equalities, with output schema left ∥ right,
// plus an optional post-join Filter.
type HashJoin struct {
	base
	Type      JoinType
	LeftKeys  []int
	RightKeys []int
	Filter    exprconv.Expr
}

func NewHashJoin(id nodeid.ID, outputType *types.RowType, left, right Node, joinType JoinType, leftKeys, rightKeys []int, postJoinFilter exprconv.Expr) *HashJoin {
	return &HashJoin{
		base:      base{id: id, outputType: outputType, sources: []Node{left, right}},
		Type:      joinType,
		LeftKeys:  leftKeys,
		RightKeys: rightKeys,
		Filter:    postJoinFilter,
	}
}
