// Package exprconv declares the contract this module needs from the
// scalar-expression converter and memory pool. Both are explicitly external
// collaborators (the scalar expression converter and the engine's memory
// allocator are out of scope for this module); RelConverter is only ever
// handed implementations of these interfaces, never a concrete type it
// owns.
package exprconv

import pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

import "github.com/Deegue/velox-intel/pkg/types"

// Expr is an opaque, engine-typed scalar expression produced by a
// Converter. RelConverter never inspects its internals; it only threads
// Exprs between plan nodes and, for residual filters, combines them with
// ConjunctAll.
type Expr interface {
	// Type returns the expression's engine type, needed by Project to
	// build its output RowType.
	Type() types.Type
	String() string
}

// MemoryPool is the engine's memory allocator handle, injected by the
// caller and used only to materialize Values-node row vectors. The
// converter never allocates through it for any other purpose.
type MemoryPool interface {
	Name() string
}

// Converter turns Substrait expression nodes into engine-typed Exprs,
// resolving scalar function references through a fnmap.Map it was built
// with. It is an external collaborator, out of scope for this module,
// which depends only on this interface.
type Converter interface {
	// Convert translates e in the context of input's output schema (for
	// resolving field references) into an engine Expr.
	Convert(e *pb.Expression, input *types.RowType) (Expr, error)

	// ConvertLiteral translates a single literal value (as found in a
	// virtual table row) into a constant Expr of the given target type.
	// It returns an error if lit does not represent a constant scalar.
	ConvertLiteral(lit *pb.Expression_Literal, target types.Type) (Expr, error)

	// ConjunctAll combines exprs with AND into a single Expr, in the order
	// given. It returns nil if exprs is empty ("no residual").
	ConjunctAll(exprs []Expr) Expr
}
