package filter_test

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"
	pbext "github.com/substrait-io/substrait-protobuf/go/substraitpb/extensions"

	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/fnmap"
	"github.com/Deegue/velox-intel/pkg/sptest"
	"github.com/Deegue/velox-intel/pkg/types"
	"github.com/Deegue/velox-intel/pkg/xerrors"
)

// fakeExpr is a minimal exprconv.Expr recording the short function name (or
// "literal") it was built from, enough to assert on residual
// shape without a real scalar-expression converter.
type fakeExpr struct {
	text string
	typ  types.Type
}

func (f fakeExpr) Type() types.Type { return f.typ }
func (f fakeExpr) String() string   { return f.text }

// fakeConverter turns a pb.Expression into a fakeExpr describing its
// top-level scalar function shape, sufficient for the residual-composition
// assertions this package's tests need.
type fakeConverter struct {
	fnMap *fnmap.Map
}

func (c *fakeConverter) Convert(e *pb.Expression, input *types.RowType) (exprconv.Expr, error) {
	if sf := e.GetScalarFunction(); sf != nil {
		name, err := c.fnMap.ShortName(sf.GetFunctionReference())
		if err != nil {
			return nil, err
		}
		return fakeExpr{text: name, typ: types.NewBasic(types.KindBoolean, "bool")}, nil
	}
	if lit := e.GetLiteral(); lit != nil {
		return fakeExpr{text: "literal", typ: types.NewBasic(types.KindBoolean, "bool")}, nil
	}
	return nil, xerrors.Unsupportedf("fakeConverter cannot convert %T", e.GetRexType())
}

func (c *fakeConverter) ConvertLiteral(lit *pb.Expression_Literal, target types.Type) (exprconv.Expr, error) {
	return fakeExpr{text: "literal", typ: target}, nil
}

func (c *fakeConverter) ConjunctAll(exprs []exprconv.Expr) exprconv.Expr {
	if len(exprs) == 0 {
		return nil
	}
	text := exprs[0].String()
	for _, e := range exprs[1:] {
		text += " and " + e.String()
	}
	return fakeExpr{text: text, typ: types.NewBasic(types.KindBoolean, "bool")}
}

// anchors used across this package's tests.
const (
	anchorIsNotNull = 1
	anchorGte       = 2
	anchorGt        = 3
	anchorLte       = 4
	anchorLt        = 5
	anchorEqual     = 6
	anchorIn        = 7
	anchorAnd       = 8
	anchorOr        = 9
	anchorNot       = 10
	anchorSubstr    = 11
)

func testFnMap() *fnmap.Map {
	return fnmap.Build([]*pbext.SimpleExtensionDeclaration{
		sptest.Extension(anchorIsNotNull, "is_not_null:any"),
		sptest.Extension(anchorGte, "gte:i64_i64"),
		sptest.Extension(anchorGt, "gt:i64_i64"),
		sptest.Extension(anchorLte, "lte:i64_i64"),
		sptest.Extension(anchorLt, "lt:i64_i64"),
		sptest.Extension(anchorEqual, "equal:i64_i64"),
		sptest.Extension(anchorIn, "in:i64"),
		sptest.Extension(anchorAnd, "and:bool_bool"),
		sptest.Extension(anchorOr, "or:bool_bool"),
		sptest.Extension(anchorNot, "not:bool"),
		sptest.Extension(anchorSubstr, "substr:str"),
	})
}

func i64RowType() *types.RowType {
	return types.NewRowType(
		[]string{"a", "b"},
		[]types.Type{types.NewBasic(types.KindInt64, "bigint"), types.NewBasic(types.KindInt64, "bigint")},
	)
}
