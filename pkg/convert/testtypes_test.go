package convert_test

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/exprconv"
	"github.com/Deegue/velox-intel/pkg/types"
	"github.com/Deegue/velox-intel/pkg/xerrors"
)

// fakeTypeMapper resolves the handful of Substrait type tokens these tests
// exercise; a production caller injects a richer TypeMapper backed by the
// engine's real type registry.
type fakeTypeMapper struct{}

func (fakeTypeMapper) Map(t *pb.Type) (types.Type, error) {
	switch t.GetKind().(type) {
	case *pb.Type_I64_:
		return types.NewBasic(types.KindInt64, "bigint"), nil
	case *pb.Type_Fp64_:
		return types.NewBasic(types.KindDouble, "double"), nil
	case *pb.Type_String_:
		return types.NewBasic(types.KindBytes, "varchar"), nil
	case *pb.Type_Bool_:
		return types.NewBasic(types.KindBoolean, "boolean"), nil
	default:
		return nil, xerrors.Unsupportedf("fakeTypeMapper cannot map %T", t.GetKind())
	}
}

func i64Type() *pb.Type {
	return &pb.Type{Kind: &pb.Type_I64_{I64: &pb.Type_I64{Nullability: pb.Type_NULLABILITY_NULLABLE}}}
}

func fp64Type() *pb.Type {
	return &pb.Type{Kind: &pb.Type_Fp64_{Fp64: &pb.Type_Fp64{Nullability: pb.Type_NULLABILITY_NULLABLE}}}
}

// fakeConverter is a minimal exprconv.Converter: field references resolve
// to a typed placeholder Expr carrying the referenced column's type,
// literals resolve to a typed constant placeholder, and ConjunctAll joins
// their String() forms with " and ".
type fakeConverter struct{}

type fakeExpr struct {
	text string
	typ  types.Type
}

func (f fakeExpr) Type() types.Type { return f.typ }
func (f fakeExpr) String() string   { return f.text }

func (fakeConverter) Convert(e *pb.Expression, input *types.RowType) (exprconv.Expr, error) {
	if sel := e.GetSelection(); sel != nil {
		idx := int(sel.GetDirectReference().GetStructField().GetField())
		if idx < 0 || idx >= input.Size() {
			return nil, xerrors.InvalidInputf("field reference %d out of range", idx)
		}
		return fakeExpr{text: input.NameAt(idx), typ: input.TypeAt(idx)}, nil
	}
	if lit := e.GetLiteral(); lit != nil {
		return fakeConverter{}.ConvertLiteral(lit, types.NewBasic(types.KindOther, "literal"))
	}
	if sf := e.GetScalarFunction(); sf != nil {
		return fakeExpr{text: "expr", typ: types.NewBasic(types.KindBoolean, "boolean")}, nil
	}
	return nil, xerrors.Unsupportedf("fakeConverter cannot convert %T", e.GetRexType())
}

func (fakeConverter) ConvertLiteral(lit *pb.Expression_Literal, target types.Type) (exprconv.Expr, error) {
	switch v := lit.GetLiteralType().(type) {
	case *pb.Expression_Literal_I64:
		return fakeExpr{text: "i64", typ: target}, nil
	case *pb.Expression_Literal_Fp64:
		return fakeExpr{text: "fp64", typ: target}, nil
	case *pb.Expression_Literal_String_:
		return fakeExpr{text: v.String_, typ: target}, nil
	default:
		return nil, xerrors.Unsupportedf("fakeConverter cannot convert literal %T", v)
	}
}

// fakePool is a stand-in exprconv.MemoryPool that hands back a fixed name,
// letting tests assert that RelConverter actually reads it.
type fakePool struct{}

func (fakePool) Name() string { return "test-pool" }

func (fakeConverter) ConjunctAll(exprs []exprconv.Expr) exprconv.Expr {
	if len(exprs) == 0 {
		return nil
	}
	text := exprs[0].String()
	for _, e := range exprs[1:] {
		text += " and " + e.String()
	}
	return fakeExpr{text: text, typ: types.NewBasic(types.KindBoolean, "boolean")}
}
