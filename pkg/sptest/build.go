// Package sptest builds small Substrait expression and extension fragments
// for tests across this module, hand-assembling pb.Expression trees
// directly rather than parsing them from text.
package sptest

import (
	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"
	pbext "github.com/substrait-io/substrait-protobuf/go/substraitpb/extensions"
)

// Field returns a direct struct-field reference to column idx.
func Field(idx int) *pb.Expression {
	return &pb.Expression{
		RexType: &pb.Expression_Selection{
			Selection: &pb.Expression_FieldReference{
				ReferenceType: &pb.Expression_FieldReference_DirectReference{
					DirectReference: &pb.Expression_ReferenceSegment{
						ReferenceType: &pb.Expression_ReferenceSegment_StructField_{
							StructField: &pb.Expression_ReferenceSegment_StructField{Field: int32(idx)},
						},
					},
				},
			},
		},
	}
}

// I64 returns an int64 literal expression.
func I64(v int64) *pb.Expression {
	return &pb.Expression{RexType: &pb.Expression_Literal_{Literal: &pb.Expression_Literal{
		LiteralType: &pb.Expression_Literal_I64{I64: v},
	}}}
}

// F64 returns a double literal expression.
func F64(v float64) *pb.Expression {
	return &pb.Expression{RexType: &pb.Expression_Literal_{Literal: &pb.Expression_Literal{
		LiteralType: &pb.Expression_Literal_Fp64{Fp64: v},
	}}}
}

// Str returns a string literal expression.
func Str(v string) *pb.Expression {
	return &pb.Expression{RexType: &pb.Expression_Literal_{Literal: &pb.Expression_Literal{
		LiteralType: &pb.Expression_Literal_String_{String_: v},
	}}}
}

// Bool returns a boolean literal expression.
func Bool(v bool) *pb.Expression {
	return &pb.Expression{RexType: &pb.Expression_Literal_{Literal: &pb.Expression_Literal{
		LiteralType: &pb.Expression_Literal_Boolean{Boolean: v},
	}}}
}

// Call builds a scalar-function invocation against the given anchor with
// args as its argument expressions.
func Call(anchor uint32, args ...*pb.Expression) *pb.Expression {
	fnArgs := make([]*pb.FunctionArgument, len(args))
	for i, a := range args {
		fnArgs[i] = &pb.FunctionArgument{ArgType: &pb.FunctionArgument_Value{Value: a}}
	}
	return &pb.Expression{RexType: &pb.Expression_ScalarFunction_{ScalarFunction: &pb.Expression_ScalarFunction{
		FunctionReference: anchor,
		Arguments:         fnArgs,
	}}}
}

// Extension registers one function anchor -> spec string mapping, ready to
// pass to fnmap.Build.
func Extension(anchor uint32, spec string) *pbext.SimpleExtensionDeclaration {
	return &pbext.SimpleExtensionDeclaration{
		MappingType: &pbext.SimpleExtensionDeclaration_ExtensionFunction_{
			ExtensionFunction: &pbext.SimpleExtensionDeclaration_ExtensionFunction{
				FunctionAnchor: anchor,
				Name:           spec,
			},
		},
	}
}
