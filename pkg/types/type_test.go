package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Deegue/velox-intel/pkg/types"
)

func TestKind_String(t *testing.T) {
	cases := map[types.Kind]string{
		types.KindInt32:   "int32",
		types.KindInt64:   "int64",
		types.KindDouble:  "double",
		types.KindBytes:   "bytes",
		types.KindBoolean: "boolean",
		types.KindOther:   "other",
		types.KindUnknown: "unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestBasic(t *testing.T) {
	b := types.NewBasic(types.KindInt64, "bigint")
	assert.Equal(t, types.KindInt64, b.Kind())
	assert.Equal(t, "bigint", b.String())
}
