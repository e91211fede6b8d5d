package refutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb"

	"github.com/Deegue/velox-intel/pkg/refutil"
	"github.com/Deegue/velox-intel/pkg/sptest"
)

func TestColumnIndex_DirectStructField(t *testing.T) {
	idx, ok := refutil.ColumnIndex(sptest.Field(3).GetSelection())
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestColumnIndex_Nil(t *testing.T) {
	_, ok := refutil.ColumnIndex(nil)
	assert.False(t, ok)
}

func TestColumnIndex_NoDirectReference(t *testing.T) {
	fr := &pb.Expression_FieldReference{}
	_, ok := refutil.ColumnIndex(fr)
	assert.False(t, ok)
}
