package fnmap_test

import (
	"testing"

	pb "github.com/substrait-io/substrait-protobuf/go/substraitpb/extensions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deegue/velox-intel/pkg/fnmap"
	"github.com/Deegue/velox-intel/pkg/sptest"
)

func TestShortNameAndArgTypes(t *testing.T) {
	m := fnmap.Build([]*pb.SimpleExtensionDeclaration{sptest.Extension(1, "gte:i64,i64")})

	short, err := m.ShortName(1)
	require.NoError(t, err)
	assert.Equal(t, "gte", short)

	args, err := m.ArgTypes(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"i64", "i64"}, args)
}

func TestSpec_UnknownAnchor(t *testing.T) {
	m := fnmap.Build(nil)
	_, err := m.Spec(99)
	assert.Error(t, err)
}

func TestShortName_NoColonSuffix(t *testing.T) {
	m := fnmap.Build([]*pb.SimpleExtensionDeclaration{sptest.Extension(2, "noargs")})

	short, err := m.ShortName(2)
	require.NoError(t, err)
	assert.Equal(t, "noargs", short)

	args, err := m.ArgTypes(2)
	require.NoError(t, err)
	assert.Nil(t, args)
}

func TestBuild_SkipsNonFunctionExtensions(t *testing.T) {
	m := fnmap.Build([]*pb.SimpleExtensionDeclaration{{}})
	_, err := m.Spec(1)
	assert.Error(t, err)
}
