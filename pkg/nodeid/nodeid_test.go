package nodeid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Deegue/velox-intel/pkg/nodeid"
)

func TestAllocator_SequentialFromZero(t *testing.T) {
	a := nodeid.NewAllocator()
	assert.Equal(t, nodeid.ID("0"), a.Next())
	assert.Equal(t, nodeid.ID("1"), a.Next())
	assert.Equal(t, nodeid.ID("2"), a.Next())
}

func TestAllocator_IndependentAllocators(t *testing.T) {
	a := nodeid.NewAllocator()
	b := nodeid.NewAllocator()
	a.Next()
	a.Next()
	assert.Equal(t, nodeid.ID("0"), b.Next())
}
