package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Deegue/velox-intel/pkg/split"
)

func TestFormatFromTag(t *testing.T) {
	cases := []struct {
		tag  uint32
		want split.Format
	}{
		{1, split.FormatParquet},
		{2, split.FormatDWRF},
		{3, split.FormatDWRF},
		{4, split.FormatUnknown},
		{0, split.FormatUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, split.FormatFromTag(c.tag))
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "PARQUET", split.FormatParquet.String())
	assert.Equal(t, "DWRF", split.FormatDWRF.String())
	assert.Equal(t, "UNKNOWN", split.FormatUnknown.String())
}
