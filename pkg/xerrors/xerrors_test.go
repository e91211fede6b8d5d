package xerrors_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Deegue/velox-intel/pkg/xerrors"
)

func TestInvalidInputf_Marked(t *testing.T) {
	err := xerrors.InvalidInputf("bad field %d", 3)
	assert.True(t, errors.Is(err, xerrors.InvalidInput))
	assert.False(t, errors.Is(err, xerrors.Unsupported))
	assert.Contains(t, err.Error(), "bad field 3")
}

func TestUnsupportedf_Marked(t *testing.T) {
	err := xerrors.Unsupportedf("rel kind %s", "Set")
	assert.True(t, errors.Is(err, xerrors.Unsupported))
}

func TestParseErrorf_WrapsCause(t *testing.T) {
	cause := errors.New("strconv: invalid syntax")
	err := xerrors.ParseErrorf(cause, "bad stream suffix %q", "abc")
	assert.True(t, errors.Is(err, xerrors.ParseError))
	assert.Contains(t, err.Error(), "bad stream suffix")
}
