package logutil_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/logtags"
	"github.com/stretchr/testify/assert"

	"github.com/Deegue/velox-intel/pkg/logutil"
)

func TestWithTags_AccumulatesPairs(t *testing.T) {
	ctx := logutil.WithTags(context.Background(), "conv", "toPlan")
	ctx = logutil.WithTags(ctx, "rel", "read")

	buf := logtags.FromContext(ctx)
	assert.Equal(t, 2, buf.Len())
}

func TestWithVerbosity_ReturnsIndependentCopy(t *testing.T) {
	base := logutil.New()
	verbose := base.WithVerbosity(2)

	assert.NotSame(t, base, verbose)
	// Calling VEventf/Infof on either must not panic regardless of ctx tags.
	ctx := logutil.WithTags(context.Background(), "k", "v")
	base.VEventf(ctx, 2, "suppressed at level %d", 2)
	verbose.VEventf(ctx, 2, "emitted at level %d", 2)
	base.Infof(ctx, "always emitted")
}
