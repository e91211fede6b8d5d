// Package xerrors defines the fatal error taxonomy shared by the filter and
// convert packages: InvalidInput, Unsupported, and ParseError. All three are
// cockroachdb/errors sentinels attached via errors.Mark so callers can
// distinguish them with errors.Is without parsing message text.
package xerrors

import "github.com/cockroachdb/errors"

var (
	// InvalidInput marks a malformed Substrait plan: a missing required
	// child Rel, an absent base schema, an empty local_files list, a
	// non-function predicate where a scalar function was required, a join
	// condition outside the and/eq grammar, or an IN without a field-typed
	// first argument.
	InvalidInput = errors.New("invalid substrait input")

	// Unsupported marks a well-formed but unhandled shape: an unknown Rel
	// kind, an unmapped aggregate phase, a column type outside
	// {int32,int64,double,bytes} during filter synthesis, or a virtual-table
	// literal that isn't a constant scalar.
	Unsupported = errors.New("unsupported substrait construct")

	// ParseError marks a malformed literal embedded in the plan, currently
	// only the non-integer suffix of an "iterator:<idx>" sentinel.
	ParseError = errors.New("substrait parse error")
)

// InvalidInputf builds an InvalidInput error with a formatted message.
func InvalidInputf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), InvalidInput)
}

// Unsupportedf builds an Unsupported error with a formatted message.
func Unsupportedf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), Unsupported)
}

// ParseErrorf builds a ParseError wrapping an underlying parse failure.
func ParseErrorf(cause error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(cause, format, args...), ParseError)
}
