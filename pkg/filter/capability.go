package filter

import "github.com/Deegue/velox-intel/pkg/split"

// parquetAllowed lists the filter kinds Parquet's scan layer can evaluate.
// Notably absent: IsNotNull, IsNull, BoolValue, FloatRange, and every
// MultiRange variant (BigintMultiRange included) — a NOT(equal) pushdown,
// and an OR pushdown that synthesizes a MultiRange, against a Parquet scan
// is therefore demoted to residual.
var parquetAllowed = map[FilterKind]bool{
	KindBigintRange: true,
	KindDoubleRange: true,
	KindBytesRange:  true,
	KindBytesValues: true,
	KindBigintValues: true,
}

// FormatAllows reports whether every filter in subfield is evaluable by
// format's scan layer. For any format other than Parquet there is no
// gating. When it returns false, the caller must discard the entire
// pushable set — not just the offending filter — and rebuild the residual
// from the full flattened predicate list, not the union of the previous
// subfield and remaining lists. This exact-full-flatten-rebuild semantics
// is a deliberately preserved source ambiguity: discarding one
// unsupported kind clears the whole set, including filters that would
// individually have been fine.
func FormatAllows(format split.Format, subfield map[int]TypedFilter) bool {
	if format != split.FormatParquet {
		return true
	}
	for _, f := range subfield {
		if !parquetAllowed[f.Kind()] {
			return false
		}
	}
	return true
}
