package column

import "math"

// IsIn reports, per cell, whether the value equals any member of values.
// Defined on Integer, Floating, and String columns; a member whose kind
// does not match the column's kind can never be equal to any cell and is
// simply skipped.
func (c *Column) IsIn(values []Scalar) (*NullableBools, error) {
	if c.kind != DtypeInt && c.kind != DtypeFloat && c.kind != DtypeString {
		return nil, c.typeError("is_in")
	}
	ints := make(map[int64]struct{})
	floats := make(map[float64]struct{})
	strs := make(map[string]struct{})
	for _, m := range values {
		switch m.kind {
		case DtypeInt:
			ints[m.i] = struct{}{}
		case DtypeFloat:
			floats[m.f] = struct{}{}
		case DtypeString:
			strs[m.s] = struct{}{}
		}
	}

	out := newNullableBools(c.length)
	for j := 0; j < c.length; j++ {
		if c.nullability != nil && c.nullability.Get(j) {
			out.setNull(j)
			continue
		}
		var hit bool
		switch c.kind {
		case DtypeInt:
			_, hit = ints[c.ints[j]]
		case DtypeFloat:
			_, hit = floats[c.floats[j]]
		case DtypeString:
			_, hit = strs[c.nthString(j)]
		}
		out.setTrue(j, hit)
	}
	return out, nil
}

// uniqueKey reduces the jth cell to a comparable key, used to group
// occurrences for IsUnique. Floats are grouped by bit pattern rather than
// IEEE equality, so that repeated NaN payloads are still treated as one
// recurring value instead of each colliding with none (Go's map equality
// never matches a NaN key against itself).
func (c *Column) uniqueKey(j int) interface{} {
	switch c.kind {
	case DtypeInt:
		return c.ints[j]
	case DtypeFloat:
		return math.Float64bits(c.floats[j])
	case DtypeString:
		return c.nthString(j)
	case DtypeBool:
		return c.bools.Get(j)
	default:
		return nil
	}
}

// IsUnique reports, per cell, whether its non-null value occurs exactly
// once among the column's non-null cells. Null cells stay null.
func (c *Column) IsUnique() *NullableBools {
	counts := make(map[interface{}]int, c.length)
	for j := 0; j < c.length; j++ {
		if c.nullability != nil && c.nullability.Get(j) {
			continue
		}
		counts[c.uniqueKey(j)]++
	}
	out := newNullableBools(c.length)
	for j := 0; j < c.length; j++ {
		if c.nullability != nil && c.nullability.Get(j) {
			out.setNull(j)
			continue
		}
		out.setTrue(j, counts[c.uniqueKey(j)] == 1)
	}
	return out
}

// NotNull reports, per cell, whether it holds a value. Unlike every other
// kernel, this one does not propagate null — it tests for it, so its
// result never contains a null position.
func (c *Column) NotNull() *NullableBools {
	out := newNullableBools(c.length)
	for j := 0; j < c.length; j++ {
		isNull := c.nullability != nil && c.nullability.Get(j)
		out.setTrue(j, !isNull)
	}
	return out
}
