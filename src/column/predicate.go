package column

import "github.com/okonkwo-labs/dqcheck/src/bitmap"

// NullableBools is the result of an element-wise predicate: one of
// true, false, or null per position. It is the three-valued-logic
// encoding the design favours: a truth bitmap and a separate validity
// bitmap, rather than a dense byte per element, so that an
// all-true or all-null result costs no more than the input column did.
type NullableBools struct {
	length int
	truth  *bitmap.Bitmap
	nulls  *bitmap.Bitmap
}

func newNullableBools(n int) *NullableBools {
	return &NullableBools{length: n, truth: bitmap.NewBitmap(n), nulls: bitmap.NewBitmap(n)}
}

func (p *NullableBools) setTrue(j int, v bool) { p.truth.Set(j, v) }
func (p *NullableBools) setNull(j int)          { p.nulls.Set(j, true) }

// Len returns the number of positions, equal to the source column's length.
func (p *NullableBools) Len() int { return p.length }

// At reports the value at position j: (value, isNull). When isNull is
// true, value is meaningless.
func (p *NullableBools) At(j int) (bool, bool) {
	if p.nulls.Get(j) {
		return false, true
	}
	return p.truth.Get(j), false
}

// Values renders the sequence as a pointer slice, nil meaning null. This
// is the form host-facing equality checks (and the reference scenarios in
// the testable-properties section) compare against.
func (p *NullableBools) Values() []*bool {
	out := make([]*bool, p.length)
	for j := 0; j < p.length; j++ {
		v, isNull := p.At(j)
		if isNull {
			continue
		}
		val := v
		out[j] = &val
	}
	return out
}

// FailedCount returns the number of positions whose value is false,
// non-null. Null positions are skipped, not counted as failures.
func (p *NullableBools) FailedCount() int {
	n := 0
	for j := 0; j < p.length; j++ {
		v, isNull := p.At(j)
		if isNull {
			continue
		}
		if !v {
			n++
		}
	}
	return n
}

// NullCount returns the number of null positions.
func (p *NullableBools) NullCount() int {
	return p.nulls.Count()
}

// NullableInts is the result of a kernel that produces an optional
// integer per position (currently just str_length).
type NullableInts struct {
	length int
	values []int64
	nulls  *bitmap.Bitmap
}

func newNullableInts(n int) *NullableInts {
	return &NullableInts{length: n, values: make([]int64, n), nulls: bitmap.NewBitmap(n)}
}

func (p *NullableInts) setNull(j int) { p.nulls.Set(j, true) }

// Len returns the number of positions.
func (p *NullableInts) Len() int { return p.length }

// At reports the value at position j: (value, isNull).
func (p *NullableInts) At(j int) (int64, bool) {
	if p.nulls.Get(j) {
		return 0, true
	}
	return p.values[j], false
}

// Values renders the sequence as a pointer slice, nil meaning null.
func (p *NullableInts) Values() []*int64 {
	out := make([]*int64, p.length)
	for j := 0; j < p.length; j++ {
		v, isNull := p.At(j)
		if isNull {
			continue
		}
		val := v
		out[j] = &val
	}
	return out
}
