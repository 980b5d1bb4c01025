// Package column implements the typed, nullable, columnar value model this
// engine validates: a closed set of column kinds (int, float, string, bool),
// each backed by a dense value array and a validity bitmap, plus the
// element-wise kernels and aggregates that operate over them.
//
// Each column is a dense primitive array paired with a bitmap.Bitmap
// validity mask, rather than per-cell tagged values, so that null
// propagation is a cheap bitmap check and reductions are a masked linear
// pass.
package column

import (
	"errors"
	"fmt"
	"math"

	"github.com/okonkwo-labs/dqcheck/src/bitmap"
)

// errKindMismatch is returned when a kernel is invoked against a column of
// the wrong kind (a caller bug, not a data problem).
var errKindMismatch = errors.New("operation not applicable to this column kind")

// defaultCap is the initial capacity of a string column's byte buffer while
// it is being built, avoiding repeated reallocation for typically-sized inputs.
const defaultCap = 512

// Column is an immutable, ordered, nullable sequence of values of one
// declared Dtype. Once constructed, no method mutates it.
type Column struct {
	kind        Dtype
	length      int
	nullability *bitmap.Bitmap // bit set => cell at that position is null

	ints    []int64
	floats  []float64
	bools   *bitmap.Bitmap // bit set => cell is true (only meaningful kind == DtypeBool)
	strData []byte
	strOffs []uint32 // len == length+1, strOffs[i]:strOffs[i+1] bounds the ith value
}

// Kind returns the declared element type of this column.
func (c *Column) Kind() Dtype { return c.kind }

// Len returns the number of rows in this column.
func (c *Column) Len() int { return c.length }

// IsEmpty reports whether the column has zero rows.
func (c *Column) IsEmpty() bool { return c.length == 0 }

// IsNull returns, for every row, whether that cell holds no value.
func (c *Column) IsNull() []bool {
	out := make([]bool, c.length)
	if c.nullability == nil {
		return out
	}
	for j := range out {
		out[j] = c.nullability.Get(j)
	}
	return out
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	return c.nullability.Count()
}

// NotNullCount returns the number of non-null cells.
func (c *Column) NotNullCount() int {
	return c.length - c.NullCount()
}

// canonicalNaNBits is the bit pattern every NaN value is mapped to before
// being used as a uniqueness key. Go's math.NaN() itself is not the only
// possible NaN bit pattern (arithmetic like 0.0/0.0 can produce a different
// payload), so without this canonicalisation two "equal" NaNs could be
// counted as distinct. Treating all NaNs as one interchangeable value is
// what makes unique_count total over floats.
var canonicalNaNBits = math.Float64bits(math.NaN())

func floatUniqueKey(v float64) uint64 {
	if math.IsNaN(v) {
		return canonicalNaNBits
	}
	return math.Float64bits(v)
}

// UniqueCount returns the number of distinct non-null values.
func (c *Column) UniqueCount() int {
	switch c.kind {
	case DtypeInt:
		seen := make(map[int64]struct{}, len(c.ints))
		for j, v := range c.ints {
			if c.nullability != nil && c.nullability.Get(j) {
				continue
			}
			seen[v] = struct{}{}
		}
		return len(seen)
	case DtypeFloat:
		seen := make(map[uint64]struct{}, len(c.floats))
		for j, v := range c.floats {
			if c.nullability != nil && c.nullability.Get(j) {
				continue
			}
			seen[floatUniqueKey(v)] = struct{}{}
		}
		return len(seen)
	case DtypeString:
		seen := make(map[string]struct{}, c.length)
		for j := 0; j < c.length; j++ {
			if c.nullability != nil && c.nullability.Get(j) {
				continue
			}
			seen[c.nthString(j)] = struct{}{}
		}
		return len(seen)
	case DtypeBool:
		sawTrue, sawFalse := false, false
		for j := 0; j < c.length; j++ {
			if c.nullability != nil && c.nullability.Get(j) {
				continue
			}
			if c.bools.Get(j) {
				sawTrue = true
			} else {
				sawFalse = true
			}
		}
		n := 0
		if sawTrue {
			n++
		}
		if sawFalse {
			n++
		}
		return n
	default:
		return 0
	}
}

// DuplicatesCount returns not_null_count - unique_count.
func (c *Column) DuplicatesCount() int {
	return c.NotNullCount() - c.UniqueCount()
}

func (c *Column) nthString(j int) string {
	return string(c.strData[c.strOffs[j]:c.strOffs[j+1]])
}

// NewIntColumn builds an Integer column. A nil element denotes null.
func NewIntColumn(values []*int64) *Column {
	c := &Column{kind: DtypeInt, length: len(values), ints: make([]int64, len(values))}
	for j, v := range values {
		if v == nil {
			c.setNull(j)
			continue
		}
		c.ints[j] = *v
	}
	return c
}

// NewFloatColumn builds a Floating column. A nil element denotes null.
func NewFloatColumn(values []*float64) *Column {
	c := &Column{kind: DtypeFloat, length: len(values), floats: make([]float64, len(values))}
	for j, v := range values {
		if v == nil {
			c.setNull(j)
			continue
		}
		c.floats[j] = *v
	}
	return c
}

// NewStringColumn builds a String column. A nil element denotes null.
func NewStringColumn(values []*string) *Column {
	c := &Column{kind: DtypeString, length: len(values)}
	c.strData = make([]byte, 0, defaultCap)
	c.strOffs = make([]uint32, 1, len(values)+1)
	c.strOffs[0] = 0
	for j, v := range values {
		if v == nil {
			c.setNull(j)
			c.strOffs = append(c.strOffs, c.strOffs[len(c.strOffs)-1])
			continue
		}
		c.strData = append(c.strData, *v...)
		c.strOffs = append(c.strOffs, uint32(len(c.strData)))
	}
	return c
}

// NewBoolColumn builds a Boolean column. A nil element denotes null.
func NewBoolColumn(values []*bool) *Column {
	c := &Column{kind: DtypeBool, length: len(values), bools: bitmap.NewBitmap(len(values))}
	for j, v := range values {
		if v == nil {
			c.setNull(j)
			continue
		}
		c.bools.Set(j, *v)
	}
	return c
}

func (c *Column) setNull(j int) {
	if c.nullability == nil {
		c.nullability = bitmap.NewBitmap(c.length)
	}
	c.nullability.Set(j, true)
}

// typeError builds the error a kernel raises when invoked on the wrong kind.
func (c *Column) typeError(op string) error {
	return fmt.Errorf("%w: %s is not defined on %s columns", errKindMismatch, op, c.kind)
}
