package column

import "strconv"

// Scalar is a single typed literal, used where a Constraint or kernel call
// needs to carry a value whose kind isn't known until it is matched against
// a column (e.g. the member list of an is_in constraint).
type Scalar struct {
	kind Dtype
	i    int64
	f    float64
	s    string
}

// IntScalar wraps an Integer literal.
func IntScalar(v int64) Scalar { return Scalar{kind: DtypeInt, i: v} }

// FloatScalar wraps a Floating literal.
func FloatScalar(v float64) Scalar { return Scalar{kind: DtypeFloat, f: v} }

// StringScalar wraps a String literal.
func StringScalar(v string) Scalar { return Scalar{kind: DtypeString, s: v} }

// Kind reports the scalar's declared type.
func (s Scalar) Kind() Dtype { return s.kind }

// String renders the scalar's value in its own kind's textual form.
func (s Scalar) String() string {
	switch s.kind {
	case DtypeInt:
		return strconv.FormatInt(s.i, 10)
	case DtypeFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case DtypeString:
		return s.s
	default:
		return ""
	}
}
