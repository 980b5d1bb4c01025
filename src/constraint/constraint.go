// Package constraint defines the closed set of declarative predicates a
// Rule can bind to a column, and the column kinds each one is legal
// against. Constraints are pure values: they hold no reference to any
// column or dataset, only the scalar parameters needed to invoke a kernel
// once a column is resolved.
package constraint

import (
	"encoding/json"

	"github.com/okonkwo-labs/dqcheck/src/column"
)

// Kind identifies which predicate a Constraint carries. The set is fixed;
// adding a new kind means extending this file, not registering a plugin.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNotNull
	KindUnique
	KindGt
	KindGe
	KindLt
	KindLe
	KindEqual
	KindBetween
	KindContains
	KindStartsWith
	KindEndsWith
	KindMatchesRegex
	KindLengthBetween
	KindIsIn
)

func (k Kind) String() string {
	switch k {
	case KindNotNull:
		return "not_null"
	case KindUnique:
		return "unique"
	case KindGt:
		return "gt"
	case KindGe:
		return "ge"
	case KindLt:
		return "lt"
	case KindLe:
		return "le"
	case KindEqual:
		return "equal"
	case KindBetween:
		return "between"
	case KindContains:
		return "contains"
	case KindStartsWith:
		return "starts_with"
	case KindEndsWith:
		return "ends_with"
	case KindMatchesRegex:
		return "matches_regex"
	case KindLengthBetween:
		return "length_between"
	case KindIsIn:
		return "is_in"
	default:
		return "invalid"
	}
}

// Constraint is a tagged, parameterised predicate description. Exactly
// the fields relevant to its Kind are populated; the rest are zero.
type Constraint struct {
	kind Kind

	x      float64 // gt/ge/lt/le/equal
	lo, hi float64 // between
	loN    int     // length_between
	hiN    int
	s      string          // contains/starts_with/ends_with/matches_regex
	values []column.Scalar // is_in
}

// Kind reports which predicate this Constraint carries.
func (c Constraint) Kind() Kind { return c.kind }

// NotNull builds a not_null constraint: applicable to any column kind.
func NotNull() Constraint { return Constraint{kind: KindNotNull} }

// Unique builds a unique constraint: applicable to any column kind.
func Unique() Constraint { return Constraint{kind: KindUnique} }

// Gt builds a gt(x) constraint: Integer/Floating only.
func Gt(x float64) Constraint { return Constraint{kind: KindGt, x: x} }

// Ge builds a ge(x) constraint.
func Ge(x float64) Constraint { return Constraint{kind: KindGe, x: x} }

// Lt builds a lt(x) constraint.
func Lt(x float64) Constraint { return Constraint{kind: KindLt, x: x} }

// Le builds a le(x) constraint.
func Le(x float64) Constraint { return Constraint{kind: KindLe, x: x} }

// Equal builds an equal(x) numeric constraint.
func Equal(x float64) Constraint { return Constraint{kind: KindEqual, x: x} }

// Between builds a between(lo, hi) constraint, inclusive on both ends.
func Between(lo, hi float64) Constraint { return Constraint{kind: KindBetween, lo: lo, hi: hi} }

// Contains builds a contains(s) constraint: String only.
func Contains(s string) Constraint { return Constraint{kind: KindContains, s: s} }

// StartsWith builds a starts_with(s) constraint.
func StartsWith(s string) Constraint { return Constraint{kind: KindStartsWith, s: s} }

// EndsWith builds an ends_with(s) constraint.
func EndsWith(s string) Constraint { return Constraint{kind: KindEndsWith, s: s} }

// MatchesRegex builds a matches_regex(pat) constraint: String only.
func MatchesRegex(pat string) Constraint { return Constraint{kind: KindMatchesRegex, s: pat} }

// LengthBetween builds a length_between(lo, hi) constraint: String only.
func LengthBetween(lo, hi int) Constraint {
	return Constraint{kind: KindLengthBetween, loN: lo, hiN: hi}
}

// IsIn builds an is_in(values) membership constraint: Integer/Floating/String.
func IsIn(values []column.Scalar) Constraint {
	return Constraint{kind: KindIsIn, values: values}
}

// X returns the scalar parameter of gt/ge/lt/le/equal.
func (c Constraint) X() float64 { return c.x }

// Bounds returns the (lo, hi) parameters of between.
func (c Constraint) Bounds() (float64, float64) { return c.lo, c.hi }

// LengthBounds returns the (lo, hi) parameters of length_between.
func (c Constraint) LengthBounds() (int, int) { return c.loN, c.hiN }

// Pattern returns the string parameter of contains/starts_with/ends_with/
// matches_regex.
func (c Constraint) Pattern() string { return c.s }

// Values returns the member list of is_in.
func (c Constraint) Values() []column.Scalar { return c.values }

// constraintJSON is the wire shape a Constraint renders as: its kind plus
// whichever parameters that kind actually carries.
type constraintJSON struct {
	Kind   string   `json:"kind"`
	X      *float64 `json:"x,omitempty"`
	Lo     *float64 `json:"lo,omitempty"`
	Hi     *float64 `json:"hi,omitempty"`
	LoN    *int     `json:"lo_n,omitempty"`
	HiN    *int     `json:"hi_n,omitempty"`
	S      *string  `json:"s,omitempty"`
	Values []string `json:"values,omitempty"`
}

// MarshalJSON renders a Constraint as its kind plus the parameters that
// kind carries, so a Result can be serialised into a readable report.
func (c Constraint) MarshalJSON() ([]byte, error) {
	out := constraintJSON{Kind: c.kind.String()}
	switch c.kind {
	case KindGt, KindGe, KindLt, KindLe, KindEqual:
		out.X = &c.x
	case KindBetween:
		out.Lo, out.Hi = &c.lo, &c.hi
	case KindLengthBetween:
		out.LoN, out.HiN = &c.loN, &c.hiN
	case KindContains, KindStartsWith, KindEndsWith, KindMatchesRegex:
		out.S = &c.s
	case KindIsIn:
		out.Values = make([]string, len(c.values))
		for i, v := range c.values {
			out.Values[i] = v.String()
		}
	}
	return json.Marshal(out)
}

// AppliesTo reports whether this Constraint's Kind is legal against a
// column of the given Dtype, per the fixed type-family table.
func (c Constraint) AppliesTo(dt column.Dtype) bool {
	switch c.kind {
	case KindNotNull, KindUnique:
		return true
	case KindGt, KindGe, KindLt, KindLe, KindEqual, KindBetween:
		return dt == column.DtypeInt || dt == column.DtypeFloat
	case KindContains, KindStartsWith, KindEndsWith, KindMatchesRegex, KindLengthBetween:
		return dt == column.DtypeString
	case KindIsIn:
		return dt == column.DtypeInt || dt == column.DtypeFloat || dt == column.DtypeString
	default:
		return false
	}
}
