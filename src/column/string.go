package column

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

func (c *Column) requireString(op string) error {
	if c.kind != DtypeString {
		return c.typeError(op)
	}
	return nil
}

func (c *Column) stringPredicate(op string, pred func(v string) bool) (*NullableBools, error) {
	if err := c.requireString(op); err != nil {
		return nil, err
	}
	out := newNullableBools(c.length)
	for j := 0; j < c.length; j++ {
		if c.nullability != nil && c.nullability.Get(j) {
			out.setNull(j)
			continue
		}
		out.setTrue(j, pred(c.nthString(j)))
	}
	return out, nil
}

// EqualString reports, per cell, exact byte-for-byte equality with s.
func (c *Column) EqualString(s string) (*NullableBools, error) {
	return c.stringPredicate("equal", func(v string) bool { return v == s })
}

// Contains reports whether s occurs anywhere in the cell.
func (c *Column) Contains(s string) (*NullableBools, error) {
	return c.stringPredicate("contains", func(v string) bool { return strings.Contains(v, s) })
}

// StartsWith reports whether the cell begins with s.
func (c *Column) StartsWith(s string) (*NullableBools, error) {
	return c.stringPredicate("starts_with", func(v string) bool { return strings.HasPrefix(v, s) })
}

// EndsWith reports whether the cell ends with s.
func (c *Column) EndsWith(s string) (*NullableBools, error) {
	return c.stringPredicate("ends_with", func(v string) bool { return strings.HasSuffix(v, s) })
}

// MatchesRegex reports whether pat matches somewhere inside the cell
// (partial match, not full match — callers that want a full match should
// anchor pat with ^ and $ themselves). An invalid pattern is a
// synchronous error, not a per-cell failure, since every cell would share
// the same malformed pattern.
func (c *Column) MatchesRegex(pat string) (*NullableBools, error) {
	if err := c.requireString("matches_regex"); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	out := newNullableBools(c.length)
	for j := 0; j < c.length; j++ {
		if c.nullability != nil && c.nullability.Get(j) {
			out.setNull(j)
			continue
		}
		out.setTrue(j, re.MatchString(c.nthString(j)))
	}
	return out, nil
}

// StrLength counts Unicode code points per cell (not grapheme clusters).
func (c *Column) StrLength() (*NullableInts, error) {
	if err := c.requireString("str_length"); err != nil {
		return nil, err
	}
	out := newNullableInts(c.length)
	for j := 0; j < c.length; j++ {
		if c.nullability != nil && c.nullability.Get(j) {
			out.setNull(j)
			continue
		}
		out.values[j] = int64(utf8.RuneCountInString(c.nthString(j)))
	}
	return out, nil
}

// LengthBetween reports lo <= code-point length <= hi, inclusive. Reachable
// only through a length_between Constraint, not part of the direct
// inspection surface.
func (c *Column) LengthBetween(lo, hi int) (*NullableBools, error) {
	lens, err := c.StrLength()
	if err != nil {
		return nil, err
	}
	out := newNullableBools(c.length)
	for j := 0; j < c.length; j++ {
		v, isNull := lens.At(j)
		if isNull {
			out.setNull(j)
			continue
		}
		out.setTrue(j, int(v) >= lo && int(v) <= hi)
	}
	return out, nil
}
