package column

import (
	"math"
	"testing"
)

func ip(v int64) *int64    { return &v }
func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }
func bp(v bool) *bool       { return &v }

func TestIntColumnLenAndNullCount(t *testing.T) {
	c := NewIntColumn([]*int64{ip(1), ip(2), nil, ip(4)})
	if c.Len() != 4 {
		t.Fatalf("expected len 4, got %v", c.Len())
	}
	if c.NullCount() != 1 {
		t.Fatalf("expected null_count 1, got %v", c.NullCount())
	}
	if c.NotNullCount() != 3 {
		t.Fatalf("expected not_null_count 3, got %v", c.NotNullCount())
	}
}

func TestColumnIsEmpty(t *testing.T) {
	empty := NewIntColumn(nil)
	if !empty.IsEmpty() {
		t.Fatalf("expected an empty column to report IsEmpty")
	}
	nonEmpty := NewIntColumn([]*int64{ip(1)})
	if nonEmpty.IsEmpty() {
		t.Fatalf("did not expect a one-row column to report IsEmpty")
	}
}

func TestIsNullLengthAndCount(t *testing.T) {
	c := NewIntColumn([]*int64{ip(1), nil, ip(3), nil})
	mask := c.IsNull()
	if len(mask) != c.Len() {
		t.Fatalf("expected is_null length %v, got %v", c.Len(), len(mask))
	}
	got := 0
	for _, v := range mask {
		if v {
			got++
		}
	}
	if got != c.NullCount() {
		t.Fatalf("expected is_null true count to equal null_count %v, got %v", c.NullCount(), got)
	}
}

func TestNullCountPlusNotNullCountEqualsLen(t *testing.T) {
	cols := []*Column{
		NewIntColumn([]*int64{ip(1), nil, ip(3)}),
		NewFloatColumn([]*float64{fp(1.5), nil}),
		NewStringColumn([]*string{sp("a"), sp("b"), nil}),
		NewBoolColumn([]*bool{bp(true), nil, bp(false)}),
	}
	for _, c := range cols {
		if c.NullCount()+c.NotNullCount() != c.Len() {
			t.Errorf("%s column: null_count + not_null_count != len", c.Kind())
		}
	}
}

func TestUniqueAndDuplicatesCount(t *testing.T) {
	c := NewStringColumn([]*string{sp("a"), sp("b"), sp("a"), nil, sp("b"), sp("c")})
	if got := c.UniqueCount(); got != 3 {
		t.Fatalf("expected unique_count 3, got %v", got)
	}
	if got := c.DuplicatesCount(); got != 2 {
		t.Fatalf("expected duplicates_count 2, got %v", got)
	}
	if c.UniqueCount()+c.DuplicatesCount() != c.NotNullCount() {
		t.Fatalf("unique_count + duplicates_count must equal not_null_count")
	}
}

func TestFloatUniqueCountCanonicalizesNaN(t *testing.T) {
	nan1 := math.NaN()
	nan2 := math.Float64frombits(math.Float64bits(math.NaN()) ^ 1) // a different NaN payload
	c := NewFloatColumn([]*float64{fp(1.0), &nan1, &nan2, fp(1.0)})
	if got := c.UniqueCount(); got != 2 {
		t.Fatalf("expected NaN payloads to canonicalize into one unique value, got unique_count %v", got)
	}
}

func TestBoolUniqueCount(t *testing.T) {
	onlyTrue := NewBoolColumn([]*bool{bp(true), bp(true), nil})
	if got := onlyTrue.UniqueCount(); got != 1 {
		t.Fatalf("expected unique_count 1 for an all-true column, got %v", got)
	}
	both := NewBoolColumn([]*bool{bp(true), bp(false)})
	if got := both.UniqueCount(); got != 2 {
		t.Fatalf("expected unique_count 2 when both values appear, got %v", got)
	}
}

func TestStringColumnRoundTrip(t *testing.T) {
	in := []*string{sp("ann"), sp("clark"), nil, sp("lex")}
	c := NewStringColumn(in)
	for j, want := range in {
		if want == nil {
			if !c.nullability.Get(j) {
				t.Errorf("position %v expected null", j)
			}
			continue
		}
		if got := c.nthString(j); got != *want {
			t.Errorf("position %v: expected %q, got %q", j, *want, got)
		}
	}
}

func TestKindMismatchIsATypeError(t *testing.T) {
	c := NewStringColumn([]*string{sp("x")})
	if _, _, err := c.Sum(); err == nil {
		t.Fatalf("expected sum on a string column to be a type error")
	}
}
