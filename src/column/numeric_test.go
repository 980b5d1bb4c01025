package column

import "testing"

func TestGtNullPropagation(t *testing.T) {
	c := NewIntColumn([]*int64{ip(1), nil, ip(3)})
	res, err := c.Gt(0.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*bool{bp(true), nil, bp(true)}
	got := res.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %v values, got %v", len(want), len(got))
	}
	for j := range want {
		if (want[j] == nil) != (got[j] == nil) {
			t.Fatalf("position %v: null mismatch", j)
		}
		if want[j] != nil && *want[j] != *got[j] {
			t.Fatalf("position %v: expected %v, got %v", j, *want[j], *got[j])
		}
	}
}

func TestNumericComparisonsWidenIntegers(t *testing.T) {
	c := NewIntColumn([]*int64{ip(5), ip(10), ip(15)})
	tests := []struct {
		name string
		fn   func() (*NullableBools, error)
		want []bool
	}{
		{"ge", func() (*NullableBools, error) { return c.Ge(10) }, []bool{false, true, true}},
		{"le", func() (*NullableBools, error) { return c.Le(10) }, []bool{true, true, false}},
		{"lt", func() (*NullableBools, error) { return c.Lt(10) }, []bool{true, false, false}},
		{"equal", func() (*NullableBools, error) { return c.EqualNumeric(10) }, []bool{false, true, false}},
	}
	for _, tt := range tests {
		res, err := tt.fn()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		for j, want := range tt.want {
			v, isNull := res.At(j)
			if isNull {
				t.Fatalf("%s: position %v unexpectedly null", tt.name, j)
			}
			if v != want {
				t.Errorf("%s: position %v: expected %v, got %v", tt.name, j, want, v)
			}
		}
	}
}

func TestBetweenInclusive(t *testing.T) {
	c := NewFloatColumn([]*float64{fp(0), fp(50), fp(100), fp(100.1), nil})
	res, err := c.Between(0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*bool{bp(true), bp(true), bp(true), bp(false), nil}
	for j, w := range want {
		v, isNull := res.At(j)
		if w == nil {
			if !isNull {
				t.Errorf("position %v: expected null", j)
			}
			continue
		}
		if isNull || v != *w {
			t.Errorf("position %v: expected %v, got null=%v val=%v", j, *w, isNull, v)
		}
	}
}

func TestSumMeanMinMaxOnAgeColumn(t *testing.T) {
	c := NewIntColumn([]*int64{ip(20), nil, ip(30), ip(40)})
	sum, ok, err := c.Sum()
	if err != nil || !ok {
		t.Fatalf("unexpected sum result: %v %v %v", sum, ok, err)
	}
	if sum != 90.0 {
		t.Fatalf("expected sum 90, got %v", sum)
	}
	if n := c.NullCount(); n != 1 {
		t.Fatalf("expected null_count 1, got %v", n)
	}

	min, _, _ := c.Min()
	max, _, _ := c.Max()
	if min != 20 || max != 40 {
		t.Fatalf("expected min 20 max 40, got min=%v max=%v", min, max)
	}

	mean, _, _ := c.Mean()
	if mean != 30 {
		t.Fatalf("expected mean 30, got %v", mean)
	}
}

func TestScoreWithNullsSum(t *testing.T) {
	c := NewFloatColumn([]*float64{fp(1.5), nil, fp(3.5), nil})
	sum, ok, err := c.Sum()
	if err != nil || !ok {
		t.Fatalf("unexpected result: %v %v %v", sum, ok, err)
	}
	if sum != 5.0 {
		t.Fatalf("expected sum 5.0, got %v", sum)
	}
}

func TestAllNullReductionHasNoValue(t *testing.T) {
	c := NewIntColumn([]*int64{nil, nil, nil})
	if _, ok, _ := c.Sum(); ok {
		t.Fatalf("expected sum over an all-null column to report no value")
	}
	if _, ok, _ := c.Mean(); ok {
		t.Fatalf("expected mean over an all-null column to report no value")
	}
	if _, ok, _ := c.Median(); ok {
		t.Fatalf("expected median over an all-null column to report no value")
	}
}

func TestStdUndefinedBelowTwoValues(t *testing.T) {
	c := NewIntColumn([]*int64{ip(5)})
	if _, ok, _ := c.Std(); ok {
		t.Fatalf("expected std with a single value to report no value")
	}
}

func TestMedianEvenOddCounts(t *testing.T) {
	odd := NewIntColumn([]*int64{ip(3), ip(1), ip(2)})
	med, ok, _ := odd.Median()
	if !ok || med != 2 {
		t.Fatalf("expected median 2, got %v (ok=%v)", med, ok)
	}

	even := NewIntColumn([]*int64{ip(1), ip(2), ip(3), ip(4)})
	med, ok, _ = even.Median()
	if !ok || med != 2.5 {
		t.Fatalf("expected median 2.5, got %v (ok=%v)", med, ok)
	}
}

func TestNumericKernelsRejectStringColumn(t *testing.T) {
	c := NewStringColumn([]*string{sp("x")})
	if _, err := c.Gt(0); err == nil {
		t.Fatalf("expected gt on a string column to be a type error")
	}
	if _, _, err := c.Std(); err == nil {
		t.Fatalf("expected std on a string column to be a type error")
	}
}
