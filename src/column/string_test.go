package column

import "testing"

func TestMatchesRegexAnchoredPattern(t *testing.T) {
	c := NewStringColumn([]*string{sp("ann"), sp("clark"), sp("123")})
	res, err := c.MatchesRegex("^[a-z]+$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{true, true, false}
	for j, w := range want {
		v, isNull := res.At(j)
		if isNull || v != w {
			t.Errorf("position %v: expected %v, got null=%v val=%v", j, w, isNull, v)
		}
	}
}

func TestMatchesRegexUnanchoredIsPartial(t *testing.T) {
	c := NewStringColumn([]*string{sp("xx123yy")})
	res, err := c.MatchesRegex("[0-9]+")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, isNull := res.At(0)
	if isNull || !v {
		t.Fatalf("expected an unanchored digit pattern to match inside the string")
	}
}

func TestMatchesRegexInvalidPatternIsAnError(t *testing.T) {
	c := NewStringColumn([]*string{sp("x")})
	if _, err := c.MatchesRegex("[unterminated"); err == nil {
		t.Fatalf("expected an invalid regex to surface as an error")
	}
}

func TestStrLengthCountsCodePointsAndPropagatesNull(t *testing.T) {
	c := NewStringColumn([]*string{sp("hi"), sp("hello"), nil})
	res, err := c.StrLength()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*int64{ip(2), ip(5), nil}
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

func TestLengthBetween(t *testing.T) {
	c := NewStringColumn([]*string{sp("a"), sp("abc"), sp("abcdef")})
	res, err := c.LengthBetween(2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, false}
	for j, w := range want {
		v, isNull := res.At(j)
		if isNull || v != w {
			t.Errorf("position %v: expected %v, got null=%v val=%v", j, w, isNull, v)
		}
	}
}

func TestContainsStartsEndsWith(t *testing.T) {
	c := NewStringColumn([]*string{sp("clark"), sp("lana"), sp("lex")})
	contains, _ := c.Contains("a")
	starts, _ := c.StartsWith("l")
	ends, _ := c.EndsWith("x")

	wantContains := []bool{true, true, false}
	wantStarts := []bool{false, true, true}
	wantEnds := []bool{false, false, true}
	for j := 0; j < 3; j++ {
		if v, _ := contains.At(j); v != wantContains[j] {
			t.Errorf("contains position %v: expected %v, got %v", j, wantContains[j], v)
		}
		if v, _ := starts.At(j); v != wantStarts[j] {
			t.Errorf("starts_with position %v: expected %v, got %v", j, wantStarts[j], v)
		}
		if v, _ := ends.At(j); v != wantEnds[j] {
			t.Errorf("ends_with position %v: expected %v, got %v", j, wantEnds[j], v)
		}
	}
}

func TestStringKernelsRejectNonStringColumn(t *testing.T) {
	c := NewIntColumn([]*int64{ip(1)})
	if _, err := c.Contains("1"); err == nil {
		t.Fatalf("expected contains on an int column to be a type error")
	}
}
