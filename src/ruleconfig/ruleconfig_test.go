package ruleconfig

import (
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/okonkwo-labs/dqcheck/src/constraint"
)

func decodeString(t *testing.T, src string) []constraint.Rule {
	t.Helper()
	var doc document
	if _, err := toml.Decode(src, &doc); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	rules, err := decode(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rules
}

func TestDecodesNotNullAndBetweenAndIsIn(t *testing.T) {
	const src = `
[[rule]]
column = "age"
constraint = "not_null"

[[rule]]
column = "score"
constraint = "between"
lo = 0
hi = 10

[[rule]]
column = "name"
constraint = "is_in"
values = ["ann", "clark", "lana", "lex"]
`
	rules := decodeString(t, src)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %v", len(rules))
	}
	if rules[0].ColumnName != "age" || rules[0].Constraint.Kind() != constraint.KindNotNull {
		t.Errorf("unexpected first rule: %+v", rules[0])
	}
	lo, hi := rules[1].Constraint.Bounds()
	if rules[1].ColumnName != "score" || rules[1].Constraint.Kind() != constraint.KindBetween || lo != 0 || hi != 10 {
		t.Errorf("unexpected second rule: %+v", rules[1])
	}
	if rules[2].ColumnName != "name" || rules[2].Constraint.Kind() != constraint.KindIsIn {
		t.Errorf("unexpected third rule: %+v", rules[2])
	}
	if len(rules[2].Constraint.Values()) != 4 {
		t.Errorf("expected 4 is_in members, got %v", len(rules[2].Constraint.Values()))
	}
}

func TestUnknownConstraintIsRejected(t *testing.T) {
	const src = `
[[rule]]
column = "age"
constraint = "definitely_not_a_real_constraint"
`
	var doc document
	if _, err := toml.Decode(src, &doc); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if _, err := decode(doc); err == nil {
		t.Fatalf("expected an unrecognized constraint name to be rejected")
	}
}

func TestMissingParamIsRejected(t *testing.T) {
	const src = `
[[rule]]
column = "age"
constraint = "gt"
`
	var doc document
	if _, err := toml.Decode(src, &doc); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if _, err := decode(doc); err == nil {
		t.Fatalf("expected a missing x parameter to be rejected")
	}
}

func TestStringConstraintsRoundTrip(t *testing.T) {
	const src = `
[[rule]]
column = "name"
constraint = "matches_regex"
s = "^[a-z]+$"
`
	rules := decodeString(t, src)
	if rules[0].Constraint.Pattern() != "^[a-z]+$" {
		t.Errorf("expected pattern to round-trip, got %q", rules[0].Constraint.Pattern())
	}
}
