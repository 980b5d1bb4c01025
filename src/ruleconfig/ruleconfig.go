// Package ruleconfig decodes a rule-set described in TOML into the
// constraint.Rule values the validator consumes, so a batch of checks can
// be checked into source control instead of constructed in Go.
package ruleconfig

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/okonkwo-labs/dqcheck/src/column"
	"github.com/okonkwo-labs/dqcheck/src/constraint"
)

// ErrUnknownConstraint is wrapped into the error returned when a rule
// names a constraint outside the fixed set this engine recognises.
var ErrUnknownConstraint = errors.New("unrecognized constraint name")

// ErrMissingParam is wrapped into the error returned when a rule omits a
// parameter its constraint requires.
var ErrMissingParam = errors.New("missing required constraint parameter")

// document mirrors the [[rule]] TOML array-of-tables shape.
type document struct {
	Rule []ruleEntry `toml:"rule"`
}

type ruleEntry struct {
	Column     string    `toml:"column"`
	Constraint string    `toml:"constraint"`
	X          *float64  `toml:"x"`
	Lo         *float64  `toml:"lo"`
	Hi         *float64  `toml:"hi"`
	LoN        *int      `toml:"lo_n"`
	HiN        *int      `toml:"hi_n"`
	S          *string   `toml:"s"`
	Values     []rawValue `toml:"values"`
}

// rawValue accepts either a string or a number from the TOML values
// array, since is_in may bind to an Integer, Floating, or String column.
type rawValue struct {
	asString *string
	asFloat  *float64
	asInt    *int64
}

// UnmarshalTOML lets toml.Decode populate a rawValue from whichever
// concrete type the document actually used for this element.
func (r *rawValue) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		r.asString = &v
	case int64:
		r.asInt = &v
	case float64:
		r.asFloat = &v
	default:
		return fmt.Errorf("unsupported is_in member type %T", data)
	}
	return nil
}

func (r rawValue) toScalar() column.Scalar {
	switch {
	case r.asString != nil:
		return column.StringScalar(*r.asString)
	case r.asInt != nil:
		return column.IntScalar(*r.asInt)
	default:
		return column.FloatScalar(*r.asFloat)
	}
}

// Load reads path and decodes it into a list of Rules, in document order.
func Load(path string) ([]constraint.Rule, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("could not decode rule configuration: %w", err)
	}
	return decode(doc)
}

// Decode parses a rule-set already held in memory, for callers (like the
// Lambda gateway) that fetched the TOML document from a non-file source.
func Decode(data []byte) ([]constraint.Rule, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("could not decode rule configuration: %w", err)
	}
	return decode(doc)
}

func decode(doc document) ([]constraint.Rule, error) {
	rules := make([]constraint.Rule, 0, len(doc.Rule))
	for _, entry := range doc.Rule {
		c, err := entry.toConstraint()
		if err != nil {
			return nil, fmt.Errorf("rule for column %q: %w", entry.Column, err)
		}
		rules = append(rules, constraint.NewRule(entry.Column, c))
	}
	return rules, nil
}

func (e ruleEntry) toConstraint() (constraint.Constraint, error) {
	switch e.Constraint {
	case "not_null":
		return constraint.NotNull(), nil
	case "unique":
		return constraint.Unique(), nil
	case "gt":
		x, err := e.requireX()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Gt(x), nil
	case "ge":
		x, err := e.requireX()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Ge(x), nil
	case "lt":
		x, err := e.requireX()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Lt(x), nil
	case "le":
		x, err := e.requireX()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Le(x), nil
	case "equal":
		x, err := e.requireX()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Equal(x), nil
	case "between":
		lo, hi, err := e.requireLoHi()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Between(lo, hi), nil
	case "contains":
		s, err := e.requireS()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.Contains(s), nil
	case "starts_with":
		s, err := e.requireS()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.StartsWith(s), nil
	case "ends_with":
		s, err := e.requireS()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.EndsWith(s), nil
	case "matches_regex":
		s, err := e.requireS()
		if err != nil {
			return constraint.Constraint{}, err
		}
		return constraint.MatchesRegex(s), nil
	case "length_between":
		if e.LoN == nil || e.HiN == nil {
			return constraint.Constraint{}, fmt.Errorf("%w: length_between needs lo_n and hi_n", ErrMissingParam)
		}
		return constraint.LengthBetween(*e.LoN, *e.HiN), nil
	case "is_in":
		if len(e.Values) == 0 {
			return constraint.Constraint{}, fmt.Errorf("%w: is_in needs a non-empty values list", ErrMissingParam)
		}
		scalars := make([]column.Scalar, len(e.Values))
		for i, v := range e.Values {
			scalars[i] = v.toScalar()
		}
		return constraint.IsIn(scalars), nil
	default:
		return constraint.Constraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraint, e.Constraint)
	}
}

func (e ruleEntry) requireX() (float64, error) {
	if e.X == nil {
		return 0, fmt.Errorf("%w: %s needs x", ErrMissingParam, e.Constraint)
	}
	return *e.X, nil
}

func (e ruleEntry) requireLoHi() (float64, float64, error) {
	if e.Lo == nil || e.Hi == nil {
		return 0, 0, fmt.Errorf("%w: %s needs lo and hi", ErrMissingParam, e.Constraint)
	}
	return *e.Lo, *e.Hi, nil
}

func (e ruleEntry) requireS() (string, error) {
	if e.S == nil {
		return "", fmt.Errorf("%w: %s needs s", ErrMissingParam, e.Constraint)
	}
	return *e.S, nil
}
