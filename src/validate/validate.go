// Package validate runs a list of Rules against a Dataset and produces a
// parallel list of Results — the one place the engine reconciles "which
// kernel does this Constraint need" with "how do I reduce its output to a
// failure count".
package validate

import (
	"github.com/okonkwo-labs/dqcheck/src/column"
	"github.com/okonkwo-labs/dqcheck/src/constraint"
	"github.com/okonkwo-labs/dqcheck/src/dataset"
)

// Result is the outcome of evaluating one Rule.
type Result struct {
	Column      string                `json:"column"`
	Constraint  constraint.Constraint `json:"constraint"`
	FailedCount uint64                `json:"failed_count"`
	IsPassed    bool                  `json:"is_passed"`
	Error       string                `json:"error,omitempty"`
}

// Validate evaluates every rule against ds, in order, and never
// short-circuits: a failure in one rule does not prevent the rest from
// being evaluated. len(result) == len(rules) always holds.
func Validate(ds *dataset.Dataset, rules []constraint.Rule) []Result {
	results := make([]Result, len(rules))
	rows, _ := ds.Shape()
	for i, rule := range rules {
		results[i] = evalRule(ds, rule, rows)
	}
	return results
}

func evalRule(ds *dataset.Dataset, rule constraint.Rule, rows int) Result {
	base := Result{Column: rule.ColumnName, Constraint: rule.Constraint}

	col, ok := ds.ColumnByName(rule.ColumnName)
	if !ok {
		base.FailedCount = uint64(rows)
		base.IsPassed = false
		base.Error = "column not found"
		return base
	}

	if !rule.Constraint.AppliesTo(col.Kind()) {
		base.IsPassed = false
		base.Error = "type mismatch"
		return base
	}

	failed, err := failedCount(col, rule.Constraint)
	if err != nil {
		base.IsPassed = false
		base.Error = err.Error()
		return base
	}
	base.FailedCount = uint64(failed)
	base.IsPassed = failed == 0
	return base
}

// failedCount dispatches a Constraint's Kind to the column kernel it
// names, and reduces the kernel's result to a failure count following the
// per-kind rules: not_null counts nulls directly, unique counts
// duplicates, and every other kind counts non-null false positions.
func failedCount(col *column.Column, c constraint.Constraint) (int, error) {
	switch c.Kind() {
	case constraint.KindNotNull:
		return col.NullCount(), nil
	case constraint.KindUnique:
		return col.DuplicatesCount(), nil
	case constraint.KindGt:
		res, err := col.Gt(c.X())
		return reduce(res, err)
	case constraint.KindGe:
		res, err := col.Ge(c.X())
		return reduce(res, err)
	case constraint.KindLt:
		res, err := col.Lt(c.X())
		return reduce(res, err)
	case constraint.KindLe:
		res, err := col.Le(c.X())
		return reduce(res, err)
	case constraint.KindEqual:
		res, err := col.EqualNumeric(c.X())
		return reduce(res, err)
	case constraint.KindBetween:
		lo, hi := c.Bounds()
		res, err := col.Between(lo, hi)
		return reduce(res, err)
	case constraint.KindContains:
		res, err := col.Contains(c.Pattern())
		return reduce(res, err)
	case constraint.KindStartsWith:
		res, err := col.StartsWith(c.Pattern())
		return reduce(res, err)
	case constraint.KindEndsWith:
		res, err := col.EndsWith(c.Pattern())
		return reduce(res, err)
	case constraint.KindMatchesRegex:
		res, err := col.MatchesRegex(c.Pattern())
		return reduce(res, err)
	case constraint.KindLengthBetween:
		lo, hi := c.LengthBounds()
		res, err := col.LengthBetween(lo, hi)
		return reduce(res, err)
	case constraint.KindIsIn:
		res, err := col.IsIn(c.Values())
		return reduce(res, err)
	default:
		return 0, nil
	}
}

func reduce(res *column.NullableBools, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	return res.FailedCount(), nil
}
