package schema

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/okonkwo-labs/dqcheck/src/column"
)

// maxInferenceSample bounds how many data rows Infer reads before
// settling on a guess, so a multi-gigabyte file doesn't need a full scan
// just to produce a schema skeleton.
const maxInferenceSample = 1000

// Infer samples r's header and up to maxInferenceSample data rows and
// returns a best-guess Schema: for each column, the narrowest of
// Boolean < Integer < Float < String that every sampled, non-empty value
// in that column parses as (an empty field never narrows a guess, since
// it denotes null regardless of declared type).
func Infer(r io.Reader) (Schema, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return Schema{}, err
	}
	guesses := make([]column.Dtype, len(header))
	seen := make([]bool, len(header))

	for i := 0; i < maxInferenceSample; i++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Schema{}, err
		}
		for j, raw := range record {
			if j >= len(guesses) || raw == "" {
				continue
			}
			widened := widen(guesses[j], seen[j], guessOne(raw))
			guesses[j] = widened
			seen[j] = true
		}
	}

	fields := make([]Field, len(header))
	for i, name := range header {
		dt := guesses[i]
		if !seen[i] {
			dt = column.DtypeString
		}
		fields[i] = Field{Name: name, Type: dt}
	}
	return New(fields...), nil
}

// guessOne picks the narrowest dtype a single value parses as.
func guessOne(raw string) column.Dtype {
	if _, err := parseBool(raw); err == nil {
		return column.DtypeBool
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return column.DtypeInt
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return column.DtypeFloat
	}
	return column.DtypeString
}

// widen combines the running guess for a column with a new value's
// guess, choosing the narrowest type both are still compatible with.
// Order of generality: Boolean < Integer < Float < String.
func widen(current column.Dtype, haveCurrent bool, next column.Dtype) column.Dtype {
	if !haveCurrent {
		return next
	}
	rank := func(dt column.Dtype) int {
		switch dt {
		case column.DtypeBool:
			return 0
		case column.DtypeInt:
			return 1
		case column.DtypeFloat:
			return 2
		default:
			return 3
		}
	}
	if rank(next) > rank(current) {
		return next
	}
	return current
}
