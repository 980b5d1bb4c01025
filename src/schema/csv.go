package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okonkwo-labs/dqcheck/src/column"
	"github.com/okonkwo-labs/dqcheck/src/dataset"
)

// ErrMalformedRow is the sentinel wrapped into every coercion failure, so
// callers can distinguish a bad CSV from a generic I/O error.
var ErrMalformedRow = errors.New("malformed CSV row")

// ErrHeaderMismatch is returned when the file's header row does not match
// the Schema's declared names, in order.
var ErrHeaderMismatch = errors.New("CSV header does not match schema")

// LoadCSV reads the file at path and coerces it into a Dataset against s.
// The first line must be a header row naming every field of s, in order.
// Loading is all-or-nothing: any row's coercion failure fails the whole
// call, and the loader produces no partial dataset.
func LoadCSV(path string, s Schema) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(f, s)
}

// LoadCSVFrom coerces r into a Dataset against s, for callers that already
// hold an open stream (e.g. one fetched from S3 by loadsource.Open).
func LoadCSVFrom(r io.Reader, s Schema) (*dataset.Dataset, error) {
	return load(r, s)
}

func load(r io.Reader, s Schema) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read header row: %v", ErrMalformedRow, err)
	}
	want := s.Names()
	if len(header) != len(want) {
		return nil, fmt.Errorf("%w: header has %d fields, schema declares %d", ErrHeaderMismatch, len(header), len(want))
	}
	for i, name := range want {
		if header[i] != name {
			return nil, fmt.Errorf("%w: field %d is %q, expected %q", ErrHeaderMismatch, i, header[i], name)
		}
	}

	ints := make([][]*int64, len(s.Fields))
	floats := make([][]*float64, len(s.Fields))
	strs := make([][]*string, len(s.Fields))
	bools := make([][]*bool, len(s.Fields))

	rowNum := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, rowNum, err)
		}
		if len(record) != len(s.Fields) {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d", ErrMalformedRow, rowNum, len(record), len(s.Fields))
		}
		for i, field := range s.Fields {
			raw := record[i]
			switch field.Type {
			case column.DtypeInt:
				if raw == "" {
					ints[i] = append(ints[i], nil)
					continue
				}
				v, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: row %d, column %q: %q is not a valid integer", ErrMalformedRow, rowNum, field.Name, raw)
				}
				ints[i] = append(ints[i], &v)
			case column.DtypeFloat:
				if raw == "" {
					floats[i] = append(floats[i], nil)
					continue
				}
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: row %d, column %q: %q is not a valid float", ErrMalformedRow, rowNum, field.Name, raw)
				}
				floats[i] = append(floats[i], &v)
			case column.DtypeBool:
				if raw == "" {
					bools[i] = append(bools[i], nil)
					continue
				}
				v, err := parseBool(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: row %d, column %q: %q is not a valid boolean", ErrMalformedRow, rowNum, field.Name, raw)
				}
				bools[i] = append(bools[i], &v)
			case column.DtypeString:
				if raw == "" {
					strs[i] = append(strs[i], nil)
					continue
				}
				v := raw
				strs[i] = append(strs[i], &v)
			default:
				return nil, fmt.Errorf("%w: column %q declares an unsupported type", ErrMalformedRow, field.Name)
			}
		}
	}

	columns := make([]*column.Column, len(s.Fields))
	for i, field := range s.Fields {
		switch field.Type {
		case column.DtypeInt:
			columns[i] = column.NewIntColumn(ints[i])
		case column.DtypeFloat:
			columns[i] = column.NewFloatColumn(floats[i])
		case column.DtypeBool:
			columns[i] = column.NewBoolColumn(bools[i])
		case column.DtypeString:
			columns[i] = column.NewStringColumn(strs[i])
		}
	}
	return dataset.New(want, columns)
}

// parseBool accepts true/false case-insensitively, plus 1/0 and yes/no as
// a pragmatic extension left to implementer discretion by the coercion
// contract.
func parseBool(raw string) (bool, error) {
	switch {
	case strings.EqualFold(raw, "true"), raw == "1", strings.EqualFold(raw, "yes"):
		return true, nil
	case strings.EqualFold(raw, "false"), raw == "0", strings.EqualFold(raw, "no"):
		return false, nil
	default:
		return false, fmt.Errorf("unrecognised boolean literal %q", raw)
	}
}
