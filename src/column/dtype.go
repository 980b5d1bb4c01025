package column

import (
	"errors"
	"fmt"
)

// Dtype denotes the declared element type of a Column.
type Dtype uint8

// the four supported column kinds, plus a sentinel for "not yet known"
const (
	DtypeInvalid Dtype = iota
	DtypeInt
	DtypeFloat
	DtypeString
	DtypeBool
)

func (dt Dtype) String() string {
	switch dt {
	case DtypeInt:
		return "int"
	case DtypeFloat:
		return "float"
	case DtypeString:
		return "string"
	case DtypeBool:
		return "bool"
	default:
		return "invalid"
	}
}

// MarshalJSON renders a Dtype as its string form, so schemas serialise
// legibly instead of as a bare integer.
func (dt Dtype) MarshalJSON() ([]byte, error) {
	ret := append([]byte{'"'}, []byte(dt.String())...)
	ret = append(ret, '"')
	return ret, nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (dt *Dtype) UnmarshalJSON(data []byte) error {
	if !(len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"') {
		return errors.New("unexpected value to be unmarshaled into a Dtype")
	}
	switch string(data[1 : len(data)-1]) {
	case "int":
		*dt = DtypeInt
	case "float":
		*dt = DtypeFloat
	case "string":
		*dt = DtypeString
	case "bool":
		*dt = DtypeBool
	default:
		return fmt.Errorf("unrecognised dtype: %s", data)
	}
	return nil
}
