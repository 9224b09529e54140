package voting

import (
	"encoding/json"
	"fmt"
)

// Value is the binary consensus value. `Unknown` is the wire sentinel for
// "no opinion"; it is never counted toward a majority or a threshold.
type Value uint8

const (
	Unknown Value = iota
	Zero
	One
)

var unknownJSON = []byte(`"?"`)

func (v Value) String() string {
	switch v {
	case Zero:
		return "0"
	case One:
		return "1"
	}

	return "?"
}

func (v Value) IsBinary() bool {
	return v == Zero || v == One
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v {
	case Zero:
		return []byte("0"), nil
	case One:
		return []byte("1"), nil
	}

	return unknownJSON, nil
}

// UnmarshalJSON never fails for well-formed JSON: anything other than 0 or
// 1 is read as `Unknown`.
func (v *Value) UnmarshalJSON(b []byte) error {
	var i interface{}
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}

	*v = Unknown
	switch t := i.(type) {
	case float64:
		switch t {
		case 0:
			*v = Zero
		case 1:
			*v = One
		}
	case string:
		*v, _ = ValueFromString(t)
	}

	return nil
}

// ValueFromString parses "0", "1" or "?".
func ValueFromString(s string) (Value, error) {
	switch s {
	case "0":
		return Zero, nil
	case "1":
		return One, nil
	case "?":
		return Unknown, nil
	}

	return Unknown, fmt.Errorf("invalid value: %q", s)
}

// FromBit maps a random bit to a binary value.
func FromBit(bit uint) Value {
	if bit&1 == 0 {
		return Zero
	}

	return One
}

// MarshalYAML keeps the JSON representation: 0, 1 or "?".
func (v Value) MarshalYAML() (interface{}, error) {
	switch v {
	case Zero:
		return 0, nil
	case One:
		return 1, nil
	}

	return "?", nil
}
