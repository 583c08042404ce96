// values/values.go

package values

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Value is an immutable, polymorphic datum attached to a dialogue variable.
// Values support concatenation, length, membership testing, copying and a
// total order derived from their hash.
type Value interface {
	// Concatenate combines the value with another one, when the combination
	// is meaningful for the variant.
	Concatenate(other Value) (Value, error)
	// Length returns the content length of the value (0 for none).
	Length() int
	// Contains returns true if the value contains the given sub-value.
	Contains(sub Value) bool
	// Copy returns a copy of the value.
	Copy() Value
	// Hash returns a stable content hash for the value.
	Hash() uint32
	String() string
}

// Compare orders two values by their hash.
func Compare(a, b Value) int {
	ha, hb := a.Hash(), b.Hash()
	switch {
	case ha < hb:
		return -1
	case ha > hb:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two values have identical content.
func Equal(a, b Value) bool {
	return a.String() == b.String()
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// Create builds a value from its textual representation: "None" or the empty
// string yield the none sentinel, "true"/"false" a boolean, a parseable number
// a double, "[a,b,c]" a set of values, and anything else a string.
func Create(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "None" {
		return None()
	}
	if trimmed == "true" || trimmed == "false" {
		return NewBool(trimmed == "true")
	}
	if d, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NewDouble(d)
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		inner := trimmed[1 : len(trimmed)-1]
		elements := []Value{}
		for _, part := range strings.Split(inner, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			elements = append(elements, Create(part))
		}
		return NewSet(elements...)
	}
	return NewString(trimmed)
}

// StringVal is a string value.
type StringVal struct {
	val string
}

func NewString(s string) StringVal {
	return StringVal{val: s}
}

func (v StringVal) Concatenate(other Value) (Value, error) {
	if IsNone(other) {
		return v.Copy(), nil
	}
	return NewString(v.val + " " + other.String()), nil
}

func (v StringVal) Length() int { return len(v.val) }

// Contains performs a substring test.
func (v StringVal) Contains(sub Value) bool {
	return strings.Contains(v.val, sub.String())
}

func (v StringVal) Copy() Value { return v }
func (v StringVal) Hash() uint32 { return hashString(v.val) }
func (v StringVal) String() string { return v.val }

// DoubleVal is a numeric value.
type DoubleVal struct {
	val float64
}

func NewDouble(d float64) DoubleVal {
	return DoubleVal{val: d}
}

func (v DoubleVal) Float() float64 { return v.val }

func (v DoubleVal) Concatenate(other Value) (Value, error) {
	if IsNone(other) {
		return v.Copy(), nil
	}
	if s, ok := other.(StringVal); ok {
		return NewString(v.String() + " " + s.val), nil
	}
	return nil, fmt.Errorf("cannot concatenate %s and %s", v, other)
}

func (v DoubleVal) Length() int { return 1 }
func (v DoubleVal) Contains(sub Value) bool { return Equal(v, sub) }
func (v DoubleVal) Copy() Value { return v }
func (v DoubleVal) Hash() uint32 { return hashString(v.String()) }
func (v DoubleVal) String() string {
	return strconv.FormatFloat(v.val, 'f', -1, 64)
}

// BoolVal is a boolean value.
type BoolVal struct {
	val bool
}

func NewBool(b bool) BoolVal {
	return BoolVal{val: b}
}

func (v BoolVal) Bool() bool { return v.val }

func (v BoolVal) Concatenate(other Value) (Value, error) {
	return nil, fmt.Errorf("cannot concatenate %s and %s", v, other)
}

func (v BoolVal) Length() int { return 1 }
func (v BoolVal) Contains(sub Value) bool { return Equal(v, sub) }
func (v BoolVal) Copy() Value { return v }
func (v BoolVal) Hash() uint32 { return hashString(v.String()) }
func (v BoolVal) String() string { return strconv.FormatBool(v.val) }

// NoneVal is the sentinel for an absent or deleted value.
type NoneVal struct{}

var none = NoneVal{}

// None returns the none sentinel.
func None() Value { return none }

// IsNone reports whether the value is the none sentinel.
func IsNone(v Value) bool {
	_, ok := v.(NoneVal)
	return ok
}

// Concatenate with none is neutral: the other value is returned.
func (v NoneVal) Concatenate(other Value) (Value, error) {
	return other.Copy(), nil
}

func (v NoneVal) Length() int { return 0 }
func (v NoneVal) Contains(sub Value) bool { return false }
func (v NoneVal) Copy() Value { return v }
func (v NoneVal) Hash() uint32 { return hashString("None") }
func (v NoneVal) String() string { return "None" }
