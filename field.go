package geobind

import (
	"strconv"
	"strings"
	"time"
)

// Field is a typed snapshot of a Feature attribute, as returned by Feature.Fields()
type Field struct {
	index int
	isSet bool
	ftype FieldType
	val   interface{}
}

// Index returns the field's index in its feature
func (fld Field) Index() int {
	return fld.index
}

// IsSet returns if the field has ever been assigned a value or not.
func (fld Field) IsSet() bool {
	return fld.isSet
}

// IsNull returns true if the field is unset or set to null
func (fld Field) IsNull() bool {
	return fld.val == nil
}

// Type returns the field's native type
func (fld Field) Type() FieldType {
	return fld.ftype
}

// Int returns the Field as an integer
func (fld Field) Int() int64 {
	switch v := fld.val.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		ii, _ := strconv.ParseInt(v, 10, 64)
		return ii
	default:
		return 0
	}
}

// Float returns the field as a float64
func (fld Field) Float() float64 {
	switch v := fld.val.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case string:
		ff, _ := strconv.ParseFloat(v, 64)
		return ff
	default:
		return 0
	}
}

// String returns the field as a string. Lists are comma separated.
func (fld Field) String() string {
	switch v := fld.val.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case []string:
		return strings.Join(v, ",")
	case []int64:
		strs := make([]string, len(v))
		for i := range v {
			strs[i] = strconv.FormatInt(v[i], 10)
		}
		return strings.Join(strs, ",")
	case []float64:
		strs := make([]string, len(v))
		for i := range v {
			strs[i] = strconv.FormatFloat(v[i], 'f', -1, 64)
		}
		return strings.Join(strs, ",")
	default:
		return ""
	}
}

// Bytes returns the field as a byte slice
func (fld Field) Bytes() []byte {
	b, _ := fld.val.([]byte)
	return b
}

// DateTime returns the field as a date time, or nil
func (fld Field) DateTime() *time.Time {
	if t, ok := fld.val.(time.Time); ok {
		return &t
	}
	return nil
}

// IntList returns the field as a list of integer
func (fld Field) IntList() []int64 {
	l, _ := fld.val.([]int64)
	return l
}

// FloatList returns the field as a list of float64
func (fld Field) FloatList() []float64 {
	l, _ := fld.val.([]float64)
	return l
}

// StringList returns the field as a list of string
func (fld Field) StringList() []string {
	l, _ := fld.val.([]string)
	return l
}

// Value returns the raw field value: nil, int64, float64, string, time.Time,
// []byte, []int64, []float64 or []string
func (fld Field) Value() interface{} {
	return fld.val
}

func (f *Feature) field(i int) Field {
	fd, _ := f.FieldDefinition(i)
	fld := Field{index: i, ftype: fd.Type(), isSet: f.IsFieldSet(i)}
	if !fld.isSet || f.IsFieldNull(i) {
		return fld
	}
	switch fld.ftype {
	case FTInt, FTInt64:
		fld.val = f.FieldAsInteger64(i)
	case FTReal:
		fld.val = f.FieldAsDouble(i)
	case FTString:
		fld.val = f.FieldAsString(i)
	case FTDate, FTTime, FTDateTime:
		if t, ok := f.FieldAsDateTime(i); ok {
			fld.val = t
		}
	case FTIntList:
		ints := f.FieldAsIntegerList(i)
		l := make([]int64, len(ints))
		for j, v := range ints {
			l[j] = int64(v)
		}
		fld.val = l
	case FTInt64List:
		fld.val = f.FieldAsInteger64List(i)
	case FTRealList:
		fld.val = f.FieldAsDoubleList(i)
	case FTStringList:
		fld.val = f.FieldAsStringList(i)
	case FTBinary:
		fld.val = f.FieldAsBinary(i)
	default:
		fld.val = f.FieldAsString(i)
	}
	return fld
}

// Fields returns all the feature's fields, keyed by name
func (f *Feature) Fields() map[string]Field {
	n := f.FieldCount()
	ret := make(map[string]Field, n)
	for i := 0; i < n; i++ {
		fd, _ := f.FieldDefinition(i)
		ret[fd.Name()] = f.field(i)
	}
	return ret
}
