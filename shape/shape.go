package shape

import (
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viant/tagly/format"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/xunsafe"

	"github.com/bujawang/RestSharp/simplejson"
)

// Kind classifies a destination type. The values follow the precedence the
// conversion ladder applies, several kinds are mutually exclusive only by
// virtue of this ordering.
type Kind int

const (
	KindComposite Kind = iota
	KindNullable
	KindDynamic
	KindBool
	KindInt
	KindUint
	KindFloat
	KindEnum
	KindURL
	KindString
	KindTime
	KindDecimal
	KindGUID
	KindDuration
	KindList
	KindMap
	KindObject
)

type (
	//Shape describes a destination type
	Shape struct {
		Type   reflect.Type
		Kind   Kind
		Elem   *Shape       //nullable inner, list element or map value shape
		Key    reflect.Type //map key type
		Fields []*Field
	}

	//Field describes one writable composite field
	Field struct {
		Name       string
		WireName   string //explicit override, empty means declared name
		TimeLayout string //per field date layout override
		Shape      *Shape
		path       []string
		xField     *xunsafe.Field
	}
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	uuidType     = reflect.TypeOf(uuid.UUID{})
	urlType      = reflect.TypeOf(url.URL{})
	durationType = reflect.TypeOf(time.Duration(0))
	objectType   = reflect.TypeOf(simplejson.Object{})
)

var shapes sync.Map //map[reflect.Type]*Shape

// Of returns the shape for t, classified once and cached.
func Of(t reflect.Type) *Shape {
	if value, ok := shapes.Load(t); ok {
		return value.(*Shape)
	}
	ret := classify(t, map[reflect.Type]*Shape{})
	shapes.Store(t, ret)
	return ret
}

func classify(t reflect.Type, seen map[reflect.Type]*Shape) *Shape {
	if shape, ok := seen[t]; ok {
		return shape
	}
	ret := &Shape{Type: t}
	switch {
	case t.Kind() == reflect.Ptr:
		ret.Kind = KindNullable
		seen[t] = ret
		ret.Elem = classify(t.Elem(), seen)
	case t.Kind() == reflect.Interface:
		ret.Kind = KindDynamic
	case t == timeType:
		ret.Kind = KindTime
	case t == decimalType:
		ret.Kind = KindDecimal
	case t == uuidType:
		ret.Kind = KindGUID
	case t == urlType:
		ret.Kind = KindURL
	case t == objectType:
		ret.Kind = KindObject
	case t == durationType:
		ret.Kind = KindDuration
	case isEnum(t):
		ret.Kind = KindEnum
	case t.Kind() == reflect.Bool:
		ret.Kind = KindBool
	case isInt(t.Kind()):
		ret.Kind = KindInt
	case isUint(t.Kind()):
		ret.Kind = KindUint
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		ret.Kind = KindFloat
	case t.Kind() == reflect.String:
		ret.Kind = KindString
	case t.Kind() == reflect.Slice:
		ret.Kind = KindList
		seen[t] = ret
		ret.Elem = classify(t.Elem(), seen)
	case t.Kind() == reflect.Map:
		ret.Kind = KindMap
		ret.Key = t.Key()
		seen[t] = ret
		ret.Elem = classify(t.Elem(), seen)
	case t.Kind() == reflect.Struct:
		ret.Kind = KindComposite
		seen[t] = ret
		ret.Fields = fieldsOf(t, seen)
	default:
		//everything else falls back to composite and fails at mapping time
		ret.Kind = KindComposite
	}
	return ret
}

func isInt(k reflect.Kind) bool {
	return k == reflect.Int || k == reflect.Int8 || k == reflect.Int16 || k == reflect.Int32 || k == reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k == reflect.Uint || k == reflect.Uint8 || k == reflect.Uint16 || k == reflect.Uint32 || k == reflect.Uint64
}

func fieldsOf(t reflect.Type, seen map[reflect.Type]*Shape) []*Field {
	var ret []*Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		field := &Field{
			Name:   sf.Name,
			Shape:  classify(sf.Type, seen),
			xField: xunsafe.FieldByName(t, sf.Name),
		}
		if skip := field.applyTag(sf); skip {
			continue
		}
		wire := field.WireName
		if wire == "" {
			wire = field.Name
		}
		field.path = strings.Split(wire, ".")
		ret = append(ret, field)
	}
	return ret
}

// applyTag resolves json and format tag attributes, json explicit name wins
// over the format tag name.
func (f *Field) applyTag(sf reflect.StructField) (skip bool) {
	if jTag := sf.Tag.Get("json"); jTag != "" {
		name := strings.Split(jTag, ",")[0]
		if name == "-" {
			return true
		}
		if name != "" {
			f.WireName = name
		}
	}
	fTag, err := format.Parse(sf.Tag)
	if err != nil || fTag == nil {
		return false
	}
	if fTag.Ignore {
		return true
	}
	if f.WireName == "" && fTag.Name != "" {
		f.WireName = fTag.Name
	}
	if fTag.TimeLayout != "" {
		f.TimeLayout = fTag.TimeLayout
	} else if fTag.DateFormat != "" {
		f.TimeLayout = ftime.DateFormatToTimeLayout(fTag.DateFormat)
	}
	return false
}

// Path returns wire name segments, split on dots.
func (f *Field) Path() []string {
	return f.path
}

// Set assigns value, which must be of the field type, at the composite
// holder pointer.
func (f *Field) Set(ptr unsafe.Pointer, value interface{}) {
	f.xField.SetValue(ptr, value)
}
