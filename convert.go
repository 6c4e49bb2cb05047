package restsharp

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	iso8601 "github.com/sosodev/duration"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bujawang/RestSharp/shape"
	"github.com/bujawang/RestSharp/simplejson"
)

// convert produces a value of the supplied shape from node, or an invalid
// value meaning "leave default". layout overrides the configured date format
// for this conversion.
func (d *Deserializer) convert(sh *shape.Shape, node *simplejson.Node, layout string) (reflect.Value, error) {
	switch sh.Kind {
	case shape.KindNullable:
		if node.String() == "" {
			return reflect.Value{}, nil
		}
		inner, err := d.convert(sh.Elem, node, layout)
		if err != nil || !inner.IsValid() {
			return reflect.Value{}, err
		}
		ptr := reflect.New(sh.Elem.Type)
		ptr.Elem().Set(inner)
		return ptr, nil
	case shape.KindDynamic:
		if node.IsNull() {
			return reflect.Value{}, nil
		}
		value := reflect.ValueOf(node.Interface())
		if !value.Type().AssignableTo(sh.Type) {
			return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type}
		}
		return value, nil
	case shape.KindBool:
		return d.convertBool(sh, node)
	case shape.KindInt:
		return d.convertInt(sh, node)
	case shape.KindUint:
		return d.convertUint(sh, node)
	case shape.KindFloat:
		return d.convertFloat(sh, node)
	case shape.KindEnum:
		text := node.String()
		fold := cases.Lower(d.Culture)
		value, ok := shape.EnumValue(sh.Type, text, fold.String)
		if !ok {
			return reflect.Value{}, &ConversionError{Value: text, Target: sh.Type}
		}
		return reflect.ValueOf(value), nil
	case shape.KindURL:
		text := node.String()
		parsed, err := url.Parse(text)
		if err != nil {
			return reflect.Value{}, &ConversionError{Value: text, Target: sh.Type, Err: err}
		}
		return reflect.ValueOf(*parsed), nil
	case shape.KindString:
		ret := reflect.New(sh.Type).Elem()
		ret.SetString(node.String())
		return ret, nil
	case shape.KindTime:
		if layout == "" {
			layout = d.DateFormat
		}
		text := node.String()
		parsed, err := parseTime(text, layout)
		if err != nil {
			return reflect.Value{}, &ConversionError{Value: text, Target: sh.Type, Err: err}
		}
		return reflect.ValueOf(parsed), nil
	case shape.KindDecimal:
		return d.convertDecimal(sh, node)
	case shape.KindGUID:
		text := node.String()
		if text == "" {
			return reflect.ValueOf(uuid.Nil), nil
		}
		id, err := uuid.Parse(text)
		if err != nil {
			return reflect.Value{}, &ConversionError{Value: text, Target: sh.Type, Err: err}
		}
		return reflect.ValueOf(id), nil
	case shape.KindDuration:
		text := node.String()
		if parsed, err := time.ParseDuration(text); err == nil {
			return reflect.ValueOf(parsed), nil
		}
		parsed, err := iso8601.Parse(text)
		if err != nil {
			return reflect.Value{}, &ConversionError{Value: text, Target: sh.Type, Err: err}
		}
		return reflect.ValueOf(parsed.ToTimeDuration()), nil
	case shape.KindList:
		return d.buildList(sh, node)
	case shape.KindMap:
		if sh.Key.Kind() != reflect.String {
			return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type, Err: fmt.Errorf("unsupported map key type %s", sh.Key)}
		}
		return d.buildMap(sh, node)
	case shape.KindObject:
		if node.Kind() != simplejson.KindObject {
			return reflect.Value{}, &ShapeMismatchError{Target: sh.Type, Got: node.Kind()}
		}
		return reflect.ValueOf(*node.Object()), nil
	}
	//composite fallback
	if node.Kind() != simplejson.KindObject {
		return reflect.Value{}, &ShapeMismatchError{Target: sh.Type, Got: node.Kind()}
	}
	ptr := reflect.New(sh.Type)
	if err := d.mapComposite(sh, node.Object(), ptr.UnsafePointer()); err != nil {
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}

func (d *Deserializer) convertBool(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	ret := reflect.New(sh.Type).Elem()
	if node.Kind() == simplejson.KindBool {
		ret.SetBool(node.Bool())
		return ret, nil
	}
	text := node.String()
	value, err := strconv.ParseBool(strings.ToLower(text))
	if err != nil {
		f, fErr := strconv.ParseFloat(d.normalizeNumber(text), 64)
		if fErr != nil {
			return reflect.Value{}, &ConversionError{Value: text, Target: sh.Type, Err: err}
		}
		value = f != 0
	}
	ret.SetBool(value)
	return ret, nil
}

func (d *Deserializer) convertInt(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	text := d.normalizeNumber(node.String())
	var value int64
	var err error
	if strings.ContainsAny(text, ".eE") {
		var f float64
		if f, err = strconv.ParseFloat(text, 64); err == nil {
			value = int64(f)
		}
	} else {
		value, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type, Err: err}
	}
	ret := reflect.New(sh.Type).Elem()
	if ret.OverflowInt(value) {
		return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type}
	}
	ret.SetInt(value)
	return ret, nil
}

func (d *Deserializer) convertUint(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	text := d.normalizeNumber(node.String())
	var value uint64
	var err error
	if strings.ContainsAny(text, ".eE") {
		var f float64
		if f, err = strconv.ParseFloat(text, 64); err == nil {
			if f < 0 {
				return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type}
			}
			value = uint64(f)
		}
	} else {
		value, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type, Err: err}
	}
	ret := reflect.New(sh.Type).Elem()
	if ret.OverflowUint(value) {
		return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type}
	}
	ret.SetUint(value)
	return ret, nil
}

func (d *Deserializer) convertFloat(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	text := d.normalizeNumber(node.String())
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type, Err: err}
	}
	ret := reflect.New(sh.Type).Elem()
	ret.SetFloat(value)
	return ret, nil
}

func (d *Deserializer) convertDecimal(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	var text string
	switch {
	case node.Kind() == simplejson.KindNumber:
		//native number, convert from the raw literal to avoid round-trip drift
		text = node.Literal()
	case strings.ContainsAny(node.String(), "eE"):
		text = node.String()
	default:
		text = d.normalizeNumber(node.String())
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return reflect.Value{}, &ConversionError{Value: node.String(), Target: sh.Type, Err: err}
	}
	return reflect.ValueOf(value), nil
}

// cultures writing a decimal comma; x/text exposes no numeric parser so the
// separator choice keys off the language base
var decimalCommaLanguages = map[string]bool{
	"cs": true, "da": true, "de": true, "el": true, "es": true, "fi": true,
	"fr": true, "hu": true, "id": true, "it": true, "nb": true, "nl": true,
	"no": true, "pl": true, "pt": true, "ro": true, "ru": true, "sk": true,
	"sv": true, "tr": true, "uk": true, "vi": true,
}

func decimalComma(culture language.Tag) bool {
	base, _ := culture.Base()
	return decimalCommaLanguages[base.String()]
}

// normalizeNumber strips grouping separators and rewrites the culture's
// decimal separator to a dot.
func (d *Deserializer) normalizeNumber(text string) string {
	text = strings.TrimSpace(text)
	if decimalComma(d.Culture) {
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
		return text
	}
	return strings.ReplaceAll(text, ",", "")
}

var lenientLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	"01/02/2006 15:04:05",
}

// parseTime parses strictly against layout when one is configured,
// interpreted as UTC. Without a layout it tries the millisecond epoch form
// "/Date(…)/" and a set of common layouts.
func parseTime(text string, layout string) (time.Time, error) {
	if layout != "" {
		parsed, err := time.ParseInLocation(layout, text, time.UTC)
		if err != nil {
			return time.Time{}, err
		}
		return parsed.UTC(), nil
	}
	if parsed, ok := parseEpochDate(text); ok {
		return parsed, nil
	}
	for _, candidate := range lenientLayouts {
		if parsed, err := time.Parse(candidate, text); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

// parseEpochDate handles the legacy "/Date(1309421746929+0000)/" form, the
// value is milliseconds since the unix epoch.
func parseEpochDate(text string) (time.Time, bool) {
	if !strings.HasPrefix(text, "/Date(") || !strings.HasSuffix(text, ")/") {
		return time.Time{}, false
	}
	inner := text[len("/Date(") : len(text)-len(")/")]
	end := len(inner)
	for i := 1; i < len(inner); i++ {
		if inner[i] == '+' || inner[i] == '-' {
			end = i
			break
		}
	}
	millis, err := strconv.ParseInt(inner[:end], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis).UTC(), true
}
