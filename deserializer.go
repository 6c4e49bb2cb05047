package restsharp

import (
	"reflect"

	"github.com/viant/xunsafe"
	"golang.org/x/text/language"

	"github.com/bujawang/RestSharp/shape"
	"github.com/bujawang/RestSharp/simplejson"
)

// Deserializer maps parsed JSON values onto destination types. RootElement
// optionally scopes which part of the payload represents the destination,
// DateFormat is an exact time layout applied to date fields, Culture drives
// name-variant generation and locale sensitive parsing. The configuration is
// read-only during a call, concurrent use is safe as long as it is not
// mutated concurrently.
type Deserializer struct {
	RootElement string
	DateFormat  string
	Culture     language.Tag
}

// New creates a deserializer.
func New(opts ...Option) *Deserializer {
	ret := &Deserializer{Culture: language.English}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Deserialize parses data and populates dest, which has to be a non-nil
// pointer. Missing fields and root keys leave defaults, a failed leaf
// conversion aborts the whole call.
func (d *Deserializer) Deserialize(data []byte, dest interface{}) error {
	if dest == nil {
		return &ConstructionError{Reason: "destination is nil"}
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &ConstructionError{Target: reflect.TypeOf(dest), Reason: "destination has to be a non-nil pointer"}
	}
	doc, err := simplejson.Parse(data)
	if err != nil {
		return &ParseError{Err: err}
	}
	sh := shape.Of(rv.Type().Elem())
	switch sh.Kind {
	case shape.KindList:
		src := doc
		if d.RootElement != "" {
			src = d.root(doc)
		}
		value, err := d.buildList(sh, src)
		if err != nil {
			return err
		}
		rv.Elem().Set(value)
	case shape.KindMap:
		//dictionary destinations consume the outer structure directly
		value, err := d.buildMap(sh, doc)
		if err != nil {
			return err
		}
		rv.Elem().Set(value)
	default:
		src := d.root(doc)
		if src.Kind() != simplejson.KindObject {
			return &ShapeMismatchError{Target: sh.Type, Got: src.Kind()}
		}
		if sh.Kind == shape.KindComposite {
			return d.mapComposite(sh, src.Object(), xunsafe.AsPointer(dest))
		}
		value, err := d.convert(sh, src, "")
		if err != nil {
			return err
		}
		if value.IsValid() {
			rv.Elem().Set(value)
		}
	}
	return nil
}

// Deserialize populates a fresh T from data.
func Deserialize[T any](data []byte, opts ...Option) (T, error) {
	var ret T
	err := New(opts...).Deserialize(data, &ret)
	return ret, err
}

// root returns the value stored under the configured root element, or the
// document unchanged when no root element is configured or the key is
// absent.
func (d *Deserializer) root(doc *simplejson.Node) *simplejson.Node {
	if d.RootElement == "" || doc.Kind() != simplejson.KindObject {
		return doc
	}
	if value, ok := doc.Object().Value(d.RootElement); ok {
		return value
	}
	return doc
}
