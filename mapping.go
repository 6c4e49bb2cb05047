package restsharp

import (
	"unsafe"

	"golang.org/x/text/language"

	"github.com/bujawang/RestSharp/casing"
	"github.com/bujawang/RestSharp/shape"
	"github.com/bujawang/RestSharp/simplejson"
)

// mapComposite populates the composite at ptr from src, field by field.
// Fields whose wire name resolves to nothing, or to an explicit null, keep
// their defaults.
func (d *Deserializer) mapComposite(sh *shape.Shape, src *simplejson.Object, ptr unsafe.Pointer) error {
	for _, field := range sh.Fields {
		node := d.resolve(src, field.Path())
		if node == nil || node.IsNull() {
			continue
		}
		value, err := d.convert(field.Shape, node, field.TimeLayout)
		if err != nil {
			return err
		}
		if !value.IsValid() {
			continue
		}
		field.Set(ptr, value.Interface())
	}
	return nil
}

// resolve walks dotted wire-name segments against nested objects, selecting
// the first name variant present at each segment. A miss at any segment
// abandons the lookup.
func (d *Deserializer) resolve(src *simplejson.Object, segments []string) *simplejson.Node {
	current := src
	last := len(segments) - 1
	for i, segment := range segments {
		node := lookupVariant(current, segment, d.Culture)
		if node == nil {
			return nil
		}
		if i == last {
			return node
		}
		if node.Kind() != simplejson.KindObject {
			return nil
		}
		current = node.Object()
	}
	return nil
}

func lookupVariant(src *simplejson.Object, segment string, culture language.Tag) *simplejson.Node {
	for _, variant := range casing.Variants(segment, culture) {
		if node, ok := src.Value(variant); ok {
			return node
		}
	}
	return nil
}
