package restsharp

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/bujawang/RestSharp/shape"
	"github.com/bujawang/RestSharp/simplejson"
)

// buildList converts node into a slice of the element shape, preserving
// source order and length. A non-list source becomes a one-element list.
func (d *Deserializer) buildList(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	if node.Kind() != simplejson.KindList {
		ret := reflect.MakeSlice(sh.Type, 1, 1)
		element, err := d.convert(sh.Elem, node, "")
		if err != nil {
			return reflect.Value{}, err
		}
		if element.IsValid() {
			ret.Index(0).Set(element)
		}
		return ret, nil
	}
	items := node.Items()
	ret := reflect.MakeSlice(sh.Type, len(items), len(items))
	for i, item := range items {
		if item.IsNull() {
			//null elements stay as zero elements, never dropped
			continue
		}
		element, err := d.convert(sh.Elem, item, "")
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		if element.IsValid() {
			ret.Index(i).Set(element)
		}
	}
	return ret, nil
}

// buildMap converts an object node into a map of the value shape, processing
// pairs in source insertion order. List-shaped values recurse into list
// building directly.
func (d *Deserializer) buildMap(sh *shape.Shape, node *simplejson.Node) (reflect.Value, error) {
	if node.Kind() != simplejson.KindObject {
		return reflect.Value{}, &ShapeMismatchError{Target: sh.Type, Got: node.Kind()}
	}
	ret := reflect.MakeMap(sh.Type)
	src := node.Object()
	for _, key := range src.Keys() {
		value, _ := src.Value(key)
		mapKey, err := d.mapKey(sh.Key, key)
		if err != nil {
			return reflect.Value{}, err
		}
		var element reflect.Value
		if sh.Elem.Kind == shape.KindList {
			element, err = d.buildList(sh.Elem, value)
		} else {
			element, err = d.convert(sh.Elem, value, "")
		}
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		if !element.IsValid() {
			element = reflect.Zero(sh.Elem.Type)
		}
		ret.SetMapIndex(mapKey, element)
	}
	return ret, nil
}

// mapKey converts a source key to the destination key type, identity for
// strings, locale-aware scalar parse otherwise.
func (d *Deserializer) mapKey(keyType reflect.Type, key string) (reflect.Value, error) {
	ret := reflect.New(keyType).Elem()
	switch keyType.Kind() {
	case reflect.String:
		ret.SetString(key)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err := strconv.ParseInt(d.normalizeNumber(key), 10, 64)
		if err != nil || ret.OverflowInt(value) {
			return reflect.Value{}, &ConversionError{Value: key, Target: keyType, Err: err}
		}
		ret.SetInt(value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value, err := strconv.ParseUint(d.normalizeNumber(key), 10, 64)
		if err != nil || ret.OverflowUint(value) {
			return reflect.Value{}, &ConversionError{Value: key, Target: keyType, Err: err}
		}
		ret.SetUint(value)
	case reflect.Float32, reflect.Float64:
		value, err := strconv.ParseFloat(d.normalizeNumber(key), 64)
		if err != nil {
			return reflect.Value{}, &ConversionError{Value: key, Target: keyType, Err: err}
		}
		ret.SetFloat(value)
	case reflect.Bool:
		value, err := strconv.ParseBool(key)
		if err != nil {
			return reflect.Value{}, &ConversionError{Value: key, Target: keyType, Err: err}
		}
		ret.SetBool(value)
	default:
		return reflect.Value{}, &ConversionError{Value: key, Target: keyType}
	}
	return ret, nil
}
