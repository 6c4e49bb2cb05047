package shape

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type enumSymbol struct {
	name  string
	value interface{}
}

var enums sync.Map //map[reflect.Type][]enumSymbol

// RegisterEnum declares the symbolic names of an enum type, e.g.
//
//	shape.RegisterEnum(map[string]Status{"Active": StatusActive, "Closed": StatusClosed})
//
// Registered types convert from their symbolic names instead of their
// underlying primitive representation.
func RegisterEnum(values interface{}) error {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("expected map[string]T, got %T", values)
	}
	enumType := rv.Type().Elem()
	if enumType.Name() == "" || enumType.PkgPath() == "" {
		return fmt.Errorf("enum type %s has to be a named type", enumType)
	}
	symbols := make([]enumSymbol, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		symbols = append(symbols, enumSymbol{name: iter.Key().String(), value: iter.Value().Interface()})
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].name < symbols[j].name })
	enums.Store(enumType, symbols)
	//registration changes classification of every cached shape reaching the
	//enum type, not just the enum's own entry
	shapes.Range(func(key, _ interface{}) bool {
		shapes.Delete(key)
		return true
	})
	return nil
}

// EnumName returns the symbolic name registered for value, the reverse of
// EnumValue.
func EnumName(value interface{}) (string, bool) {
	stored, ok := enums.Load(reflect.TypeOf(value))
	if !ok {
		return "", false
	}
	for _, symbol := range stored.([]enumSymbol) {
		if symbol.value == value {
			return symbol.name, true
		}
	}
	return "", false
}

func isEnum(t reflect.Type) bool {
	_, ok := enums.Load(t)
	return ok
}

// EnumValue resolves text against the symbolic names of t, exact match
// first, then case-insensitive using the supplied fold function.
func EnumValue(t reflect.Type, text string, fold func(string) string) (interface{}, bool) {
	value, ok := enums.Load(t)
	if !ok {
		return nil, false
	}
	symbols := value.([]enumSymbol)
	for _, symbol := range symbols {
		if symbol.name == text {
			return symbol.value, true
		}
	}
	folded := fold(text)
	for _, symbol := range symbols {
		if fold(symbol.name) == folded {
			return symbol.value, true
		}
	}
	return nil, false
}
