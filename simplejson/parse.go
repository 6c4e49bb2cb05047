package simplejson

import (
	"bytes"
	"fmt"

	"github.com/francoispqt/gojay"
)

// Parse decodes JSON text into a value tree, preserving object key order
// and raw number literals.
func Parse(data []byte) (*Node, error) {
	return parseValue(data)
}

func parseValue(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	switch trimmed[0] {
	case '{':
		builder := &objectBuilder{object: NewObject(), limit: len(trimmed)}
		if err := gojay.UnmarshalJSONObject(trimmed, builder); err != nil {
			return nil, err
		}
		return ObjectNode(builder.object), nil
	case '[':
		builder := &listBuilder{limit: len(trimmed)}
		if err := gojay.UnmarshalJSONArray(trimmed, builder); err != nil {
			return nil, err
		}
		return ListNode(builder.items), nil
	case '"':
		var value string
		if err := gojay.Unmarshal(trimmed, &value); err != nil {
			return nil, err
		}
		return StringNode(value), nil
	case 't', 'f':
		var value bool
		if err := gojay.Unmarshal(trimmed, &value); err != nil {
			return nil, err
		}
		return BoolNode(value), nil
	case 'n':
		if string(trimmed) != "null" {
			return nil, fmt.Errorf("invalid literal %q", trimmed)
		}
		return NullNode(), nil
	default:
		var value float64
		if err := gojay.Unmarshal(trimmed, &value); err != nil {
			return nil, err
		}
		return NumberNode(string(trimmed), value), nil
	}
}

// embedded reads one raw member value. On malformed input the decoder can
// hand back a slice that has not consumed anything, which would recurse
// forever; a nested value has to be strictly smaller than its container.
func embedded(dec *gojay.Decoder, limit int) ([]byte, error) {
	var raw gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&raw); err != nil {
		return nil, err
	}
	value := bytes.TrimSpace(raw)
	if len(value) == 0 || len(value) >= limit {
		return nil, fmt.Errorf("malformed value %q", raw)
	}
	return value, nil
}

type objectBuilder struct {
	object *Object
	limit  int
}

func (b *objectBuilder) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	raw, err := embedded(dec, b.limit)
	if err != nil {
		return err
	}
	node, err := parseValue(raw)
	if err != nil {
		return err
	}
	b.object.Set(key, node)
	return nil
}

func (b *objectBuilder) NKeys() int {
	return 0
}

type listBuilder struct {
	items []*Node
	limit int
}

func (b *listBuilder) UnmarshalJSONArray(dec *gojay.Decoder) error {
	raw, err := embedded(dec, b.limit)
	if err != nil {
		return err
	}
	node, err := parseValue(raw)
	if err != nil {
		return err
	}
	b.items = append(b.items, node)
	return nil
}
