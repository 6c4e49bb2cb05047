package restsharp

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bujawang/RestSharp/shape"
)

func TestBuildList(t *testing.T) {
	d := New()
	testCases := []struct {
		description string
		prototype   interface{}
		input       string
		expect      interface{}
	}{
		{
			description: "array source",
			prototype:   []int{},
			input:       `[1,2,3]`,
			expect:      []int{1, 2, 3},
		},
		{
			description: "scalar source becomes one element",
			prototype:   []int{},
			input:       `"5"`,
			expect:      []int{5},
		},
		{
			description: "object source becomes one element",
			prototype:   []item{},
			input:       `{"name":"only"}`,
			expect:      []item{{Name: "only"}},
		},
		{
			description: "null elements stay as zero elements",
			prototype:   []*int{},
			input:       `[1,null,3]`,
			expect:      []*int{ptrTo(1), nil, ptrTo(3)},
		},
		{
			description: "empty array",
			prototype:   []string{},
			input:       `[]`,
			expect:      []string{},
		},
		{
			description: "nested lists",
			prototype:   [][]int{},
			input:       `[[1],[2,3]]`,
			expect:      [][]int{{1}, {2, 3}},
		},
	}
	for _, testCase := range testCases {
		sh := shape.Of(reflect.TypeOf(testCase.prototype))
		actual, err := d.buildList(sh, parseNode(t, testCase.input))
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual.Interface(), testCase.description)
	}
}

type item struct {
	Name string
}

func ptrTo[T any](value T) *T {
	return &value
}

func TestBuildMap(t *testing.T) {
	d := New()
	testCases := []struct {
		description string
		prototype   interface{}
		input       string
		expect      interface{}
	}{
		{
			description: "string to int",
			prototype:   map[string]int{},
			input:       `{"b":2,"a":1}`,
			expect:      map[string]int{"b": 2, "a": 1},
		},
		{
			description: "dictionary of lists",
			prototype:   map[string][]int{},
			input:       `{"odds":[1,3],"evens":[2,4]}`,
			expect:      map[string][]int{"odds": {1, 3}, "evens": {2, 4}},
		},
		{
			description: "null values become defaults",
			prototype:   map[string]string{},
			input:       `{"a":null,"b":"x"}`,
			expect:      map[string]string{"a": "", "b": "x"},
		},
		{
			description: "dynamic values",
			prototype:   map[string]interface{}{},
			input:       `{"n":1,"s":"x"}`,
			expect:      map[string]interface{}{"n": int64(1), "s": "x"},
		},
		{
			description: "composite values",
			prototype:   map[string]item{},
			input:       `{"first":{"name":"a"}}`,
			expect:      map[string]item{"first": {Name: "a"}},
		},
	}
	for _, testCase := range testCases {
		sh := shape.Of(reflect.TypeOf(testCase.prototype))
		actual, err := d.buildMap(sh, parseNode(t, testCase.input))
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual.Interface(), testCase.description)
	}
}

func TestBuildMap_KeyConversion(t *testing.T) {
	d := New()
	sh := shape.Of(reflect.TypeOf(map[int]string{}))
	actual, err := d.buildMap(sh, parseNode(t, `{"2":"b","1":"a"}`))
	assert.Nil(t, err)
	assert.Equal(t, map[int]string{1: "a", 2: "b"}, actual.Interface())

	_, err = d.buildMap(sh, parseNode(t, `{"x":"a"}`))
	assert.NotNil(t, err, "unparsable key")
}

func TestBuildMap_ShapeMismatch(t *testing.T) {
	d := New()
	sh := shape.Of(reflect.TypeOf(map[string]int{}))
	_, err := d.buildMap(sh, parseNode(t, `[1,2]`))
	shapeErr := &ShapeMismatchError{}
	assert.ErrorAs(t, err, &shapeErr)
}
