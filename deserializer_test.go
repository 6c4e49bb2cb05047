package restsharp

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/bujawang/RestSharp/simplejson"
)

type address struct {
	City string
	Zip  string `json:"postal_code"`
}

type person struct {
	Name     string
	Age      int
	Balance  decimal.Decimal
	Birthday *time.Time
	HomeTown string `json:"address.city"`
	Address  address
	Tags     []string
	Extra    interface{}
}

func TestDeserialize(t *testing.T) {
	payload := `{
		"name": "Ada",
		"age": 36,
		"balance": 12.5,
		"birthday": "1815-12-10T00:00:00Z",
		"address": {"city": "London", "postal_code": "N1"},
		"tags": ["math", "engines"],
		"extra": 7
	}`
	var actual person
	err := New().Deserialize([]byte(payload), &actual)
	assert.Nil(t, err)
	assert.Equal(t, "Ada", actual.Name)
	assert.Equal(t, 36, actual.Age)
	assert.Equal(t, "12.5", actual.Balance.String())
	if assert.NotNil(t, actual.Birthday) {
		assert.Equal(t, time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC), actual.Birthday.UTC())
	}
	assert.Equal(t, "London", actual.HomeTown, "dotted wire name")
	assert.Equal(t, address{City: "London", Zip: "N1"}, actual.Address)
	assert.Equal(t, []string{"math", "engines"}, actual.Tags)
	assert.Equal(t, int64(7), actual.Extra)
}

func TestDeserialize_PartialPayload(t *testing.T) {
	var actual person
	err := New().Deserialize([]byte(`{"name":"Ada"}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, "Ada", actual.Name)
	assert.Equal(t, 0, actual.Age, "missing fields keep defaults")
	assert.Nil(t, actual.Birthday)
	assert.Nil(t, actual.Tags)
}

func TestDeserialize_NameVariants(t *testing.T) {
	type product struct {
		ProductId int
		UnitPrice float64
	}
	testCases := []struct {
		description string
		payload     string
	}{
		{"declared", `{"ProductId":3,"UnitPrice":1.5}`},
		{"lower camel", `{"productId":3,"unitPrice":1.5}`},
		{"underscore", `{"product_id":3,"unit_price":1.5}`},
		{"dash", `{"product-id":3,"unit-price":1.5}`},
		{"lower", `{"productid":3,"unitprice":1.5}`},
	}
	for _, testCase := range testCases {
		var actual product
		err := New().Deserialize([]byte(testCase.payload), &actual)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, product{ProductId: 3, UnitPrice: 1.5}, actual, testCase.description)
	}
}

func TestDeserialize_RootElement(t *testing.T) {
	payload := `{"response":{"name":"Ada"},"status":"ok"}`

	var scoped person
	err := New(WithRootElement("response")).Deserialize([]byte(payload), &scoped)
	assert.Nil(t, err)
	assert.Equal(t, "Ada", scoped.Name)

	//an absent root element silently falls back to the whole payload
	var fallback person
	err = New(WithRootElement("missing")).Deserialize([]byte(`{"name":"Ada"}`), &fallback)
	assert.Nil(t, err)
	var plain person
	assert.Nil(t, New().Deserialize([]byte(`{"name":"Ada"}`), &plain))
	assert.Equal(t, plain, fallback)
}

func TestDeserialize_RootElementList(t *testing.T) {
	var actual []item
	err := New(WithRootElement("items")).Deserialize([]byte(`{"items":[{"name":"a"},{"name":"b"}]}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, []item{{Name: "a"}, {Name: "b"}}, actual)

	//without a configured root the whole document is the list source
	var whole []int
	err = New().Deserialize([]byte(`[1,2]`), &whole)
	assert.Nil(t, err)
	assert.Equal(t, []int{1, 2}, whole)
}

func TestDeserialize_MapDestination(t *testing.T) {
	//dictionary destinations ignore the root element and consume the outer structure
	var actual map[string]int
	err := New(WithRootElement("b")).Deserialize([]byte(`{"b":2,"a":1}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, map[string]int{"b": 2, "a": 1}, actual)
}

func TestDeserialize_ObjectDestination(t *testing.T) {
	//an ordered object destination keeps source insertion order
	var actual simplejson.Object
	err := New().Deserialize([]byte(`{"b":2,"a":1}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, []string{"b", "a"}, actual.Keys())
}

func TestDeserialize_DottedPathMiss(t *testing.T) {
	type located struct {
		City string `json:"address.city"`
	}
	var actual located
	err := New().Deserialize([]byte(`{"address":{}}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, "", actual.City, "a miss at the leaf segment keeps the default")

	err = New().Deserialize([]byte(`{"address":"flat"}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, "", actual.City, "a non-object at an inner segment keeps the default")
}

func TestDeserialize_PerFieldDateFormat(t *testing.T) {
	type record struct {
		Seen time.Time `format:"dateFormat=YYYY-MM-DD"`
	}
	var actual record
	err := New().Deserialize([]byte(`{"seen":"2011-06-30"}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2011, 6, 30, 0, 0, 0, 0, time.UTC), actual.Seen)
}

func TestDeserialize_Culture(t *testing.T) {
	type invoice struct {
		Total float64
	}
	var actual invoice
	err := New(WithCulture(language.German)).Deserialize([]byte(`{"total":"1.234,56"}`), &actual)
	assert.Nil(t, err)
	assert.Equal(t, 1234.56, actual.Total)
}

func TestDeserialize_Errors(t *testing.T) {
	var target person

	err := New().Deserialize([]byte(`{invalid`), &target)
	parseErr := &ParseError{}
	assert.ErrorAs(t, err, &parseErr)

	err = New().Deserialize([]byte(`[1,2,3]`), &target)
	shapeErr := &ShapeMismatchError{}
	assert.ErrorAs(t, err, &shapeErr, "composite destinations require an object")

	err = New().Deserialize([]byte(`{"age":"not a number"}`), &target)
	convErr := &ConversionError{}
	assert.ErrorAs(t, err, &convErr, "leaf conversion failures abort the call")

	err = New().Deserialize([]byte(`{}`), nil)
	consErr := &ConstructionError{}
	assert.ErrorAs(t, err, &consErr)

	err = New().Deserialize([]byte(`{}`), person{})
	assert.ErrorAs(t, err, &consErr, "destination has to be a pointer")
}

func TestDeserialize_Generic(t *testing.T) {
	actual, err := Deserialize[person]([]byte(`{"name":"Ada","age":36}`), WithRootElement("missing"))
	assert.Nil(t, err)
	assert.Equal(t, "Ada", actual.Name)
	assert.Equal(t, 36, actual.Age)

	_, err = Deserialize[person]([]byte(`{"age":[]}`))
	var convErr *ConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestDeserialize_Reentrant(t *testing.T) {
	d := New(WithRootElement("response"))
	payload := []byte(`{"response":{"name":"Ada","age":36}}`)
	for i := 0; i < 3; i++ {
		var actual person
		assert.Nil(t, d.Deserialize(payload, &actual))
		assert.Equal(t, "Ada", actual.Name)
	}
}
