package database

import (
	"math"

	"github.com/bytedance/sonic"
	"github.com/go-errors/errors"
	"github.com/valyala/fastjson"
)

// JsonObject is the structured representation used to exchange options with
// other components. Values are JSON-compatible: nil, bool, string, numbers,
// JsonObject/map[string]any and JsonArray/[]any.
type JsonObject map[string]any

// JsonArray is an ordered sequence of JSON-compatible values.
type JsonArray []any

var objectPool fastjson.ParserPool

// ParseJsonObject parses raw JSON text into a JsonObject.
func ParseJsonObject(data []byte) (JsonObject, error) {
	parser := objectPool.Get()
	defer objectPool.Put(parser)

	parsed, err := parser.ParseBytes(data)
	if err != nil {
		return nil, errors.Errorf("cannot parse json object: %v", err)
	}

	if parsed.Type() != fastjson.TypeObject {
		return nil, errors.Errorf("expected a json object, got %s", parsed.Type())
	}

	object, _ := rawValue(parsed).(JsonObject)
	return object, nil
}

// rawValue copies a fastjson value out of the parser buffers. Integral numbers
// become int64, the rest float64.
func rawValue(v *fastjson.Value) any {
	if v == nil {
		return nil
	}

	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		if i, err := v.Int64(); err == nil {
			return i
		}
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeArray:
		values := v.GetArray()
		array := make(JsonArray, 0, len(values))
		for _, current := range values {
			array = append(array, rawValue(current))
		}
		return array
	case fastjson.TypeObject:
		obj, _ := v.Object()
		object := JsonObject{}
		obj.Visit(func(key []byte, value *fastjson.Value) {
			object[string(key)] = rawValue(value)
		})
		return object
	}

	return nil
}

// GetString returns the string stored under key. Missing keys and values of
// another type report false.
func (receiver JsonObject) GetString(key string) (string, bool) {
	s, ok := receiver[key].(string)
	return s, ok
}

// GetBoolean returns the boolean under key, or def when the key is missing,
// null or not a boolean.
func (receiver JsonObject) GetBoolean(key string, def bool) bool {
	b, ok := receiver[key].(bool)
	if !ok {
		return def
	}
	return b
}

// GetInteger returns the integral number under key, or def when the value is
// not integral or does not fit in an int.
func (receiver JsonObject) GetInteger(key string, def int) int {
	if n, ok := toInteger(receiver[key]); ok {
		if n.negative {
			if n.signed < math.MinInt {
				return def
			}
			return int(n.signed)
		}
		if n.unsigned > math.MaxInt {
			return def
		}
		return int(n.unsigned)
	}

	f, ok := toFloat64(receiver[key])
	if !ok || f != math.Trunc(f) || f < math.MinInt || f >= -float64(math.MinInt) {
		return def
	}
	return int(f)
}

// GetJsonArray returns the array under key, or def.
func (receiver JsonObject) GetJsonArray(key string, def JsonArray) JsonArray {
	switch v := receiver[key].(type) {
	case JsonArray:
		return v
	case []any:
		return v
	}
	return def
}

// GetJsonObject returns the nested object under key, or nil.
func (receiver JsonObject) GetJsonObject(key string) JsonObject {
	switch v := receiver[key].(type) {
	case JsonObject:
		return v
	case map[string]any:
		return v
	}
	return nil
}

// Copy returns a deep copy of the object.
func (receiver JsonObject) Copy() JsonObject {
	if receiver == nil {
		return nil
	}
	return deepCopy(receiver).(JsonObject)
}

// Copy returns a deep copy of the array.
func (receiver JsonArray) Copy() JsonArray {
	if receiver == nil {
		return nil
	}
	return deepCopy(receiver).(JsonArray)
}

func (receiver JsonObject) Equal(other JsonObject) bool {
	return jsonEqual(receiver, other)
}

func (receiver JsonArray) Equal(other JsonArray) bool {
	return jsonEqual(receiver, other)
}

// Encode returns the canonical encoding of the object: map keys sorted, no
// whitespace. Equal objects always produce the same bytes.
func (receiver JsonObject) Encode() ([]byte, error) {
	if receiver == nil {
		return []byte("{}"), nil
	}
	return sonic.ConfigStd.Marshal(map[string]any(receiver))
}

// deepCopy keeps nil containers nil, they encode as null and not as empty.
func deepCopy(value any) any {
	if isNil(value) {
		return nil
	}

	switch v := value.(type) {
	case JsonObject:
		out := make(JsonObject, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case map[string]any:
		out := make(JsonObject, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case JsonArray:
		out := make(JsonArray, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	case []any:
		out := make(JsonArray, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func asObject(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case JsonObject:
		return v, true
	case map[string]any:
		return v, true
	}
	return nil, false
}

func asArray(value any) ([]any, bool) {
	switch v := value.(type) {
	case JsonArray:
		return v, true
	case []any:
		return v, true
	}
	return nil, false
}

// jsonEqual compares two JSON-compatible values structurally. Numbers are
// compared by value, so int64(1) equals float64(1). Nil containers are null and
// never equal an empty container, matching what Encode writes for them.
func jsonEqual(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	if objA, ok := asObject(a); ok {
		objB, ok := asObject(b)
		if !ok || len(objA) != len(objB) {
			return false
		}
		for key, valueA := range objA {
			valueB, exists := objB[key]
			if !exists || !jsonEqual(valueA, valueB) {
				return false
			}
		}
		return true
	}

	if arrA, ok := asArray(a); ok {
		arrB, ok := asArray(b)
		if !ok || len(arrA) != len(arrB) {
			return false
		}
		for i := range arrA {
			if !jsonEqual(arrA[i], arrB[i]) {
				return false
			}
		}
		return true
	}

	if _, ok := toFloat64(a); ok {
		return numberEqual(a, b)
	}

	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	}

	return false
}

// numberEqual compares integers exactly and only falls back to float64 when
// one side is a float. A float equals an integer only when it holds that exact
// integral value.
func numberEqual(a, b any) bool {
	intA, isIntA := toInteger(a)
	intB, isIntB := toInteger(b)
	if isIntA && isIntB {
		return intA.equal(intB)
	}

	if isIntA {
		f, ok := toFloat64(b)
		return ok && intA.equalFloat(f)
	}

	if isIntB {
		f, ok := toFloat64(a)
		return ok && intB.equalFloat(f)
	}

	fa, _ := toFloat64(a)
	fb, ok := toFloat64(b)
	return ok && fa == fb
}

// integer holds any Go integer without loss: negative values in signed,
// everything else in unsigned.
type integer struct {
	negative bool
	signed   int64
	unsigned uint64
}

func toInteger(v any) (integer, bool) {
	switch n := v.(type) {
	case int:
		return signedInteger(int64(n)), true
	case int8:
		return signedInteger(int64(n)), true
	case int16:
		return signedInteger(int64(n)), true
	case int32:
		return signedInteger(int64(n)), true
	case int64:
		return signedInteger(n), true
	case uint:
		return integer{unsigned: uint64(n)}, true
	case uint8:
		return integer{unsigned: uint64(n)}, true
	case uint16:
		return integer{unsigned: uint64(n)}, true
	case uint32:
		return integer{unsigned: uint64(n)}, true
	case uint64:
		return integer{unsigned: n}, true
	}
	return integer{}, false
}

func signedInteger(n int64) integer {
	if n < 0 {
		return integer{negative: true, signed: n}
	}
	return integer{unsigned: uint64(n)}
}

func (receiver integer) equal(other integer) bool {
	return receiver == other
}

func (receiver integer) equalFloat(f float64) bool {
	if f != math.Trunc(f) {
		return false
	}

	if receiver.negative {
		// -2^63 is exactly representable, so the conversion is safe in range
		if f < math.MinInt64 || f >= 0 {
			return false
		}
		return int64(f) == receiver.signed
	}

	if f < 0 || f >= math.Exp2(64) {
		return false
	}
	return uint64(f) == receiver.unsigned
}

func isNil(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case JsonObject:
		return t == nil
	case map[string]any:
		return t == nil
	case JsonArray:
		return t == nil
	case []any:
		return t == nil
	}
	return false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
