package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

type defaultKeySerializer struct {
	prefix string
}

// NewDefaultKeySerializer creates a serializer that joins the method name and
// its arguments with KeySeparator.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// NewPrefixedKeySerializer namespaces every key with prefix, e.g. to share a
// Redis instance between deployments.
func NewPrefixedKeySerializer(prefix string) KeySerializer {
	return &defaultKeySerializer{prefix: prefix}
}

// SerializeKey returns method alone when there are no args, so fixed keys such
// as AllCompaniesKey stay readable.
func (s *defaultKeySerializer) SerializeKey(method string, args ...any) string {
	parts := make([]string, 0, len(args)+2)
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	parts = append(parts, method)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ","))
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return fmt.Sprintf("%v", v)
	}

	// structs and maps: encoding/json sorts map keys, which keeps the output stable
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", rv.Type().String())
	}
	return "json:" + string(data)
}
