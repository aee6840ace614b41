package logger

import (
	"bytes"
	"encoding"
	"fmt"
	"go/token"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const circularMarker = "[Circular]"

// ref identifies a pointer, map or slice by address and type. Slices also
// carry their length so that sub-slices of one array stay distinct.
type ref struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// object is a JSON object that keeps keys in insertion order. Setting an
// existing key replaces its value in place.
type object struct {
	pairs *orderedmap.OrderedMap[string, any]
}

func newObject() *object {
	return &object{pairs: orderedmap.New[string, any]()}
}

func (o *object) set(key string, value any) {
	o.pairs.Set(key, value)
}

// MarshalJSON writes the members in order. Keys and values go through
// go-json without HTML escaping so nested strings read the same as
// top-level ones.
func (o *object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		key, err := json.MarshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.MarshalNoEscape(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("logger: field %q: %w", pair.Key, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// encoder turns arbitrary values into a tree of ordered objects, slices and
// scalars that go-json can write. One encoder serves one top-level value.
type encoder struct {
	seen map[ref]struct{}
}

func newEncoder() *encoder {
	return &encoder{seen: make(map[ref]struct{})}
}

// enter records rv and reports whether this is its first visit.
// Values without identity always report true.
func (e *encoder) enter(rv reflect.Value) bool {
	var r ref
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.Type().Elem().Size() == 0 {
			return true
		}
		r = ref{ptr: rv.Pointer(), typ: rv.Type()}
	case reflect.Map:
		r = ref{ptr: rv.Pointer(), typ: rv.Type()}
	case reflect.Slice:
		if rv.Len() == 0 || rv.Type().Elem().Size() == 0 {
			return true
		}
		r = ref{ptr: rv.Pointer(), typ: rv.Type(), n: rv.Len()}
	default:
		return true
	}
	if _, ok := e.seen[r]; ok {
		return false
	}
	e.seen[r] = struct{}{}
	return true
}

func (e *encoder) value(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		return e.value(rv.Elem())
	}
	if isNil(rv) {
		return nil, nil
	}

	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case undefined:
			return nil, nil
		case time.Time:
			return formatTime(x), nil
		case *time.Time:
			return formatTime(*x), nil
		case big.Int:
			return new(big.Int).Set(&x), nil
		case *regexp.Regexp:
			return regexpLiteral(x), nil
		}
	}

	if !e.enter(rv) {
		return circularMarker, nil
	}

	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case json.Marshaler:
			return x, nil
		case error:
			return e.errorObject(x, rv)
		case encoding.TextMarshaler:
			return x, nil
		}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return e.value(rv.Elem())
	case reflect.Map:
		if isSet(rv.Type()) {
			return e.setMembers(rv)
		}
		return e.mapObject(rv)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return append([]byte(nil), rv.Bytes()...), nil
		}
		return e.list(rv)
	case reflect.Array:
		return e.list(rv)
	case reflect.Struct:
		obj := newObject()
		if err := e.fields(rv, obj); err != nil {
			return nil, err
		}
		return obj, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, nil
		}
		return f, nil
	case reflect.String:
		return rv.String(), nil
	}
	return nil, fmt.Errorf("logger: cannot serialize value of type %s", rv.Type())
}

func (e *encoder) list(rv reflect.Value) ([]any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		v, err := e.value(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// mapObject writes map entries as an object with keys in text order.
func (e *encoder) mapObject(rv reflect.Value) (*object, error) {
	keys := sortedKeys(rv)
	obj := newObject()
	for _, k := range keys {
		v, err := e.value(rv.MapIndex(k.value))
		if err != nil {
			return nil, err
		}
		obj.set(k.text, v)
	}
	return obj, nil
}

// setMembers writes the keys of a map[K]struct{} as an array in text order.
func (e *encoder) setMembers(rv reflect.Value) ([]any, error) {
	keys := sortedKeys(rv)
	out := make([]any, len(keys))
	for i, k := range keys {
		v, err := e.value(k.value)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type mapKey struct {
	text  string
	value reflect.Value
}

func sortedKeys(rv reflect.Value) []mapKey {
	keys := make([]mapKey, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, mapKey{text: keyString(iter.Key()), value: iter.Key()})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].text < keys[j].text })
	return keys
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			if text, err := tm.MarshalText(); err == nil {
				return string(text)
			}
		}
		return fmt.Sprint(k.Interface())
	}
	return fmt.Sprint(k)
}

// fields copies the exported fields of the struct rv into obj in
// declaration order. Untagged embedded structs are flattened and json tags
// rename, omit ("-") or drop empty values ("omitempty").
func (e *encoder) fields(rv reflect.Value, obj *object) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, omitEmpty, skip := jsonField(f)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if f.Anonymous && name == f.Name {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if !f.IsExported() || inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				if err := e.fields(inner, obj); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		v, err := e.value(fv)
		if err != nil {
			return err
		}
		obj.set(name, v)
	}
	return nil
}

func jsonField(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

type stackStringer interface {
	Stack() string
}

type stackBytes interface {
	Stack() []byte
}

// errorObject renders err as name, message, an optional stack, and the
// exported fields of its concrete struct. A field that reuses one of the
// first three keys replaces it in place.
func (e *encoder) errorObject(err error, rv reflect.Value) (*object, error) {
	obj := newObject()
	obj.set("name", errorName(err))
	obj.set("message", err.Error())
	if stack := errorStack(err); stack != "" {
		obj.set("stack", stack)
	}

	if se, ok := err.(*stackError); ok {
		rv = reflect.ValueOf(se.err)
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return obj, nil
		}
		e.enter(rv)
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		if err := e.fields(rv, obj); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// errorName prefers a Name method, then the exported type name, then "Error".
func errorName(err error) string {
	if n, ok := err.(interface{ Name() string }); ok {
		return n.Name()
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" && token.IsExported(name) {
		return name
	}
	return "Error"
}

func errorStack(err error) string {
	switch s := err.(type) {
	case stackStringer:
		return s.Stack()
	case stackBytes:
		return string(s.Stack())
	}
	return ""
}
