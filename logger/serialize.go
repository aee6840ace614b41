package logger

import (
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/mordilloSan/go-console/selflog"
)

// Undefined marks an absent value. It is written as "undefined", while a
// nil argument is written as "null".
var Undefined = undefined{}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Stringify converts one message argument to text. Strings are returned
// unchanged; other values are rendered by kind:
//
//   - nil and nil pointers, maps and slices: null
//   - Undefined: undefined
//   - big.Int: decimal digits followed by "n"
//   - error: indented JSON with name, message, stack (if any) and the
//     error's exported fields
//   - *regexp.Regexp: /source/flags
//   - time.Time: ISO-8601 in UTC with milliseconds
//   - map[K]struct{}: Set(n) followed by the members as a JSON array
//   - other maps and *sync.Map: Map(n) followed by the entries as a JSON object
//   - structs, slices, arrays and json.Marshaler values: indented JSON
//   - anything else: its fmt.Sprint form
//
// JSON output replaces every repeated reference with "[Circular]". If a
// value cannot be serialized, Stringify falls back to fmt.Sprint and never
// fails.
func Stringify(v any) (s string) {
	if str, ok := v.(string); ok {
		return str
	}
	defer func() {
		if r := recover(); r != nil {
			selflog.Printf("[stringify] recovered from panic on %T: %v", v, r)
			s = fmt.Sprint(v)
		}
	}()
	out, err := stringify(v)
	if err != nil {
		selflog.Printf("[stringify] falling back to plain text for %T: %v", v, err)
		return fmt.Sprint(v)
	}
	return out
}

func stringify(v any) (string, error) {
	if v == nil || isNil(reflect.ValueOf(v)) {
		return "null", nil
	}
	switch x := v.(type) {
	case undefined:
		return "undefined", nil
	case *big.Int:
		return x.String() + "n", nil
	case big.Int:
		return x.String() + "n", nil
	case error:
		return stringifyError(x)
	case *regexp.Regexp:
		return regexpLiteral(x), nil
	case time.Time:
		return formatTime(x), nil
	case *time.Time:
		return formatTime(*x), nil
	case *sync.Map:
		return stringifySyncMap(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if isSet(rv.Type()) {
			return stringifySet(rv)
		}
		return stringifyMap(rv)
	case reflect.Struct, reflect.Slice, reflect.Array:
		return stringifyJSON(v)
	case reflect.Pointer:
		switch rv.Elem().Kind() {
		case reflect.Struct, reflect.Slice, reflect.Array:
			return stringifyJSON(v)
		}
		if _, ok := v.(json.Marshaler); ok {
			return stringifyJSON(v)
		}
		if _, ok := v.(fmt.Stringer); ok {
			return fmt.Sprint(v), nil
		}
		return stringify(rv.Elem().Interface())
	}
	if _, ok := v.(json.Marshaler); ok {
		return stringifyJSON(v)
	}
	return fmt.Sprint(v), nil
}

func stringifyJSON(v any) (string, error) {
	tree, err := newEncoder().value(reflect.ValueOf(v))
	if err != nil {
		return "", err
	}
	return indentJSON(tree)
}

func stringifyError(err error) (string, error) {
	obj, encErr := newEncoder().errorObject(err, reflect.ValueOf(err))
	if encErr != nil {
		return "", encErr
	}
	return indentJSON(obj)
}

func stringifyMap(rv reflect.Value) (string, error) {
	obj, err := newEncoder().value(rv)
	if err != nil {
		return "", err
	}
	text, err := indentJSON(obj)
	if err != nil {
		return "", err
	}
	return "Map(" + strconv.Itoa(rv.Len()) + ") " + text, nil
}

func stringifySet(rv reflect.Value) (string, error) {
	members, err := newEncoder().value(rv)
	if err != nil {
		return "", err
	}
	text, err := indentJSON(members)
	if err != nil {
		return "", err
	}
	return "Set(" + strconv.Itoa(rv.Len()) + ") " + text, nil
}

func stringifySyncMap(m *sync.Map) (string, error) {
	e := newEncoder()
	type entry struct {
		key   string
		value any
	}
	var (
		entries []entry
		err     error
	)
	m.Range(func(k, v any) bool {
		var val any
		val, err = e.value(reflect.ValueOf(v))
		if err != nil {
			return false
		}
		entries = append(entries, entry{key: keyString(reflect.ValueOf(k)), value: val})
		return true
	})
	if err != nil {
		return "", err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	obj := newObject()
	for _, en := range entries {
		obj.set(en.key, en.value)
	}
	text, err := indentJSON(obj)
	if err != nil {
		return "", err
	}
	return "Map(" + strconv.Itoa(len(entries)) + ") " + text, nil
}

// regexpLiteral writes re as /source/flags, lifting a leading (?flags)
// group into the trailing flags.
func regexpLiteral(re *regexp.Regexp) string {
	src := re.String()
	flags := ""
	if strings.HasPrefix(src, "(?") {
		if end := strings.IndexByte(src, ')'); end > 2 && onlyFlags(src[2:end]) {
			flags = src[2:end]
			src = src[end+1:]
		}
	}
	return "/" + src + "/" + flags
}

func onlyFlags(s string) bool {
	for _, r := range s {
		switch r {
		case 'i', 'm', 's', 'U':
		default:
			return false
		}
	}
	return true
}

// isSet reports whether t is a map used as a set, i.e. map[K]struct{}.
func isSet(t reflect.Type) bool {
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func indentJSON(tree any) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
