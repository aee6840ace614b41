package logger

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mordilloSan/go-console/selflog"
)

type codeError struct {
	Code string `json:"code"`
	msg  string
}

func (e *codeError) Error() string { return e.msg }

type namedError struct{}

func (namedError) Error() string { return "named" }
func (namedError) Name() string { return "ValidationError" }

type stackedError struct{}

func (stackedError) Error() string { return "stacked" }
func (stackedError) Stack() string { return "main.run:12" }

type shadowError struct {
	Message string `json:"message"`
	Extra   int
}

func (shadowError) Error() string { return "original" }

type node struct {
	Name string
	Next *node
}

type badJSON struct{}

func (badJSON) MarshalJSON() ([]byte, error) { return nil, errors.New("no json") }

type panicJSON struct{}

func (panicJSON) MarshalJSON() ([]byte, error) { panic("kaboom") }

func TestStringify_Scalars(t *testing.T) {
	d := 1500 * time.Millisecond
	n := 7
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "as is", "as is"},
		{"empty string", "", ""},
		{"nil", nil, "null"},
		{"nil pointer", (*node)(nil), "null"},
		{"nil map", map[string]int(nil), "null"},
		{"undefined", Undefined, "undefined"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"stringer", d, "1.5s"},
		{"pointer to int", &n, "7"},
		{"big int", big.NewInt(123), "123n"},
		{"big int value", *big.NewInt(-9), "-9n"},
		{"huge big int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424n"},
		{"date", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), "2024-01-15T10:30:00.000Z"},
		{"date pointer", ptr(time.Date(2024, 1, 15, 11, 30, 0, 5_000_000, time.FixedZone("X", 3600))), "2024-01-15T10:30:00.005Z"},
		{"regexp", regexp.MustCompile(`abc[a-z]+`), "/abc[a-z]+/"},
		{"regexp flags", regexp.MustCompile(`(?is)abc[a-z]+`), "/abc[a-z]+/is"},
		{"regexp group kept", regexp.MustCompile(`(?i:a)b`), "/(?i:a)b/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(tc.in); got != tc.want {
				t.Fatalf("Stringify(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestStringify_Struct(t *testing.T) {
	in := struct {
		Name  string `json:"name"`
		Count int    `json:"count,omitempty"`
		Skip  string `json:"-"`
		inner string
	}{Name: "a", Skip: "x", inner: "hidden"}

	if got, want := Stringify(in), "{\n  \"name\": \"a\"\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringify_FieldOrderAndEmbedding(t *testing.T) {
	type Base struct {
		ID int
	}
	in := &struct {
		Base
		Zeta  string
		Alpha []int
	}{Base{ID: 1}, "z", []int{1, 2}}

	got := Stringify(in)
	id, zeta, alpha := strings.Index(got, `"ID"`), strings.Index(got, `"Zeta"`), strings.Index(got, `"Alpha"`)
	if id < 0 || !(id < zeta && zeta < alpha) {
		t.Fatalf("fields out of declaration order: %q", got)
	}
	if strings.Contains(got, `"Base"`) {
		t.Fatalf("embedded struct should be flattened: %q", got)
	}
}

func TestStringify_SliceAndEscaping(t *testing.T) {
	got := Stringify([]any{"a<b", 1, nil, math.NaN()})
	want := "[\n  \"a<b\",\n  1,\n  null,\n  null\n]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	type link struct {
		URL string `json:"url"`
	}
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"struct field", link{URL: "<a&b>"}, "{\n  \"url\": \"<a&b>\"\n}"},
		{"map value", map[string]string{"k": "<a&b>"}, "Map(1) {\n  \"k\": \"<a&b>\"\n}"},
		{"map key", map[string]int{"x=1&y=2": 1}, "Map(1) {\n  \"x=1&y=2\": 1\n}"},
		{"nested object", []link{{URL: "a?x=1&y=2"}}, "[\n  {\n    \"url\": \"a?x=1&y=2\"\n  }\n]"},
		{"error message", errors.New("<nil> & more"), "{\n  \"name\": \"Error\",\n  \"message\": \"<nil> & more\"\n}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStringify_Map(t *testing.T) {
	got := Stringify(map[string]int{"b": 2, "a": 1})
	if want := "Map(2) {\n  \"a\": 1,\n  \"b\": 2\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := Stringify(map[int]string{10: "x"}); !strings.HasPrefix(got, "Map(1) {") || !strings.Contains(got, `"10": "x"`) {
		t.Fatalf("non-string keys should print as text, got %q", got)
	}
	if got := Stringify(map[string]int{}); got != "Map(0) {}" {
		t.Fatalf("empty map = %q", got)
	}
}

func TestStringify_Set(t *testing.T) {
	got := Stringify(map[string]struct{}{"b": {}, "a": {}})
	if want := "Set(2) [\n  \"a\",\n  \"b\"\n]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringify_SyncMap(t *testing.T) {
	var m sync.Map
	m.Store("k", []string{"v"})
	if got, want := Stringify(&m), "Map(1) {\n  \"k\": [\n    \"v\"\n  ]\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringify_Circular(t *testing.T) {
	n := &node{Name: "a"}
	n.Next = n

	got := Stringify(n)
	if !strings.Contains(got, circularMarker) || !strings.Contains(got, `"Name": "a"`) {
		t.Fatalf("expected circular marker, got %q", got)
	}

	m := map[string]any{}
	m["self"] = m
	if got, want := Stringify(m), "Map(1) {\n  \"self\": \"[Circular]\"\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	s := []any{1, nil}
	s[1] = s
	if got := Stringify(s); !strings.Contains(got, circularMarker) {
		t.Fatalf("self-referencing slice: %q", got)
	}
}

func TestStringify_RepeatedReferenceIsMarked(t *testing.T) {
	shared := &node{Name: "shared"}
	got := Stringify([]*node{shared, shared})
	if strings.Count(got, `"shared"`) != 1 || strings.Count(got, circularMarker) != 1 {
		t.Fatalf("second visit should be marked, got %q", got)
	}
}

func TestStringify_GuardIsPerCall(t *testing.T) {
	shared := &node{Name: "shared"}
	first, second := Stringify(shared), Stringify(shared)
	if first != second || strings.Contains(first, circularMarker) {
		t.Fatalf("guard leaked between calls: %q vs %q", first, second)
	}

	log, stdoutBuf, _ := newTestLogger(WithIcons(false))
	log.Info(shared, shared)
	if strings.Contains(stdoutBuf.String(), circularMarker) {
		t.Fatalf("guard leaked between arguments: %q", stdoutBuf.String())
	}
}

func TestStringify_Errors(t *testing.T) {
	got := Stringify(errors.New("boom"))
	if want := "{\n  \"name\": \"Error\",\n  \"message\": \"boom\"\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = Stringify(&codeError{Code: "E1", msg: "boom"})
	if want := "{\n  \"name\": \"Error\",\n  \"message\": \"boom\",\n  \"code\": \"E1\"\n}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got := Stringify(namedError{}); !strings.Contains(got, `"name": "ValidationError"`) {
		t.Fatalf("Name method ignored: %q", got)
	}
	if got := Stringify(stackedError{}); !strings.Contains(got, `"stack": "main.run:12"`) {
		t.Fatalf("stack missing: %q", got)
	}
	if got := Stringify(fmt.Errorf("wrap: %w", errors.New("inner"))); !strings.Contains(got, `"message": "wrap: inner"`) {
		t.Fatalf("wrapped message: %q", got)
	}
}

func TestStringify_ErrorFieldReplacesInPlace(t *testing.T) {
	got := Stringify(shadowError{Message: "override", Extra: 3})
	want := "{\n  \"name\": \"Error\",\n  \"message\": \"override\",\n  \"Extra\": 3\n}"
	if strings.Count(got, `"message"`) != 1 || !strings.Contains(got, `"message": "override"`) {
		t.Fatalf("got %q", got)
	}
	if strings.Index(got, `"message"`) > strings.Index(got, `"Extra"`) {
		t.Fatalf("overridden key moved: got %q, want layout %q", got, want)
	}
}

func TestStringify_ErrorNameForUnexportedType(t *testing.T) {
	if got := errorName(&codeError{}); got != "Error" {
		t.Fatalf("unexported error types should be named Error, got %q", got)
	}
}

func TestStringify_NestedError(t *testing.T) {
	got := Stringify(struct{ Err error }{errors.New("inner")})
	if !strings.Contains(got, `"Err": {`) || !strings.Contains(got, `"message": "inner"`) {
		t.Fatalf("nested error: %q", got)
	}
}

func TestStringify_WithStack(t *testing.T) {
	err := WithStack(&codeError{Code: "E2", msg: "traced"})
	got := Stringify(err)
	for _, want := range []string{`"message": "traced"`, `"code": "E2"`, `"stack"`, "logger.TestStringify_WithStack"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	if !errors.Is(err, err) || errors.Unwrap(err) == nil {
		t.Fatal("WithStack must unwrap to the original error")
	}
	if WithStack(nil) != nil {
		t.Fatal("WithStack(nil) should be nil")
	}
}

func TestStringify_FallbackNeverFails(t *testing.T) {
	var reports []string
	selflog.EnableFunc(func(msg string) { reports = append(reports, msg) })
	defer selflog.Disable()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"marshal error", badJSON{}, "{}"},
		{"marshal panic", panicJSON{}, "{}"},
		{"func field", struct{ F func() }{F: func() {}}, ""},
		{"chan in slice", []any{make(chan int)}, ""},
	}
	for _, tc := range cases {
		got := Stringify(tc.in)
		if tc.want != "" && got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
		if got == "" {
			t.Fatalf("%s: empty fallback", tc.name)
		}
	}
	if len(reports) < len(cases)-1 {
		t.Fatalf("expected fallbacks to be reported, got %q", reports)
	}
	for _, r := range reports {
		if !strings.Contains(r, "[stringify]") {
			t.Fatalf("unexpected report: %q", r)
		}
	}
}

func TestStringify_Bytes(t *testing.T) {
	if got := Stringify([]byte("hi")); got != `"aGk="` {
		t.Fatalf("got %q", got)
	}
}
