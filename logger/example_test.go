package logger_test

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mordilloSan/go-console/logger"
)

// plain writes both streams to os.Stdout without colors or icons so the
// output can be checked.
func plain(opts ...logger.Option) *logger.Logger {
	base := []logger.Option{
		logger.WithOutput(os.Stdout, os.Stdout),
		logger.WithColor(logger.ColorNever),
		logger.WithIcons(false),
	}
	return logger.New(append(base, opts...)...)
}

// This example shows a prefixed logger and how values are serialized.
func ExampleNew() {
	log := plain(logger.WithPrefix("[MyApp]"))
	log.Info("server started on port", 8080)
	log.Debug(map[string]int{"workers": 4})
	// Output:
	// [MyApp] [INFO] server started on port 8080
	// [MyApp] [DEBUG] Map(1) {
	//   "workers": 4
	// }
}

// This example filters messages below warn.
func ExampleLogger_SetLevel() {
	log := plain()
	if err := log.SetLevel(logger.WarnLevel); err != nil {
		panic(err)
	}
	log.Info("dropped")
	log.Success("deployed")

	err := log.SetLevel("verbose")
	fmt.Println(errors.Is(err, logger.ErrInvalidLevel), log.GetLevel())
	// Output:
	// [SUCCESS] deployed
	// true warn
}

// This example derives a child logger with its own prefix.
func ExampleLogger_Create() {
	parent := plain(logger.WithLevel(logger.InfoLevel))
	db := parent.Create(logger.WithPrefix("[db]"))
	db.Debug("not shown")
	db.Warn("slow query", 1.25)
	// Output:
	// [db] [WARN] slow query 1.25
}

// This example prints a timestamp from a fixed clock.
func ExampleWithTimestamp() {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	log := plain(logger.WithTimestamp(true), logger.WithClock(func() time.Time { return at }))
	log.Info("tick")
	// Output:
	// [2024-01-15T10:30:00.000Z] [INFO] tick
}

// This example shows a self-referencing value.
func ExampleStringify() {
	type node struct {
		Name string `json:"name"`
		Next *node  `json:"next"`
	}
	n := &node{Name: "a"}
	n.Next = n
	fmt.Println(logger.Stringify(n))
	// Output:
	// {
	//   "name": "a",
	//   "next": "[Circular]"
	// }
}
