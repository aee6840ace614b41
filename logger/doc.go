// Package logger provides a leveled console logger that prints one
// decorated line per call and serializes any argument to readable text.
//
// # Output
//
// Each line is built from space-separated segments:
//
//	ℹ [2024-01-15T10:30:00.000Z] [MyApp] [INFO] server started on port 8080
//
// The icon, timestamp and prefix are optional. The prefix and the level
// tag are painted in the level color (debug gray, info cyan, warn yellow,
// error red, success green). Debug, info and success lines go to stdout;
// warn and error lines go to stderr.
//
// # Levels
//
// Levels filter by priority: debug 0, info 1, warn 2, error 3, success 3.
// A call is written when its priority is at least the threshold's.
//
//	log := logger.New(logger.WithLevel(logger.WarnLevel))
//	log.Info("dropped")
//	log.Success("written")
//	if err := log.SetLevel("verbose"); errors.Is(err, logger.ErrInvalidLevel) {
//	    // threshold unchanged
//	}
//
// # Arguments
//
// Strings are printed as given. Other values go through Stringify: errors
// become JSON objects with name and message, maps print as Map(n) {...},
// map[K]struct{} prints as Set(n) [...], regular expressions as /src/flags,
// times as ISO-8601 and big integers with an "n" suffix. Structs and slices
// are indented JSON where a reference seen twice is replaced by
// "[Circular]".
//
// # Child Loggers
//
//	api := log.Create(logger.WithPrefix("[api]"))
//
// A child copies the parent's current configuration, threshold included,
// and is independent afterwards.
//
// The package-level Debug, Info, Warn, Error and Success functions use a
// default Logger created on first use.
package logger
