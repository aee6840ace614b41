package main

import "github.com/mordilloSan/go-console/internal/cli"

// Usage: go-console [--level warn] [--prefix "[app]"] [--timestamp] [--json] message...
func main() {
	cli.Execute()
}
