package main

import (
	"fmt"
	"os"
	"runtime"
)

// Build metadata, overridden through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(Execute())
}

func versionString() string {
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("wt %s (%s, %s, %s)", version, short, date, runtime.Version())
}
