// Command thinobj generates thin object companions for annotated Go
// interfaces.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time
var version = "dev"

// errReported marks failures whose details were already printed
var errReported = errors.New("generation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
