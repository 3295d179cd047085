// Command visitorctl registers a visitor from the command line, going through
// the same validation and notice acceptance as the web form.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
