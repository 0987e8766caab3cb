// Command vgraph drives the vgraph renderer: an animated dashboard on the
// terminal (ANSI or tcell), the same dashboard under bubbletea, and a
// plain-text dump for scripting.
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
