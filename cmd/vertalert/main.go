// vertalert finds brushes with floating point plane coordinates in Source
// engine .vmf files and optionally writes a copy snapped to grid.
//
// Only enabled visgroups are checked: brushes in hidden visgroups are stored
// one level deeper in the file and are never matched.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
