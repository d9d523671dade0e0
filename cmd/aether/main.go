// Command aether designs egui user interfaces as a widget tree stored in a
// JSON project file and generates the Rust application for them.
package main

import (
	"aether/pkg/lib"
)

func main() {
	root := newRootCmd(newApp())
	if err := root.Execute(); err != nil {
		lib.Exit(err)
	}
}
