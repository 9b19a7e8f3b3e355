// The main package for the promowatch executable.
package main

import (
	"github.com/promowatch/promowatch/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
