// The main package for the papers executable.
package main

import (
	"github.com/martenlienen/icml-nips-iclr-dataset/cmd"
)

func main() {
	cmd.Execute()
}
