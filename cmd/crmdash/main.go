package main

import (
	"os"
)

func main() {
	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	root := newRootCmd(wiring)
	exitOnErr(root.Name(), root.Execute(), wiring.stderr)
}
