// Command pointillism renders images with the pointillism algorithms.
//
// Usage:
//
//	pointillism list [--yaml]
//	pointillism render INPUT OUTPUT [-a KEY] [-p name=value]... [--seed N]
//	pointillism watch --manifests DIR
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	a := newApp()
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

