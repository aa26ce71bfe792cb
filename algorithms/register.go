// Package algorithms provides the built-in pointillism algorithms.
//
// Importing the package registers every algorithm with the pointillism
// builtin source:
//
//	import _ "github.com/gogpu/pointillism/algorithms"
package algorithms

import "github.com/gogpu/pointillism"

// All returns one instance of every built-in algorithm, including hidden
// ones, in registration order.
func All() []pointillism.Algorithm {
	return []pointillism.Algorithm{
		Simple{},
		Palette{},
		Adaptive{},
		Styled{},
		Ronchetti{},
		Template{},
	}
}

func init() {
	for _, a := range All() {
		pointillism.Register(a)
	}
}
