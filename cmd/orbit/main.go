// Command orbit runs the 3D mini game with a mouse controlled camera orbiting the cube.
package main

import (
	"os"
	"runtime"

	"github.com/Carmen-Shannon/mini-jeu-3d/app"
)

// GLFW must be driven from the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(app.Main(app.VariantOrbit, os.Args[1:]))
}
