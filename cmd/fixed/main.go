// Command fixed runs the 3D mini game with a fixed camera looking down at the platform.
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
	os.Exit(app.Main(app.VariantFixed, os.Args[1:]))
}
