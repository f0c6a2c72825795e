package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/go-gl/mathgl/mgl32"
)

// idCounter hands out unique object identifiers.
var idCounter atomic.Uint64

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	position  mgl32.Vec3
	size      mgl32.Vec3
	color     common.Color
	wireColor common.Color
	wired     bool
}

// GameObject defines the interface for a box-shaped scene entity.
// An object is drawn as a solid box of its color, optionally outlined by its wire color.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the debug name of the object.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the world-space center of the object.
	//
	// Returns:
	//   - mgl32.Vec3: the center position
	Position() mgl32.Vec3

	// Size returns the full extent of the object along each axis.
	//
	// Returns:
	//   - mgl32.Vec3: width, height and length
	Size() mgl32.Vec3

	// Color returns the fill color.
	//
	// Returns:
	//   - common.Color: the fill color
	Color() common.Color

	// WireColor returns the outline color.
	//
	// Returns:
	//   - common.Color: the outline color
	WireColor() common.Color

	// Wired reports whether the object's edges are outlined.
	//
	// Returns:
	//   - bool: true if the outline is drawn
	Wired() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition moves the object to an absolute position.
	//
	// Parameters:
	//   - position: the new center position
	SetPosition(position mgl32.Vec3)

	// Translate moves the object by an offset.
	//
	// Parameters:
	//   - delta: the offset to add to the position
	Translate(delta mgl32.Vec3)

	// SetColors replaces the fill and outline colors.
	//
	// Parameters:
	//   - fill: the new fill color
	//   - wire: the new outline color
	SetColors(fill, wire common.Color)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject. Defaults: unit size at the origin, white fill,
// black outline, enabled and outlined.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:        idCounter.Add(1),
		size:      mgl32.Vec3{1, 1, 1},
		color:     common.White,
		wireColor: common.Black,
		wired:     true,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) Size() mgl32.Vec3 {
	return g.size
}

func (g *gameObject) Color() common.Color {
	return g.color
}

func (g *gameObject) WireColor() common.Color {
	return g.wireColor
}

func (g *gameObject) Wired() bool {
	return g.wired
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.position = position
}

func (g *gameObject) Translate(delta mgl32.Vec3) {
	g.position = g.position.Add(delta)
}

func (g *gameObject) SetColors(fill, wire common.Color) {
	g.color = fill
	g.wireColor = wire
}
