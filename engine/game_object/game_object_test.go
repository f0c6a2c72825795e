package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()

	assert.True(t, obj.Enabled())
	assert.True(t, obj.Wired())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Size())
	assert.Equal(t, mgl32.Vec3{}, obj.Position())
	assert.Equal(t, common.White, obj.Color())
	assert.Equal(t, common.Black, obj.WireColor())
}

func TestGameObjectIDsAreUnique(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestGameObjectOptionsAndMovement(t *testing.T) {
	obj := NewGameObject(
		WithName("player"),
		WithPosition(mgl32.Vec3{0, 1, 0}),
		WithColor(common.Red),
		WithWireColor(common.Maroon),
		WithWired(false),
		WithEnabled(false),
	)

	assert.Equal(t, "player", obj.Name())
	assert.False(t, obj.Enabled())
	assert.False(t, obj.Wired())

	obj.Translate(mgl32.Vec3{-5, 0, 5})
	assert.Equal(t, mgl32.Vec3{-5, 1, 5}, obj.Position())

	obj.SetPosition(mgl32.Vec3{2, 2, 2})
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, obj.Position())

	obj.SetColors(common.Lime, common.DarkGray)
	assert.Equal(t, common.Lime, obj.Color())
	assert.Equal(t, common.DarkGray, obj.WireColor())
}
