package input

import (
	"testing"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keySet map[common.Key]bool

func (k keySet) IsKeyDown(key common.Key) bool  { return k[key] }
func (k keySet) MouseDelta() (float32, float32) { return 0, 0 }
func (k keySet) Focused() bool                  { return true }

func TestDefaultBindingsAcceptLettersAndArrows(t *testing.T) {
	b := DefaultBindings()

	assert.True(t, b.Held(keySet{common.KeyW: true}, ActionForward))
	assert.True(t, b.Held(keySet{common.KeyUp: true}, ActionForward))
	assert.True(t, b.Held(keySet{common.KeyDown: true}, ActionBack))
	assert.True(t, b.Held(keySet{common.KeyA: true}, ActionLeft))
	assert.True(t, b.Held(keySet{common.KeyRight: true}, ActionRight))

	assert.False(t, b.Held(keySet{common.KeyW: true}, ActionBack))
	assert.False(t, b.Held(keySet{}, ActionForward))
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string][]string{
		"forward": {"Z", "up"},
		"left":    {"q"},
	})
	require.NoError(t, err)

	assert.Equal(t, []common.Key{common.KeyZ, common.KeyUp}, b[ActionForward])
	assert.Equal(t, []common.Key{common.KeyQ}, b[ActionLeft])
	assert.Empty(t, b[ActionBack])
}

func TestParseBindingsRejectsUnknownNames(t *testing.T) {
	_, err := ParseBindings(map[string][]string{"jump": {"Space"}})
	assert.ErrorContains(t, err, "unknown action")

	_, err = ParseBindings(map[string][]string{"forward": {"Hyper"}})
	assert.ErrorContains(t, err, "action forward")
}
