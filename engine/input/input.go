// Package input maps raw key state onto game actions.
package input

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
)

// State is the per-frame input snapshot the game logic reads from.
// It is implemented by the window, and by fakes in tests.
type State interface {
	// IsKeyDown reports whether the key is currently held.
	IsKeyDown(key common.Key) bool

	// MouseDelta returns the cursor movement since the previous frame, in screen pixels.
	MouseDelta() (dx, dy float32)

	// Focused reports whether the window currently has input focus.
	Focused() bool
}

// Action is a logical movement intent, decoupled from the physical keys that trigger it.
type Action string

const (
	ActionForward Action = "forward"
	ActionBack    Action = "back"
	ActionLeft    Action = "left"
	ActionRight   Action = "right"
)

// Actions lists every action in a stable order.
var Actions = []Action{ActionForward, ActionBack, ActionLeft, ActionRight}

// Bindings maps each action to the keys that trigger it.
type Bindings map[Action][]common.Key

// DefaultBindings returns the WASD layout with arrow key aliases.
func DefaultBindings() Bindings {
	return Bindings{
		ActionForward: {common.KeyW, common.KeyUp},
		ActionBack:    {common.KeyS, common.KeyDown},
		ActionLeft:    {common.KeyA, common.KeyLeft},
		ActionRight:   {common.KeyD, common.KeyRight},
	}
}

// Held reports whether any key bound to the action is down.
// Holding several aliases of the same action counts once.
//
// Parameters:
//   - state: the input snapshot to query
//   - action: the action to test
//
// Returns:
//   - bool: true if at least one bound key is held
func (b Bindings) Held(state State, action Action) bool {
	for _, k := range b[action] {
		if state.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// ParseBindings builds Bindings from action names to key names, as found in configuration files.
// Actions missing from the map keep no binding.
//
// Parameters:
//   - raw: action name to list of key names
//
// Returns:
//   - Bindings: the resolved bindings
//   - error: error if an action or key name is unknown
func ParseBindings(raw map[string][]string) (Bindings, error) {
	out := make(Bindings, len(raw))
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action := Action(name)
		if !isAction(action) {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		for _, keyName := range raw[name] {
			k, err := common.ParseKey(keyName)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", name, err)
			}
			out[action] = append(out[action], k)
		}
	}
	return out, nil
}

func isAction(a Action) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
