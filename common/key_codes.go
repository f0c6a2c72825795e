package common

import (
	"fmt"
	"strings"
)

// Key is a virtual key code for cross-platform input handling.
// The values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeyW         Key = 87  // W key (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeyZ         Key = 90  // Z key (ASCII)
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyEsc       Key = 256 // Escape key (GLFW)
	KeyEnter     Key = 257 // Enter key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyRight     Key = 262 // Right arrow (GLFW)
	KeyLeft      Key = 263 // Left arrow (GLFW)
	KeyDown      Key = 264 // Down arrow (GLFW)
	KeyUp        Key = 265 // Up arrow (GLFW)
	KeyF1        Key = 290 // F1 key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  Key = 340 // Left Shift (GLFW)
	KeyRightShift Key = 344 // Right Shift (GLFW)
)

var keyNames = map[Key]string{
	KeySpace:      "Space",
	KeyEsc:        "Escape",
	KeyEnter:      "Enter",
	KeyBackspace:  "Backspace",
	KeyRight:      "Right",
	KeyLeft:       "Left",
	KeyDown:       "Down",
	KeyUp:         "Up",
	KeyF1:         "F1",
	KeyLeftShift:  "LeftShift",
	KeyRightShift: "RightShift",
}

// String returns the display name of the key. Letters and digits are returned as their ASCII character.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if (k >= 'A' && k <= 'Z') || (k >= '0' && k <= '9') {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey resolves a key name as written in configuration files.
// Single letters and digits map to their ASCII code; named keys are matched case-insensitively.
//
// Parameters:
//   - name: the key name, e.g. "W", "up", "Space"
//
// Returns:
//   - Key: the resolved key code
//   - error: error if the name does not match any known key
func ParseKey(name string) (Key, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 1 {
		c := strings.ToUpper(trimmed)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return Key(c), nil
		}
	}
	for k, n := range keyNames {
		if strings.EqualFold(n, trimmed) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
