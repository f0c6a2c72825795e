package config

import (
	"fmt"

	"github.com/Carmen-Shannon/mini-jeu-3d/common"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the demo programs.
type Config struct {
	Window   WindowConfig        `yaml:"window"`
	Scene    SceneConfig         `yaml:"scene"`
	Platform BoxConfig           `yaml:"platform"`
	Player   PlayerConfig        `yaml:"player"`
	Camera   CameraConfig        `yaml:"camera"`
	Keys     map[string][]string `yaml:"keys"`
	HUD      HUDConfig           `yaml:"hud"`
	Renderer RendererConfig      `yaml:"renderer"`
}

type WindowConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
	// MinWidth and MinHeight bound interactive resizing; 0 leaves a side free.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	// Title overrides the program's own window title when set.
	Title string `yaml:"title"`
}

type SceneConfig struct {
	Background Color `yaml:"background"`
}

// BoxConfig describes a solid box with outlined edges.
type BoxConfig struct {
	Position  Vec3  `yaml:"position"`
	Size      Vec3  `yaml:"size"`
	Color     Color `yaml:"color"`
	WireColor Color `yaml:"wire_color"`
}

type PlayerConfig struct {
	Start     Vec3    `yaml:"start"`
	Size      Vec3    `yaml:"size"`
	Speed     float32 `yaml:"speed"`
	Color     Color   `yaml:"color"`
	WireColor Color   `yaml:"wire_color"`
}

// CameraConfig holds projection settings shared by both programs and the per-program placement.
// Angles are in degrees.
type CameraConfig struct {
	Projection string      `yaml:"projection"`
	Fovy       float32     `yaml:"fovy"`
	Near       float32     `yaml:"near"`
	Far        float32     `yaml:"far"`
	Fixed      FixedCamera `yaml:"fixed"`
	Orbit      OrbitCamera `yaml:"orbit"`
}

type FixedCamera struct {
	Position Vec3 `yaml:"position"`
	Target   Vec3 `yaml:"target"`
}

type OrbitCamera struct {
	Distance    float32 `yaml:"distance"`
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
	PitchLimit  float32 `yaml:"pitch_limit"`
	Sensitivity float32 `yaml:"sensitivity"`
}

type HUDConfig struct {
	ShowFPS   bool `yaml:"show_fps"`
	FPSX      int  `yaml:"fps_x"`
	FPSY      int  `yaml:"fps_y"`
	FontScale int  `yaml:"font_scale"`
}

type RendererConfig struct {
	VSync bool `yaml:"vsync"`
	MSAA  int  `yaml:"msaa"`
	// Cull skips boxes that are entirely outside the camera frustum.
	Cull bool `yaml:"cull"`
	// Software asks for the CPU fallback adapter.
	Software bool `yaml:"software"`
}

// Vec3 is a three component vector written as a YAML sequence, e.g. [0, 1, 0].
type Vec3 [3]float32

// Vec returns the vector as an mgl32.Vec3.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

// Color is a palette name or hex color, decoded into a common.Color.
type Color struct {
	common.Color
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := common.ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	c.Color = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
