// Package config loads the demo settings from YAML: an embedded default document,
// optionally overlaid by user files, validated as a whole.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/mini-jeu-3d/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// worldUp is the up axis both cameras are built with.
var worldUp = mgl32.Vec3{0, 1, 0}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	return Load()
}

// Load decodes the embedded defaults, then each file in order on top of the result.
// Keys absent from a file keep their previous value; unknown keys are rejected.
//
// Parameters:
//   - paths: YAML files to overlay, in priority order (last wins)
//
// Returns:
//   - *Config: the merged and validated configuration
//   - error: error if a file cannot be read or decoded, or the result is invalid
func Load(paths ...string) (*Config, error) {
	cfg := &Config{}
	if err := decode(defaultConfig, cfg); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("could not process config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0, "window.width must be > 0")
	check(c.Window.Height > 0, "window.height must be > 0")
	check(c.Window.TargetFPS >= 0, "window.target_fps must be >= 0")
	check(c.Window.MinWidth >= 0 && c.Window.MinHeight >= 0, "window.min_width and window.min_height must be >= 0")

	for name, size := range map[string]Vec3{"platform.size": c.Platform.Size, "player.size": c.Player.Size} {
		check(size[0] > 0 && size[1] > 0 && size[2] > 0, "%s components must be > 0", name)
	}
	check(c.Player.Speed >= 0, "player.speed must be >= 0")

	switch c.Camera.Projection {
	case "perspective":
		check(c.Camera.Fovy > 0 && c.Camera.Fovy < 180, "camera.fovy must be in (0, 180) degrees")
	case "orthographic":
		check(c.Camera.Fovy > 0, "camera.fovy must be > 0")
	default:
		errs = append(errs, fmt.Errorf("camera.projection must be perspective or orthographic, got %q", c.Camera.Projection))
	}
	check(c.Camera.Near > 0, "camera.near must be > 0")
	check(c.Camera.Far > c.Camera.Near, "camera.far must be greater than camera.near")
	if dir := c.Camera.Fixed.Target.Vec().Sub(c.Camera.Fixed.Position.Vec()); dir.Len() == 0 {
		errs = append(errs, errors.New("camera.fixed.position must differ from camera.fixed.target"))
	} else {
		check(dir.Normalize().Cross(worldUp).Len() > 1e-6, "camera.fixed view direction must not be parallel to the up axis")
	}
	check(c.Camera.Orbit.Distance > 0, "camera.orbit.distance must be > 0")
	check(c.Camera.Orbit.PitchLimit > 0 && c.Camera.Orbit.PitchLimit < 90, "camera.orbit.pitch_limit must be in (0, 90) degrees")
	check(c.Camera.Orbit.Sensitivity >= 0, "camera.orbit.sensitivity must be >= 0")

	if _, err := c.Bindings(); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}

	check(c.HUD.FontScale >= 1, "hud.font_scale must be >= 1")
	check(c.Renderer.MSAA == 1 || c.Renderer.MSAA == 4, "renderer.msaa must be 1 or 4")

	return errors.Join(errs...)
}

// Bindings resolves the key section into input bindings.
func (c *Config) Bindings() (input.Bindings, error) {
	return input.ParseBindings(c.Keys)
}
