package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Settings holds the immutable base tunables plus the dynamic subset that
// scales with difficulty. Base values come from YAML; Dynamic is runtime only.
type Settings struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Ship       ShipConfig       `yaml:"ship"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	Button     ButtonConfig     `yaml:"button"`
	Audio      AudioConfig      `yaml:"audio"`

	Dynamic Dynamic `yaml:"-"`
}

// ScreenConfig holds the logical viewport.
type ScreenConfig struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	TargetFPS  int   `yaml:"target_fps"`
	Background Color `yaml:"background"`
	Text       Color `yaml:"text"` // HUD text
}

// ShipConfig holds the player's ship parameters.
type ShipConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Limit  int     `yaml:"limit"` // Lives per game
	Color  Color   `yaml:"color"`
}

// ProjectileConfig holds bullet parameters.
type ProjectileConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	Allowed int     `yaml:"allowed"` // Max live projectiles
	Color   Color   `yaml:"color"`
}

// EnemyConfig holds alien parameters.
type EnemyConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`
	DropSpeed float64 `yaml:"drop_speed"` // Fleet drop on edge contact
	Points    int     `yaml:"points"`
	Color     Color   `yaml:"color"`
}

// DifficultyConfig holds the per-level multipliers.
type DifficultyConfig struct {
	SpeedupScale float64 `yaml:"speedup_scale"`
	ScoreScale   float64 `yaml:"score_scale"`
}

// TimingConfig holds the pause durations.
type TimingConfig struct {
	HitPause      time.Duration `yaml:"hit_pause"`
	GameOverPause time.Duration `yaml:"game_over_pause"`
}

// ButtonConfig holds the Play button appearance.
type ButtonConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Label  string  `yaml:"label"`
	Color  Color   `yaml:"color"`
	Text   Color   `yaml:"text"`
}

// AudioConfig holds sound asset paths. Empty paths use synthesised clips.
type AudioConfig struct {
	FireSound      string  `yaml:"fire_sound"`
	ExplosionSound string  `yaml:"explosion_sound"`
	Volume         float64 `yaml:"volume"`
}

// Dynamic is the subset of settings that changes during play.
type Dynamic struct {
	ShipSpeed       float64
	ProjectileSpeed float64
	EnemySpeed      float64
	EnemyPoints     int
	FleetDirection  float64 // +1 right, -1 left
}

// Color is an RGB triple, written as [r, g, b] in YAML.
type Color struct {
	R, G, B uint8
}

// UnmarshalYAML decodes a three-element sequence.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var rgb []int
	if err := value.Decode(&rgb); err != nil {
		return err
	}
	if len(rgb) != 3 {
		return fmt.Errorf("line %d: color needs 3 components, got %d", value.Line, len(rgb))
	}
	for _, v := range rgb {
		if v < 0 || v > 255 {
			return fmt.Errorf("line %d: color component %d out of range", value.Line, v)
		}
	}
	c.R, c.G, c.B = uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2])
	return nil
}

// MarshalYAML encodes the color as a sequence.
func (c Color) MarshalYAML() (any, error) {
	return []int{int(c.R), int(c.G), int(c.B)}, nil
}

// RGBA converts to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Default returns the embedded defaults with dynamic values initialised.
// Panics if the embedded defaults are broken.
func Default() *Settings {
	s, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return s
}

// Load loads settings from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if err := yaml.Unmarshal(defaultsYAML, s); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	s.Initialize()
	return s, nil
}

// Validate checks the base values for consistency.
func (s *Settings) Validate() error {
	var errs []error
	if s.Screen.Width <= 0 || s.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", s.Screen.Width, s.Screen.Height))
	}
	if s.Screen.TargetFPS <= 0 {
		errs = append(errs, errors.New("screen.target_fps must be positive"))
	}
	if s.Ship.Width <= 0 || s.Ship.Height <= 0 || s.Enemy.Width <= 0 || s.Enemy.Height <= 0 ||
		s.Projectile.Width <= 0 || s.Projectile.Height <= 0 {
		errs = append(errs, errors.New("entity sizes must be positive"))
	}
	if s.Enemy.Width > 0 && float64(s.Screen.Width) < 4*s.Enemy.Width {
		errs = append(errs, fmt.Errorf("screen width %d leaves no room for an enemy column", s.Screen.Width))
	}
	if s.Ship.Limit < 1 {
		errs = append(errs, fmt.Errorf("ship.limit must be at least 1, got %d", s.Ship.Limit))
	}
	if s.Projectile.Allowed < 1 {
		errs = append(errs, fmt.Errorf("projectile.allowed must be at least 1, got %d", s.Projectile.Allowed))
	}
	if s.Difficulty.SpeedupScale <= 1 || s.Difficulty.ScoreScale < 1 {
		errs = append(errs, errors.New("difficulty.speedup_scale must exceed 1 and difficulty.score_scale must be at least 1"))
	}
	if s.Timing.HitPause < 0 || s.Timing.GameOverPause < 0 {
		errs = append(errs, errors.New("pause durations must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// Clone returns an independent copy with freshly initialised dynamic values.
// Each concurrent session needs its own copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Initialize()
	return &c
}

// Initialize resets the dynamic values to their base state.
// Called once at startup and at the start of every game.
func (s *Settings) Initialize() {
	s.Dynamic = Dynamic{
		ShipSpeed:       s.Ship.Speed,
		ProjectileSpeed: s.Projectile.Speed,
		EnemySpeed:      s.Enemy.Speed,
		EnemyPoints:     s.Enemy.Points,
		FleetDirection:  1,
	}
}

// IncreaseDifficulty scales speeds and the enemy point value.
// Called exactly once per cleared level.
func (s *Settings) IncreaseDifficulty() {
	scale := s.Difficulty.SpeedupScale
	s.Dynamic.ShipSpeed *= scale
	s.Dynamic.ProjectileSpeed *= scale
	s.Dynamic.EnemySpeed *= scale
	s.Dynamic.EnemyPoints = int(float64(s.Dynamic.EnemyPoints) * s.Difficulty.ScoreScale)
}

// WriteYAML writes the base settings to a YAML file.
func (s *Settings) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
