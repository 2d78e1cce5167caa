package glimmer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// Config is the full simulation parameter set. It is a plain value: the
// running simulation keeps its own copy and only swaps it between frames via
// Simulation.ApplyConfig, so no per-frame math ever observes a partial update.
type Config struct {
	// Count is the particle pool capacity. Changing it rebuilds the pool.
	Count int `json:"count"`

	// Size is the render-side point size. The simulation carries it through
	// untouched; no force computation reads it.
	Size float32 `json:"size"`

	MaxSpeed     float32 `json:"maxSpeed"`     // initial speed sampled from [0, MaxSpeed)
	Lifetime     int32   `json:"lifetime"`     // frames a fresh particle lives
	EmissionRate int     `json:"emissionRate"` // per-tip spawn count drawn from [1, EmissionRate]
	Gravity      float32 `json:"gravity"`      // added to velocity.y every frame
	Friction     float32 `json:"friction"`     // per-frame velocity multiplier, (0, 1]

	// BounceStrength scales velocity reflection at the configured Bounds.
	// With Bounds nil it has no effect.
	BounceStrength float32 `json:"bounceStrength"`

	InteractionRadius float32 `json:"interactionRadius"`

	// Colors is the emission palette, normalized RGB. Must be non-empty.
	Colors []mgl32.Vec3 `json:"colors"`

	// Bounds optionally confines particles to a planar box (z unbounded).
	Bounds *Bounds `json:"bounds,omitempty"`

	// StatusInterval is the frame period of status records. 0 means default.
	StatusInterval uint64 `json:"statusInterval,omitempty"`

	// Seed fixes the random source; 0 seeds from wall clock.
	Seed int64 `json:"seed,omitempty"`
}

// Bounds is an axis-aligned planar box in scene space.
type Bounds struct {
	Min mgl32.Vec2 `json:"min"`
	Max mgl32.Vec2 `json:"max"`
}

const DefaultStatusInterval = 30

func DefaultConfig() Config {
	return Config{
		Count:             3000,
		Size:              4,
		MaxSpeed:          0.12,
		Lifetime:          120,
		EmissionRate:      3,
		Gravity:           -0.002,
		Friction:          0.985,
		BounceStrength:    0.6,
		InteractionRadius: 0.8,
		Colors:            DefaultPalette(),
		StatusInterval:    DefaultStatusInterval,
	}
}

// DefaultPalette is a warm spark palette drawn from the named-color table.
func DefaultPalette() []mgl32.Vec3 {
	names := []struct{ R, G, B uint8 }{
		{colornames.Gold.R, colornames.Gold.G, colornames.Gold.B},
		{colornames.Orange.R, colornames.Orange.G, colornames.Orange.B},
		{colornames.Deepskyblue.R, colornames.Deepskyblue.G, colornames.Deepskyblue.B},
		{colornames.Orchid.R, colornames.Orchid.G, colornames.Orchid.B},
		{colornames.Springgreen.R, colornames.Springgreen.G, colornames.Springgreen.B},
	}
	palette := make([]mgl32.Vec3, 0, len(names))
	for _, c := range names {
		palette = append(palette, mgl32.Vec3{
			float32(c.R) / 255.0,
			float32(c.G) / 255.0,
			float32(c.B) / 255.0,
		})
	}
	return palette
}

// Validate rejects configurations that would corrupt per-frame math. It runs
// at apply time; a frame in flight never sees a degenerate value.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("config: count must be positive, got %d", c.Count)
	}
	if c.Lifetime <= 0 {
		return fmt.Errorf("config: lifetime must be positive, got %d", c.Lifetime)
	}
	if c.EmissionRate < 1 {
		return fmt.Errorf("config: emissionRate must be at least 1, got %d", c.EmissionRate)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("config: maxSpeed must not be negative, got %v", c.MaxSpeed)
	}
	if c.Friction <= 0 || c.Friction > 1 {
		return fmt.Errorf("config: friction must be in (0, 1], got %v", c.Friction)
	}
	if c.InteractionRadius <= 0 {
		return fmt.Errorf("config: interactionRadius must be positive, got %v", c.InteractionRadius)
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("config: color palette must not be empty")
	}
	if c.Bounds != nil {
		if c.Bounds.Min.X() >= c.Bounds.Max.X() || c.Bounds.Min.Y() >= c.Bounds.Max.Y() {
			return fmt.Errorf("config: bounds min must be strictly below max")
		}
	}
	return nil
}

func (c Config) statusInterval() uint64 {
	if c.StatusInterval == 0 {
		return DefaultStatusInterval
	}
	return c.StatusInterval
}

// LoadConfig reads a JSON preset. The result is validated before it is
// returned, so a bad file never reaches a running simulation.
func LoadConfig(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w (in %s)", err, path)
	}
	return cfg, nil
}

// SaveConfig writes a JSON preset.
func SaveConfig(cfg Config, path string) error {
	bytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0644)
}
