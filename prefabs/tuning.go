package prefabs

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TuningFile is the prefab name of the simulation tuning document.
const TuningFile = "tuning.yaml"

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

// Tuning holds every externally overridable simulation constant.
type Tuning struct {
	World      WorldTuning      `yaml:"world"`
	Physics    PhysicsTuning    `yaml:"physics"`
	Player     PlayerTuning     `yaml:"player"`
	Generation GenerationTuning `yaml:"generation"`
	Effects    EffectsTuning    `yaml:"effects"`
	Hunger     HungerTuning     `yaml:"hunger"`
}

type WorldTuning struct {
	TileSize       float64 `yaml:"tile_size"`
	ChunkTiles     int     `yaml:"chunk_tiles"`
	TutorialChunks int     `yaml:"tutorial_chunks"`
	ViewWidth      float64 `yaml:"view_width"`
	ViewHeight     float64 `yaml:"view_height"`
}

type PhysicsTuning struct {
	Gravity       float64 `yaml:"gravity"`
	GroundProbe   float64 `yaml:"ground_probe"`
	FallLimitTile float64 `yaml:"fall_limit_tiles"`
}

type PlayerTuning struct {
	Speed      float64 `yaml:"speed"`
	JumpPower  float64 `yaml:"jump_power"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Scale      float64 `yaml:"scale"`
	SpawnX     float64 `yaml:"spawn_x"`
	SpawnY     float64 `yaml:"spawn_y"`
}

type GenerationTuning struct {
	HoleCount           int     `yaml:"hole_count"`
	HoleWidth           int     `yaml:"hole_width"`
	WideHoleWidth       int     `yaml:"wide_hole_width"`
	WideHolesAfterChunk int     `yaml:"wide_holes_after_chunk"`
	MaxHoleRun          int     `yaml:"max_hole_run"`
	GroundFoodChance    float64 `yaml:"ground_food_chance"`
	PlatformCount       int     `yaml:"platform_count"`
	PlatformMinTiles    int     `yaml:"platform_min_tiles"`
	PlatformMaxTiles    int     `yaml:"platform_max_tiles"`
	PlatformFoodChance  float64 `yaml:"platform_food_chance"`
	MidPlatformRow      int     `yaml:"mid_platform_row"`
	BonusPlatformRow    int     `yaml:"bonus_platform_row"`
	BonusChance         float64 `yaml:"bonus_chance"`
	BonusTiles          int     `yaml:"bonus_tiles"`
}

// EffectTuning covers every effect kind; each kind reads only the fields it
// needs.
type EffectTuning struct {
	Duration   float64 `yaml:"duration"`
	Speed      float64 `yaml:"speed,omitempty"`
	JumpPower  float64 `yaml:"jump_power,omitempty"`
	SizeFactor float64 `yaml:"size_factor,omitempty"`
	Scale      float64 `yaml:"scale,omitempty"`
}

type EffectsTuning struct {
	Faster    EffectTuning `yaml:"faster"`
	JumpPower EffectTuning `yaml:"jump_power"`
	Shrink    EffectTuning `yaml:"shrink"`
	Grow      EffectTuning `yaml:"grow"`
	Bird      EffectTuning `yaml:"bird"`
}

type HungerTuning struct {
	Start     float64 `yaml:"start"`
	Max       float64 `yaml:"max"`
	PerSecond float64 `yaml:"per_second"`
}

// DefaultTuning mirrors tuning.yaml and backs fields a partial override omits.
func DefaultTuning() *Tuning {
	return &Tuning{
		World: WorldTuning{
			TileSize:       32,
			ChunkTiles:     16,
			TutorialChunks: 5,
			ViewWidth:      800,
			ViewHeight:     600,
		},
		Physics: PhysicsTuning{
			Gravity:       4250,
			GroundProbe:   0.1,
			FallLimitTile: 2,
		},
		Player: PlayerTuning{
			Speed:      250,
			JumpPower:  1100,
			HalfWidth:  28,
			HalfHeight: 22,
			Scale:      2,
			SpawnX:     400,
			SpawnY:     300,
		},
		Generation: GenerationTuning{
			HoleCount:           2,
			HoleWidth:           2,
			WideHoleWidth:       3,
			WideHolesAfterChunk: 12,
			MaxHoleRun:          4,
			GroundFoodChance:    0.03,
			PlatformCount:       2,
			PlatformMinTiles:    2,
			PlatformMaxTiles:    3,
			PlatformFoodChance:  0.05,
			MidPlatformRow:      4,
			BonusPlatformRow:    7,
			BonusChance:         0.5,
			BonusTiles:          3,
		},
		Effects: EffectsTuning{
			Faster:    EffectTuning{Duration: 5, Speed: 350},
			JumpPower: EffectTuning{Duration: 5, JumpPower: 1400},
			Shrink:    EffectTuning{Duration: 10, SizeFactor: 0.75, Scale: 1.5},
			Grow:      EffectTuning{Duration: 10, SizeFactor: 1.25, Scale: 2.5},
			Bird:      EffectTuning{Duration: 30},
		},
		Hunger: HungerTuning{
			Start:     100,
			Max:       100,
			PerSecond: 1.5,
		},
	}
}

// ChunkWidth is CHUNK_TILES × TILE_SIZE.
func (t *Tuning) ChunkWidth() float64 {
	return float64(t.World.ChunkTiles) * t.World.TileSize
}

// ParseTuning overlays data on the defaults and validates the result.
func ParseTuning(data []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", TuningFile, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTuning resolves tuning from customPath when set, otherwise from
// prefabs/tuning.yaml on disk, otherwise from the embedded default.
func LoadTuning(customPath string) (*Tuning, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("prefabs: read %s: %w", customPath, err)
		}
		return ParseTuning(data)
	}

	data, err := Load(TuningFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", TuningFile, err)
	}
	return ParseTuning(data)
}

func (t *Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"world.tile_size", t.World.TileSize},
		{"world.chunk_tiles", float64(t.World.ChunkTiles)},
		{"world.view_width", t.World.ViewWidth},
		{"world.view_height", t.World.ViewHeight},
		{"physics.gravity", t.Physics.Gravity},
		{"physics.ground_probe", t.Physics.GroundProbe},
		{"player.speed", t.Player.Speed},
		{"player.jump_power", t.Player.JumpPower},
		{"player.half_width", t.Player.HalfWidth},
		{"player.half_height", t.Player.HalfHeight},
		{"player.scale", t.Player.Scale},
		{"generation.hole_width", float64(t.Generation.HoleWidth)},
		{"generation.wide_hole_width", float64(t.Generation.WideHoleWidth)},
		{"generation.max_hole_run", float64(t.Generation.MaxHoleRun)},
		{"generation.platform_min_tiles", float64(t.Generation.PlatformMinTiles)},
		{"generation.bonus_tiles", float64(t.Generation.BonusTiles)},
		{"effects.shrink.size_factor", t.Effects.Shrink.SizeFactor},
		{"effects.grow.size_factor", t.Effects.Grow.SizeFactor},
		{"effects.shrink.scale", t.Effects.Shrink.Scale},
		{"effects.grow.scale", t.Effects.Grow.Scale},
		{"hunger.max", t.Hunger.Max},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.value)
		}
	}

	if t.World.TutorialChunks < 0 {
		return fmt.Errorf("%w: world.tutorial_chunks must not be negative", ErrInvalidTuning)
	}
	if t.Generation.PlatformMaxTiles < t.Generation.PlatformMinTiles {
		return fmt.Errorf("%w: generation.platform_max_tiles below platform_min_tiles", ErrInvalidTuning)
	}
	if t.Generation.PlatformMaxTiles > t.World.ChunkTiles || t.Generation.BonusTiles > t.World.ChunkTiles {
		return fmt.Errorf("%w: platform wider than a chunk", ErrInvalidTuning)
	}
	if t.Generation.BonusPlatformRow <= t.Generation.MidPlatformRow {
		return fmt.Errorf("%w: generation.bonus_platform_row must sit above mid_platform_row", ErrInvalidTuning)
	}

	chances := map[string]float64{
		"generation.ground_food_chance":   t.Generation.GroundFoodChance,
		"generation.platform_food_chance": t.Generation.PlatformFoodChance,
		"generation.bonus_chance":         t.Generation.BonusChance,
	}
	for name, v := range chances {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidTuning, name, v)
		}
	}

	for name, e := range map[string]EffectTuning{
		"faster":     t.Effects.Faster,
		"jump_power": t.Effects.JumpPower,
		"shrink":     t.Effects.Shrink,
		"grow":       t.Effects.Grow,
		"bird":       t.Effects.Bird,
	} {
		if e.Duration < 0 {
			return fmt.Errorf("%w: effects.%s.duration must not be negative", ErrInvalidTuning, name)
		}
	}
	return nil
}
