package data

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidSheet marks a malformed spritesheet definition. Fatal at load.
	ErrInvalidSheet = errors.New("invalid spritesheet")
	// ErrSpriteNotFound and ErrAnimationNotFound are lookup misses; callers
	// degrade gracefully instead of failing.
	ErrSpriteNotFound    = errors.New("sprite not found")
	ErrAnimationNotFound = errors.New("animation not found")
)

// AnimMode selects what happens when playback reaches either end.
type AnimMode uint8

const (
	// OncePersist plays forward and freezes on the last frame. It is the
	// default when a definition omits mode.
	OncePersist AnimMode = iota
	// Once plays forward then marks the animation done; the owning entity
	// is deleted.
	Once
	Loop
	LoopReverse
	Reverse
)

var animModeNames = map[string]AnimMode{
	"once":        Once,
	"oncepersist": OncePersist,
	"loop":        Loop,
	"loopreverse": LoopReverse,
	"reverse":     Reverse,
}

func (m AnimMode) String() string {
	switch m {
	case Once:
		return "once"
	case OncePersist:
		return "once_persist"
	case Loop:
		return "loop"
	case LoopReverse:
		return "loop_reverse"
	case Reverse:
		return "reverse"
	}
	return fmt.Sprintf("AnimMode(%d)", uint8(m))
}

// Loops reports whether playback restarts after reaching an end.
func (m AnimMode) Loops() bool { return m == Loop || m == LoopReverse }

// Reverses reports whether playback turns around at the last frame.
func (m AnimMode) Reverses() bool { return m == Reverse || m == LoopReverse }

// ParseAnimMode accepts snake, kebab and camel spellings ("loop_reverse",
// "loop-reverse", "LoopReverse").
func ParseAnimMode(s string) (AnimMode, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	m, ok := animModeNames[key]
	if !ok {
		return 0, fmt.Errorf("%w: unknown animation mode %q", ErrInvalidSheet, s)
	}
	return m, nil
}

func (m *AnimMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAnimMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// AnimationSchema describes one animation strip. Immutable after load and
// shared by every entity playing it.
type AnimationSchema struct {
	Root      uint32   `yaml:"root"`
	Frames    uint8    `yaml:"frames"`
	Mode      AnimMode `yaml:"mode"`
	FrameTime float64  `yaml:"frame_time"` // seconds per frame
}

// Equal compares by root, frame count and mode. Frame time is ignored so a
// retimed copy of the same strip counts as the same animation.
func (a *AnimationSchema) Equal(o *AnimationSchema) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.Root == o.Root && a.Frames == o.Frames && a.Mode == o.Mode
}

// Dimensions is a sprite footprint in atlas tiles.
type Dimensions struct {
	W, H uint8
}

func (d *Dimensions) UnmarshalYAML(node *yaml.Node) error {
	var pair []uint8
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: dimensions need two values, got %d", ErrInvalidSheet, len(pair))
	}
	d.W, d.H = pair[0], pair[1]
	return nil
}

// Packed returns the 4-bit-per-axis encoding consumed by the sprite shader:
// (w-1) in the low nibble, (h-1) in the high nibble.
func (d Dimensions) Packed() uint8 {
	return (d.W - 1) | (d.H-1)<<4
}

// SpriteSchema describes one logical sprite. Immutable after load; entities
// hold a pointer to it, never a copy.
type SpriteSchema struct {
	Name       string                      `yaml:"-"`
	Root       uint32                      `yaml:"root"`
	Dimensions Dimensions                  `yaml:"dimensions"`
	Variants   map[string]*SpriteSchema    `yaml:"variants"`
	Animations map[string]*AnimationSchema `yaml:"animations"`
}

// Animation looks up a named animation.
func (s *SpriteSchema) Animation(name string) (*AnimationSchema, error) {
	a, ok := s.Animations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on sprite %q", ErrAnimationNotFound, name, s.Name)
	}
	return a, nil
}

// Variant looks up a named variant.
func (s *SpriteSchema) Variant(name string) (*SpriteSchema, error) {
	v, ok := s.Variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: variant %q of %q", ErrSpriteNotFound, name, s.Name)
	}
	return v, nil
}

// SpriteSheet is the process-wide catalog of sprite schemas for one atlas.
type SpriteSheet struct {
	Image       string                   `yaml:"image"`
	SheetWidth  uint32                   `yaml:"sheet_width"`
	TileWidth   uint32                   `yaml:"tile_width"`
	Sprites     map[string]*SpriteSchema `yaml:"sprites"`
	animCount   int
	schemaCount int
}

// Sprite looks up a top-level sprite, optionally descending into nested
// variants: Sprite("human", "gun").
func (s *SpriteSheet) Sprite(name string, variants ...string) (*SpriteSchema, error) {
	schema, ok := s.Sprites[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSpriteNotFound, name)
	}
	for _, v := range variants {
		next, err := schema.Variant(v)
		if err != nil {
			return nil, err
		}
		schema = next
	}
	return schema, nil
}

// Count returns the number of top-level sprites.
func (s *SpriteSheet) Count() int { return len(s.Sprites) }

// SchemaCount returns the number of sprite schemas including variants.
func (s *SpriteSheet) SchemaCount() int { return s.schemaCount }

// AnimationCount returns the number of animation schemas across all sprites.
func (s *SpriteSheet) AnimationCount() int { return s.animCount }

// LoadSpriteSheet loads a spritesheet definition from a YAML file.
func LoadSpriteSheet(path string) (*SpriteSheet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spritesheet: %w", err)
	}
	sheet, err := ParseSpriteSheet(raw)
	if err != nil {
		return nil, fmt.Errorf("parse spritesheet %s: %w", path, err)
	}
	return sheet, nil
}

// ParseSpriteSheet decodes and validates a spritesheet definition.
func ParseSpriteSheet(raw []byte) (*SpriteSheet, error) {
	var sheet SpriteSheet
	if err := yaml.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSheet, err)
	}
	if sheet.TileWidth == 0 {
		return nil, fmt.Errorf("%w: tile_width must be positive", ErrInvalidSheet)
	}
	if sheet.SheetWidth/sheet.TileWidth > 255 {
		return nil, fmt.Errorf("%w: maximum tiles per row is 255", ErrInvalidSheet)
	}
	for name, schema := range sheet.Sprites {
		if err := sheet.finish(name, schema); err != nil {
			return nil, err
		}
	}
	return &sheet, nil
}

// finish fills defaults and validates a schema tree.
func (s *SpriteSheet) finish(name string, schema *SpriteSchema) error {
	if schema == nil {
		return fmt.Errorf("%w: sprite %q is empty", ErrInvalidSheet, name)
	}
	schema.Name = name
	s.schemaCount++

	if schema.Dimensions.W == 0 {
		schema.Dimensions.W = 1
	}
	if schema.Dimensions.H == 0 {
		schema.Dimensions.H = 1
	}
	if schema.Dimensions.W > 16 || schema.Dimensions.H > 16 {
		return fmt.Errorf("%w: sprite %q dimensions exceed 16 tiles", ErrInvalidSheet, name)
	}

	for animName, anim := range schema.Animations {
		if anim == nil {
			return fmt.Errorf("%w: animation %q on %q is empty", ErrInvalidSheet, animName, name)
		}
		if anim.Frames > 0 && anim.FrameTime <= 0 {
			return fmt.Errorf("%w: animation %q on %q needs a positive frame_time", ErrInvalidSheet, animName, name)
		}
		s.animCount++
	}
	for variant, child := range schema.Variants {
		if err := s.finish(name+"/"+variant, child); err != nil {
			return err
		}
	}
	return nil
}
