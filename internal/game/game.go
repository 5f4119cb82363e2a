// Package game is the demo built on the engine: a player who walks with
// WASD and aims at the mouse, a crosshair, a zombie, a grass field with an
// optional text level on top, and muzzle flashes on click.
package game

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/config"
	"github.com/stoneng/stoneng/internal/controller"
	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/core/event"
	"github.com/stoneng/stoneng/internal/data"
	"github.com/stoneng/stoneng/internal/scripting"
	"github.com/stoneng/stoneng/internal/world"
)

// Sprite names the demo needs from the catalog.
const (
	SpritePlayer  = "human"
	VariantPlayer = "gun"
	SpriteZombie  = "zombie"
	SpriteCursor  = "crosshair"
	SpriteFlash   = "muzzle-flash"
	SpriteGrass   = "grass"
	SpriteBrick   = "brick"
	SpriteWater   = "water"

	// PanStep is how far one arrow key press moves the view.
	PanStep = 10

	actorScale  = 5
	cursorScale = 3
	flashScale  = 3
	playerLight = 50
)

// Game owns the demo's entities and reacts to input between ticks.
type Game struct {
	log   *zap.Logger
	cfg   *config.Config
	world *world.State
	bus   *event.Bus
	lua   *scripting.Engine

	player     ecs.EntityID
	cursor     ecs.EntityID
	contr      *controller.PlayerController
	name       string
	idle       float32
	anim       string
	collisions *event.ReaderID
	flash      *data.SpriteSchema
	flashCfg   scripting.FlashTuning

	cursorX, cursorY float64 // window pixels, origin top-left
	tick             uint64
	quit             bool
}

// New populates ws and subscribes the game's input handlers on bus. Every
// sprite the demo spawns must be in the catalog.
func New(ws *world.State, bus *event.Bus, lua *scripting.Engine, cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		log:   log,
		cfg:   cfg,
		world: ws,
		bus:   bus,
		lua:   lua,
	}

	sheet := ws.Sheet
	playerSchema, err := sheet.Sprite(SpritePlayer, VariantPlayer)
	if err != nil {
		return nil, fmt.Errorf("player sprite: %w", err)
	}
	zombie, err := sheet.Sprite(SpriteZombie)
	if err != nil {
		return nil, fmt.Errorf("zombie sprite: %w", err)
	}
	crosshair, err := sheet.Sprite(SpriteCursor)
	if err != nil {
		return nil, fmt.Errorf("cursor sprite: %w", err)
	}
	grass, err := sheet.Sprite(SpriteGrass)
	if err != nil {
		return nil, fmt.Errorf("grass sprite: %w", err)
	}
	if g.flash, err = sheet.Sprite(SpriteFlash); err != nil {
		return nil, fmt.Errorf("flash sprite: %w", err)
	}

	tuning := lua.PlayerTuning(scripting.PlayerTuning{
		Name:          cfg.Player.Name,
		Movement:      cfg.Player.Movement,
		MaxSpeed:      cfg.Player.MaxSpeed,
		Accel:         cfg.Player.Accel,
		Deccel:        cfg.Player.Deccel,
		IdleThreshold: cfg.Player.IdleThreshold,
	})
	g.name = tuning.Name
	g.idle = float32(tuning.IdleThreshold)
	g.contr = controller.NewPlayerController(movementModel(tuning))
	g.flashCfg = lua.FlashTuning(scripting.FlashTuning{Light: playerLight})

	res := &ws.ECS.Resources
	res.Window = ecs.WindowSize{W: float32(cfg.Window.Width), H: float32(cfg.Window.Height)}

	tw := float32(sheet.TileWidth)

	ws.Create().
		Position(component.Position{Z: -5}).
		Scale(component.Scale{X: actorScale, Y: actorScale}).
		Color(component.White).
		Sprite(zombie).
		ID()

	g.player = ws.Create().
		Position(component.Position{X: 100, Y: 100, Z: -5}).
		Scale(component.Scale{X: actorScale, Y: actorScale}).
		Color(component.White).
		Sprite(playerSchema).
		Animation(playerSchema.Animations["idle"]).
		Light(playerLight).
		Velocity(component.Velocity{}).
		Collider((tw-2)*actorScale, (tw-2)*actorScale).
		Text(component.Text{Content: g.name, Size: 2, OffsetX: -25, OffsetY: 45}).
		ID()

	g.cursor = ws.Create().
		Position(component.Position{Z: 1}).
		Scale(component.Scale{X: cursorScale, Y: cursorScale}).
		Color(component.White).
		Sprite(crosshair).
		Collider((tw-1)*cursorScale, (tw-1)*cursorScale).
		ID()

	tiles := g.plantGrass(grass)
	if cfg.Assets.Level != "" {
		ids, err := ws.LoadLevel(cfg.Assets.Level, g.legend(), -5, 5)
		if err != nil {
			return nil, err
		}
		tiles += len(ids)
	}

	g.collisions = ws.Collisions.RegisterReader()
	g.subscribe()

	log.Info("game ready",
		zap.String("player", g.name),
		zap.String("movement", tuning.Movement),
		zap.Int("tiles", tiles),
		zap.Int("entities", ws.EntityCount()),
	)
	return g, nil
}

func movementModel(t scripting.PlayerTuning) controller.Movement {
	if t.Movement == "instant" {
		return controller.Instant{MaxSpeed: float32(t.MaxSpeed)}
	}
	return controller.Accelerated{
		MaxSpeed: float32(t.MaxSpeed),
		Accel:    float32(t.Accel),
		Deccel:   float32(t.Deccel),
	}
}

// plantGrass covers a square around the origin with grass floor tiles, a
// share of them swapped for a random non-base variant.
func (g *Game) plantGrass(grass *data.SpriteSchema) int {
	radius := int32(g.cfg.World.GrassRadius)
	if radius <= 0 {
		return 0
	}
	base := grass
	if v, ok := grass.Variants["0"]; ok {
		base = v
	}
	var extra []*data.SpriteSchema
	for _, name := range slices.Sorted(maps.Keys(grass.Variants)) {
		if v := grass.Variants[name]; v != base {
			extra = append(extra, v)
		}
	}

	seed := g.cfg.World.Seed
	rng := rand.New(rand.NewPCG(seed, seed+1))
	n := 0
	for i := -radius; i < radius; i++ {
		for j := -radius; j < radius; j++ {
			schema := base
			if len(extra) > 0 && rng.Float64() < g.cfg.World.GrassVariantChance {
				schema = extra[rng.IntN(len(extra))]
			}
			g.world.Create().Floor(i, j, schema).Color(component.White).ID()
			n++
		}
	}
	return n
}

// legend maps level characters to catalog sprites; sprites missing from
// the catalog are left out.
func (g *Game) legend() world.Legend {
	legend := world.Legend{}
	if brick, err := g.world.Sheet.Sprite(SpriteBrick); err == nil {
		legend['#'] = world.LevelCell{Wall: brick}
	}
	if water, err := g.world.Sheet.Sprite(SpriteWater); err == nil {
		legend['~'] = world.LevelCell{Floor: water}
	}
	return legend
}

// Player returns the controlled entity.
func (g *Game) Player() ecs.EntityID { return g.player }

// Cursor returns the crosshair entity.
func (g *Game) Cursor() ecs.EntityID { return g.cursor }

// Controller returns the player's movement controller.
func (g *Game) Controller() *controller.PlayerController { return g.contr }

// Quit reports whether the player asked to leave.
func (g *Game) Quit() bool { return g.quit }

// Close detaches the game from the collision channel.
func (g *Game) Close() {
	g.world.Collisions.Unregister(g.collisions)
}
