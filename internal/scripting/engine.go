package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay hooks.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. Missing directories are skipped, so an engine without scripts
// answers every hook with its built-in default.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first, then gameplay scripts
	for _, sub := range []string{"core", "game"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// PlayerTuning is the movement setup of the controllable character.
type PlayerTuning struct {
	Name          string
	Movement      string // "accelerated" or "instant"
	MaxSpeed      float64
	Accel         float64
	Deccel        float64
	IdleThreshold float64
}

// PlayerTuning calls the Lua player_tuning function. Fields the script
// leaves out keep their value from def.
func (e *Engine) PlayerTuning(def PlayerTuning) PlayerTuning {
	rt := e.callTable("player_tuning")
	if rt == nil {
		return def
	}
	out := def
	if s := lStr(rt, "name"); s != "" {
		out.Name = s
	}
	if s := lStr(rt, "movement"); s != "" {
		out.Movement = s
	}
	lFloatInto(rt, "max_speed", &out.MaxSpeed)
	lFloatInto(rt, "accel", &out.Accel)
	lFloatInto(rt, "deccel", &out.Deccel)
	lFloatInto(rt, "idle_threshold", &out.IdleThreshold)
	return out
}

// CollisionContext describes the player's collision state for one tick.
type CollisionContext struct {
	Name string // player's resting label
	Hits int    // events with the player as A this tick
	Tick uint64
}

// DefaultCollisionLabel is shown while the player touches something and
// no script overrides it.
const DefaultCollisionLabel = "Boop"

// CollisionLabel calls the Lua collision_label function.
func (e *Engine) CollisionLabel(ctx CollisionContext) string {
	fn := e.vm.GetGlobal("collision_label")
	if fn == lua.LNil {
		return DefaultCollisionLabel
	}

	t := e.vm.NewTable()
	t.RawSetString("name", lua.LString(ctx.Name))
	t.RawSetString("hits", lua.LNumber(ctx.Hits))
	t.RawSetString("tick", lua.LNumber(ctx.Tick))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua collision_label error", zap.Error(err))
		return DefaultCollisionLabel
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	s, ok := result.(lua.LString)
	if !ok || s == "" {
		return DefaultCollisionLabel
	}
	return string(s)
}

// FlashTuning shapes the muzzle flash spawned on click.
type FlashTuning struct {
	Light    float64
	Lifetime float64 // seconds; 0 lets the animation decide
}

// FlashTuning calls the Lua flash_tuning function.
func (e *Engine) FlashTuning(def FlashTuning) FlashTuning {
	rt := e.callTable("flash_tuning")
	if rt == nil {
		return def
	}
	out := def
	lFloatInto(rt, "light", &out.Light)
	lFloatInto(rt, "lifetime", &out.Lifetime)
	return out
}

// callTable calls a zero-argument Lua function returning a table. A missing
// function, a failed call or a non-table result yield nil.
func (e *Engine) callTable(name string) *lua.LTable {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Debug("lua function not found", zap.String("name", name))
		return nil
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua function returned non-table", zap.String("func", name))
		return nil
	}
	return rt
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// lFloatInto overwrites *dst when the table holds a number at key.
func lFloatInto(t *lua.LTable, key string, dst *float64) {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		*dst = float64(n)
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
