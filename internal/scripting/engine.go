package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM that scripts player input.
// Single-goroutine access only: the input phase calls Axis once per tick.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a VM and loads path, which may be one .lua file or a
// directory of them.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	info, err := os.Stat(path)
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("stat scripts %s: %w", path, err)
	}
	if info.IsDir() {
		err = e.loadDir(path)
	} else {
		err = e.loadFile(path)
	}
	if err != nil {
		vm.Close()
		return nil, err
	}
	return e, nil
}

// NewEngineFromString loads source directly. Used by tests and by callers
// that embed a default script.
func NewEngineFromString(source string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(source); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read scripts %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.loadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) loadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// Axis calls the Lua function input_axis(tick, dt) and returns its two
// results. A missing function, a Lua error or non-numeric results yield a
// neutral (0, 0) and an error log; input never stops the tick.
func (e *Engine) Axis(tick uint64, dt float32) (float32, float32) {
	fn := e.vm.GetGlobal("input_axis")
	if fn == lua.LNil {
		e.log.Error("lua function input_axis not found")
		return 0, 0
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, lua.LNumber(tick), lua.LNumber(dt)); err != nil {
		e.log.Error("lua input_axis error", zap.Error(err))
		return 0, 0
	}
	v := e.vm.Get(-1)
	h := e.vm.Get(-2)
	e.vm.Pop(2)

	hn, ok1 := h.(lua.LNumber)
	vn, ok2 := v.(lua.LNumber)
	if !ok1 || !ok2 {
		e.log.Error("lua input_axis returned non-numbers",
			zap.String("h", h.Type().String()), zap.String("v", v.Type().String()))
		return 0, 0
	}
	return float32(hn), float32(vn)
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
