package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/patrol/prefabs"
	"go.uber.org/zap"
)

// hazardScript is a compiled lethal predicate. A nil compiled program means
// the script failed to load and the hazard is always lethal.
type hazardScript struct {
	path     string
	compiled *tengo.Compiled
}

func compileHazardScript(path string, src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("speed", 0.0)
	_ = script.Add("x", 0.0)
	_ = script.Add("z", 0.0)
	_ = script.Add("lethal", true)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("hazard script %s: %w", path, err)
	}
	return compiled, nil
}

func loadHazardScript(path string) *hazardScript {
	hs := &hazardScript{path: path}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		zap.L().Warn("hazard script unavailable, hazard is always lethal", zap.String("script", path), zap.Error(err))
		return hs
	}
	compiled, err := compileHazardScript(path, src)
	if err != nil {
		zap.L().Warn("hazard script failed to compile, hazard is always lethal", zap.String("script", path), zap.Error(err))
		return hs
	}
	hs.compiled = compiled
	return hs
}

// lethal runs the predicate for a player moving at speed at (x, z).
func (hs *hazardScript) lethal(speed, x, z float64) bool {
	if hs == nil || hs.compiled == nil {
		return true
	}
	c := hs.compiled
	if err := c.Set("speed", speed); err != nil {
		return true
	}
	if err := c.Set("x", x); err != nil {
		return true
	}
	if err := c.Set("z", z); err != nil {
		return true
	}
	if err := c.Set("lethal", true); err != nil {
		return true
	}
	if err := c.Run(); err != nil {
		zap.L().Warn("hazard script run failed", zap.String("script", hs.path), zap.Error(err))
		return true
	}
	return c.Get("lethal").Bool()
}
