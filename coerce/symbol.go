package coerce

import "github.com/plotkit/engine/scene"

// namedSymbolPaths are unit-area (diameter-1-circle-equivalent) SVG path
// strings for the closed named-shape set spec.md §4.6 lists: a path
// string parsed by the same scanner Path uses.
var namedSymbolPaths = map[string]string{
	"circle":          "M 0.5 0 C 0.5 0.2761 0.2761 0.5 0 0.5 C -0.2761 0.5 -0.5 0.2761 -0.5 0 C -0.5 -0.2761 -0.2761 -0.5 0 -0.5 C 0.2761 -0.5 0.5 -0.2761 0.5 0 Z",
	"square":          "M -0.5 -0.5 L 0.5 -0.5 L 0.5 0.5 L -0.5 0.5 Z",
	"cross":           "M -0.5 -0.1667 L -0.1667 -0.1667 L -0.1667 -0.5 L 0.1667 -0.5 L 0.1667 -0.1667 L 0.5 -0.1667 L 0.5 0.1667 L 0.1667 0.1667 L 0.1667 0.5 L -0.1667 0.5 L -0.1667 0.1667 L -0.5 0.1667 Z",
	"diamond":         "M 0 -0.5 L 0.5 0 L 0 0.5 L -0.5 0 Z",
	"triangle-up":     "M 0 -0.5 L 0.5 0.5 L -0.5 0.5 Z",
	"triangle-down":   "M 0 0.5 L 0.5 -0.5 L -0.5 -0.5 Z",
	"triangle-left":   "M -0.5 0 L 0.5 0.5 L 0.5 -0.5 Z",
	"triangle-right":  "M 0.5 0 L -0.5 0.5 L -0.5 -0.5 Z",
	"triangle":        "M 0 -0.5 L 0.5 0.5 L -0.5 0.5 Z",
	"arrow":           "M 0 -0.5 L 0.25 0 L 0.1 0 L 0.1 0.5 L -0.1 0.5 L -0.1 0 L -0.25 0 Z",
	"wedge":           "M 0 -0.5 L 0.3 0.3 L -0.3 0.3 Z",
}

// SymbolShape resolves a target value (a named shape string, or an
// arbitrary SVG path string) into a scene.PathData, scaling raw SVG
// paths by 0.5 to match the unit-area convention named shapes already
// satisfy (spec.md §4.6 "symbol_shape ... or an SVG path (scaled by 0.5
// to match the convention that the marketable symbol has unit area)").
func SymbolShape(v interface{}) scene.PathData {
	name, ok := v.(string)
	if !ok {
		if pd, ok := v.(scene.PathData); ok {
			return pd
		}
		return scene.PathData{}
	}
	if svg, ok := namedSymbolPaths[name]; ok {
		return parseSVGPath(svg)
	}
	return scalePath(parseSVGPath(name), 0.5)
}

func scalePath(pd scene.PathData, factor float32) scene.PathData {
	points := make([]float32, len(pd.Points))
	for i, p := range pd.Points {
		points[i] = p * factor
	}
	return scene.PathData{Verbs: pd.Verbs, Points: points}
}
