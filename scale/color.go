package scale

import (
	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/scene"
)

// ContinuousColor is a linear scale whose range is a gradient palette,
// sampled per input (spec.md §4.5 "Continuous color (linear sRGBA and
// friends)"): the input domain maps through Linear's affine mapping
// into [0,1], then interpolates between adjacent palette stops.
type ContinuousColor struct{}

func (ContinuousColor) ScaleType() string { return "continuous-color" }

func (ContinuousColor) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "clamp", Kind: KindBool, Default: true},
	}
}

func (ContinuousColor) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func sampleGradient(palette []scene.Color, t float64) scene.Color {
	if len(palette) == 0 {
		return scene.Color{}
	}
	if len(palette) == 1 || t <= 0 {
		return palette[0]
	}
	if t >= 1 {
		return palette[len(palette)-1]
	}
	pos := t * float64(len(palette)-1)
	i := int(pos)
	frac := float32(pos - float64(i))
	a, b := palette[i], palette[i+1]
	return scene.Color{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: lerp(a.A, b.A, frac),
	}
}

// Scale maps float64 domain values to scene.Color, given rng as a
// []interface{} of scene.Color forming the palette.
func (s ContinuousColor) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	if len(domain) < 2 || len(rng) == 0 {
		return nil, &errs.EmptyDomain{ScaleType: "continuous-color"}
	}
	d0, d1 := domain[0].(float64), domain[len(domain)-1].(float64)
	palette := make([]scene.Color, len(rng))
	for i, c := range rng {
		palette[i] = c.(scene.Color)
	}
	clamp := config.Bool("clamp", true)
	out := make([]interface{}, len(values))
	for i, v := range values {
		x := v.(float64)
		t := linearMap(x, d0, d1, 0, 1, clamp)
		out[i] = sampleGradient(palette, t)
	}
	return out, nil
}

func (s ContinuousColor) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	return nil, &errs.ScaleOperationNotSupported{ScaleType: "continuous-color", Operation: "invert"}
}

func (s ContinuousColor) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1 := domain[0].(float64), domain[len(domain)-1].(float64)
	return toInterfaces(niceLinearTicks(d0, d1, count)), nil
}

func (s ContinuousColor) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	return domain, nil
}
