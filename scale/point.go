package scale

// Point is a band scale with padding_inner fixed to 1 (spec.md §4.5
// "a band scale with padding_inner = 1 delegated to band internally"):
// every domain entry maps to a single point rather than a zero-width
// band, since bandwidth = step*(1-1) = 0.
type Point struct{}

func (Point) ScaleType() string { return "point" }

func (Point) OptionDefinitions() []OptionDefinition {
	defs := Band{}.OptionDefinitions()
	out := make([]OptionDefinition, 0, len(defs)-1)
	for _, d := range defs {
		if d.Name == "padding_inner" {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (Point) InferDomainFromDataMethod() InferDomainMethod { return InferUnique }

func (p Point) pointConfig(config Config) Config {
	c := make(Config, len(config)+1)
	for k, v := range config {
		c[k] = v
	}
	c["padding_inner"] = 1.0
	return c
}

func (p Point) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	return Band{}.Scale(p.pointConfig(config), domain, rng, values)
}

func (p Point) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	return Band{}.Invert(p.pointConfig(config), domain, rng, values)
}

func (p Point) InvertRangeInterval(config Config, domain, rng []interface{}, lo, hi float64) ([]interface{}, error) {
	return Band{}.InvertRangeInterval(p.pointConfig(config), domain, rng, lo, hi)
}

func (p Point) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	return domain, nil
}

func (p Point) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	return domain, nil
}
