package scale

import "github.com/plotkit/engine/errs"

// Ordinal maps discrete domain values to range entries by positional
// pairing (spec.md §4.5): domain[i] maps to range[i mod len(range)],
// cycling the range if it is shorter than the domain. Unmatched inputs
// (values not present in the domain) produce config's "default" entry.
type Ordinal struct{}

func (Ordinal) ScaleType() string { return "ordinal" }

func (Ordinal) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "default", Kind: KindFloat},
	}
}

func (Ordinal) InferDomainFromDataMethod() InferDomainMethod { return InferUnique }

func (s Ordinal) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if len(rng) == 0 {
		return nil, &errs.EmptyDomain{ScaleType: "ordinal"}
	}
	def := config["default"]
	out := make([]interface{}, len(values))
	for i, v := range values {
		idx, ok := bandDomainIndex(domain, v)
		if !ok {
			out[i] = def
			continue
		}
		out[i] = rng[idx%len(rng)]
	}
	return out, nil
}

func (s Ordinal) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	out := make([]interface{}, len(values))
	for i, v := range values {
		found := false
		for di, r := range rng {
			if r == v {
				if di < len(domain) {
					out[i] = domain[di]
				} else if len(domain) > 0 {
					out[i] = domain[di%len(domain)]
				}
				found = true
				break
			}
		}
		if !found {
			out[i] = nil
		}
	}
	return out, nil
}

func (s Ordinal) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	return domain, nil
}

func (s Ordinal) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	return domain, nil
}
