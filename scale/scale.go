package scale

// ScaleImpl is the common contract every scale family implements
// (spec.md §4.5). Domain and Range are boxed as []interface{} here;
// concrete families assert the concrete element type they expect
// (float64 for continuous numeric families, string/any comparable for
// discrete families, time.Time for Time).
type ScaleImpl interface {
	ScaleType() string
	OptionDefinitions() []OptionDefinition

	// Scale maps domain values to range values under config.
	Scale(config Config, domain, rng []interface{}, values []interface{}) ([]interface{}, error)

	// Invert maps range values back to domain values under config.
	// Returns ScaleOperationNotSupported for families with no sensible
	// inverse (e.g. band, quantize, threshold, continuous color).
	Invert(config Config, domain, rng []interface{}, values []interface{}) ([]interface{}, error)

	// Ticks generates up to count human-readable tick values spanning
	// the (possibly nice) domain.
	Ticks(config Config, domain []interface{}, count int) ([]interface{}, error)

	// ComputeNiceDomain extends domain outward to round boundaries.
	ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error)

	InferDomainFromDataMethod() InferDomainMethod
}

// DiscreteScaleImpl is the additional contract discrete-range scales
// implement (band, point, quantize, threshold).
type DiscreteScaleImpl interface {
	ScaleImpl

	// InvertRangeInterval: band and point return the domain values whose
	// bands overlap the range interval [lo, hi]; quantize and threshold
	// return the range entries whose domain cells intersect [lo, hi],
	// given in domain units.
	InvertRangeInterval(config Config, domain, rng []interface{}, lo, hi float64) ([]interface{}, error)
}

// ContinuousNumericImpl is the additional contract of continuous numeric
// scales that provide Adjust, the affine pan/zoom correction between two
// configs of the same family. Only linear implements it; log, symlog and
// pow have no Adjust.
type ContinuousNumericImpl interface {
	ScaleImpl

	Adjust(from, to Config) (LinearScaleAdjustment, error)
}

func asFloats(values []interface{}) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.(float64)
	}
	return out
}

func toInterfaces(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
