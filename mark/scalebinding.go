package mark

import "github.com/plotkit/engine/scale"

// BindScale closes a configured scale implementation over its domain and
// range into the ScaleBinding the mark compiler applies by name (spec.md
// §4.8 step 3 "look up the evaluated scale by name in the runtime's
// output map"). The task graph's scale task Evaluator produces exactly
// this value, boxed in a taskvalue.Val per mark.go's ScaleBinding doc
// comment, once domain/range have been resolved from the task's inputs.
func BindScale(impl scale.ScaleImpl, config scale.Config, domain, rng []interface{}) ScaleBinding {
	return ScaleBinding{
		Apply: func(values []interface{}) ([]interface{}, error) {
			return impl.Scale(config, domain, rng, values)
		},
	}
}
