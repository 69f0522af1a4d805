package scale

import (
	"math"
	"time"

	"github.com/plotkit/engine/errs"
)

// Time is the temporal scale (spec.md §4.5): domain and input values are
// time.Time, which the scale maps through milliseconds since the epoch.
// Nicing and tick generation pick an interval from a fixed hierarchy
// (millisecond, second, minute, hour, day, week, month, year, and
// multiples thereof): the finest interval whose bucket count does not
// exceed the target tick count.
type Time struct{}

func (Time) ScaleType() string { return "time" }

func (Time) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "clamp", Kind: KindBool, Default: false},
		{Name: "timezone", Kind: KindString, Default: "UTC"},
	}
}

func (Time) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

// timeInterval is one rung of the fixed tick hierarchy: ms (1 to 500),
// s and min ({1,2,5,10,15,30}), hr ({1,2,3,6,12}), day ({1,2}), week,
// month ({1,2,3,6}; there is no separate quarter unit, 3 months plays
// that role) and year ({1,2,5,10}).
type timeInterval struct {
	unit  string
	count int // subdivision multiplier
	millis float64 // approximate width, used only for level search
}

var timeHierarchy = func() []timeInterval {
	var out []timeInterval
	add := func(unit string, base float64, subs ...int) {
		for _, c := range subs {
			out = append(out, timeInterval{unit: unit, count: c, millis: base * float64(c)})
		}
	}
	add("ms", 1, 1, 2, 5, 10, 15, 30, 50, 100, 200, 500)
	add("s", 1000, 1, 2, 5, 10, 15, 30)
	add("min", 60000, 1, 2, 5, 10, 15, 30)
	add("hr", 3600000, 1, 2, 3, 6, 12)
	add("day", 86400000, 1, 2)
	add("week", 7*86400000, 1)
	add("month", 30*86400000.0, 1, 2, 3, 6)
	add("year", 365*86400000.0, 1, 2, 5, 10)
	return out
}()

func timeDomainBounds(domain []interface{}) (d0, d1 time.Time, err error) {
	if len(domain) < 2 {
		return time.Time{}, time.Time{}, &errs.EmptyDomain{ScaleType: "time"}
	}
	return domain[0].(time.Time), domain[len(domain)-1].(time.Time), nil
}

func timeDomainRange(domain, rng []interface{}) (d0, d1 time.Time, r0, r1 float64, err error) {
	d0, d1, err = timeDomainBounds(domain)
	if err != nil {
		return time.Time{}, time.Time{}, 0, 0, err
	}
	return d0, d1, rng[0].(float64), rng[len(rng)-1].(float64), nil
}

func (s Time) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := timeDomainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	clamp := config.Bool("clamp", false)
	m0, m1 := float64(d0.UnixMilli()), float64(d1.UnixMilli())
	out := make([]interface{}, len(values))
	for i, v := range values {
		t, ok := v.(time.Time)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = linearMap(float64(t.UnixMilli()), m0, m1, r0, r1, clamp)
	}
	return out, nil
}

func (s Time) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	d0, d1, r0, r1, err := timeDomainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	m0, m1 := float64(d0.UnixMilli()), float64(d1.UnixMilli())
	out := make([]interface{}, len(values))
	for i, v := range values {
		y := v.(float64)
		m := linearMap(y, r0, r1, m0, m1, false)
		out[i] = time.UnixMilli(int64(m)).UTC()
	}
	return out, nil
}

// pickInterval chooses the finest hierarchy rung whose bucket count over
// [d0, d1] is <= count, falling back to the coarsest rung when none fits.
func pickInterval(d0, d1 time.Time, count int) timeInterval {
	span := float64(d1.UnixMilli() - d0.UnixMilli())
	if count < 1 {
		count = 1
	}
	best := timeHierarchy[len(timeHierarchy)-1]
	for _, iv := range timeHierarchy {
		if span/iv.millis <= float64(count) {
			best = iv
			break
		}
	}
	return best
}

// floorTo rounds t down to the interval boundary, per spec.md §4.5
// "floor/ceil the bounds to that interval in the configured timezone
// ... Month and year arithmetic clamp out-of-range days."
func floorTo(t time.Time, iv timeInterval, loc *time.Location) time.Time {
	t = t.In(loc)
	switch iv.unit {
	case "ms":
		ms := t.UnixMilli() / int64(iv.count) * int64(iv.count)
		return time.UnixMilli(ms).In(loc)
	case "s":
		sec := t.Unix() / int64(iv.count) * int64(iv.count)
		return time.Unix(sec, 0).In(loc)
	case "min":
		m := t.Truncate(time.Minute)
		step := time.Duration(iv.count) * time.Minute
		return m.Truncate(step)
	case "hr":
		step := time.Duration(iv.count) * time.Hour
		return t.Truncate(step)
	case "day":
		y, mo, d := t.Date()
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case "week":
		y, mo, d := t.Date()
		wd := int(t.Weekday())
		return time.Date(y, mo, d-wd, 0, 0, 0, 0, loc)
	case "month":
		y, mo, _ := t.Date()
		m0 := (int(mo) - 1) / iv.count * iv.count
		return time.Date(y, time.Month(m0+1), 1, 0, 0, 0, 0, loc)
	case "year":
		y := t.Year() / iv.count * iv.count
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return t
}

func ceilTo(t time.Time, iv timeInterval, loc *time.Location) time.Time {
	floored := floorTo(t, iv, loc)
	if floored.Equal(t) {
		return floored
	}
	return nextBoundary(floored, iv, loc)
}

func nextBoundary(t time.Time, iv timeInterval, loc *time.Location) time.Time {
	switch iv.unit {
	case "ms":
		return t.Add(time.Duration(iv.count) * time.Millisecond)
	case "s":
		return t.Add(time.Duration(iv.count) * time.Second)
	case "min":
		return t.Add(time.Duration(iv.count) * time.Minute)
	case "hr":
		return t.Add(time.Duration(iv.count) * time.Hour)
	case "day":
		return t.AddDate(0, 0, iv.count)
	case "week":
		return t.AddDate(0, 0, 7*iv.count)
	case "month":
		return t.AddDate(0, iv.count, 0)
	case "year":
		return t.AddDate(iv.count, 0, 0)
	}
	return t
}

// TimeZone is the "timezone" option value: an IANA zone name, "UTC", or
// "local". The source treats "local" as UTC (a documented TODO, spec.md
// §9); this module keeps that behavior rather than binding to the host
// system's timezone database, so "local" is NOT the machine's local
// zone — it is UTC under another name. Revisit only alongside an
// explicit host-timezone resolution story.
type TimeZone string

func resolveLocation(config Config) (*time.Location, error) {
	name := TimeZone(config.String("timezone", "UTC"))
	switch name {
	case "", "UTC", "local":
		return time.UTC, nil
	default:
		loc, err := time.LoadLocation(string(name))
		if err != nil {
			return nil, &errs.InvalidTimezoneError{Name: string(name)}
		}
		return loc, nil
	}
}

func (s Time) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1, err := timeDomainBounds(domain)
	if err != nil {
		return nil, err
	}
	loc, err := resolveLocation(config)
	if err != nil {
		return nil, err
	}
	iv := pickInterval(d0, d1, count)
	var out []interface{}
	for t := ceilTo(d0, iv, loc); !t.After(d1); t = nextBoundary(t, iv, loc) {
		out = append(out, t)
	}
	return out, nil
}

func (s Time) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	d0, d1, err := timeDomainBounds(domain)
	if err != nil {
		return nil, err
	}
	loc, err := resolveLocation(config)
	if err != nil {
		return nil, err
	}
	iv := pickInterval(d0, d1, 10)
	return []interface{}{floorTo(d0, iv, loc), ceilTo(d1, iv, loc)}, nil
}
