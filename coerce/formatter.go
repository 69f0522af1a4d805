package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"

	"github.com/plotkit/engine/errs"
)

// Formatter is one of the four formatter slots spec.md §4.7 describes:
// number, date, timestamp, timestamp-with-tz. Each accepts an optional
// format template (Go's time/strconv-style layout) and, for
// timestamp-with-tz, an optional display timezone.
type Formatter struct {
	Kind     FormatterKind
	Template string // "" selects the default
	Timezone string // only meaningful for KindTimestampTZ
}

type FormatterKind int

const (
	KindNumber FormatterKind = iota
	KindDate
	KindTimestamp
	KindTimestampTZ
)

// FormatArray dispatches arr by its Arrow data type and formats every
// value through f, returning one string per row (nulls format as "").
func FormatArray(f Formatter, arr arrow.Array) ([]string, error) {
	out := make([]string, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			continue
		}
		s, err := formatOne(f, arr, i)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func formatOne(f Formatter, arr arrow.Array, i int) (string, error) {
	switch f.Kind {
	case KindNumber:
		v, err := numericAt(arr, i)
		if err != nil {
			return "", err
		}
		return formatNumber(float64(v), f.Template), nil
	case KindDate:
		t, err := dateAt(arr, i)
		if err != nil {
			return "", err
		}
		return formatTime(t, f.Template, "2006-01-02"), nil
	case KindTimestamp:
		t, err := dateAt(arr, i)
		if err != nil {
			return "", err
		}
		return formatTime(t, f.Template, "2006-01-02T15:04:05"), nil
	case KindTimestampTZ:
		t, err := dateAt(arr, i)
		if err != nil {
			return "", err
		}
		loc, err := resolveDisplayTimezone(f.Timezone)
		if err != nil {
			return "", err
		}
		return formatTime(t.In(loc), f.Template, "2006-01-02T15:04:05Z07:00"), nil
	default:
		return "", &errs.InternalError{Msg: "unknown formatter kind"}
	}
}

// formatNumber applies template as an fmt format string (e.g. "%.2f"),
// defaulting to the shortest 'g' decimal form when template is empty.
func formatNumber(v float64, template string) string {
	if template == "" {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf(template, v)
}

func formatTime(t time.Time, template, def string) string {
	if template == "" {
		template = def
	}
	return t.Format(template)
}

// resolveDisplayTimezone mirrors scale.TimeZone's resolution: "local" is
// bound to UTC rather than the host's zone, per spec.md §9's documented
// (if TODO-flagged) source behavior.
func resolveDisplayTimezone(name string) (*time.Location, error) {
	switch name {
	case "", "UTC", "local":
		return time.UTC, nil
	default:
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, &errs.InvalidTimezoneError{Name: name}
		}
		return loc, nil
	}
}

// dateAt converts a temporal Arrow value to time.Time by hand (days or
// unit-scaled ticks since the Unix epoch), rather than trusting a
// per-type ToTime helper whose exact signature varies across arrow-go
// releases — the same normalize-to-milliseconds arithmetic spec.md
// §4.5's Time scale already requires.
func dateAt(arr arrow.Array, i int) (time.Time, error) {
	switch a := arr.(type) {
	case *array.Date32:
		days := int64(a.Value(i))
		return time.UnixMilli(days * 86400000).UTC(), nil
	case *array.Date64:
		return time.UnixMilli(int64(a.Value(i))).UTC(), nil
	case *array.Timestamp:
		ts := a.DataType().(*arrow.TimestampType)
		ms, err := timestampToMillis(int64(a.Value(i)), ts.Unit)
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).UTC(), nil
	default:
		return time.Time{}, &errs.InvalidDataTypeError{Type: arr.DataType().String(), Expected: "a temporal Arrow type"}
	}
}

func timestampToMillis(v int64, unit arrow.TimeUnit) (int64, error) {
	switch unit {
	case arrow.Second:
		return v * 1000, nil
	case arrow.Millisecond:
		return v, nil
	case arrow.Microsecond:
		return v / 1000, nil
	case arrow.Nanosecond:
		return v / 1_000_000, nil
	default:
		return 0, &errs.InternalError{Msg: "unknown Arrow time unit"}
	}
}

// NumberDefault, DateDefault, TimestampDefault, TimestampTZDefault are
// the bundle's four default formatter configurations (spec.md §4.7
// "Defaults produce readable decimal / ISO-8601 forms").
var (
	NumberDefault       = Formatter{Kind: KindNumber}
	DateDefault         = Formatter{Kind: KindDate}
	TimestampDefault    = Formatter{Kind: KindTimestamp}
	TimestampTZDefault  = Formatter{Kind: KindTimestampTZ}
)

// String coerces arr to string via the formatter bundle, dispatching by
// Arrow data type to the matching default formatter slot unless an
// override f is given (spec.md §4.6 "string: via the formatter bundle").
func String(arr arrow.Array, override *Formatter) (ScalarOrArray[string], error) {
	var out []string
	var err error
	switch {
	case override != nil:
		out, err = FormatArray(*override, arr)
	case isStringArray(arr):
		out, err = formatGeneric(arr)
	default:
		out, err = FormatArray(defaultFormatterFor(arr.DataType()), arr)
	}
	if err != nil {
		return ScalarOrArray[string]{}, err
	}
	return Collapse(out), nil
}

func isStringArray(arr arrow.Array) bool {
	_, ok := arr.(*array.String)
	return ok
}

func formatGeneric(arr arrow.Array) ([]string, error) {
	out := make([]string, arr.Len())
	for i := range out {
		if arr.IsNull(i) {
			continue
		}
		if s, ok := arr.(*array.String); ok {
			out[i] = s.Value(i)
			continue
		}
		v, err := numericAt(arr, i)
		if err != nil {
			return nil, err
		}
		out[i] = formatNumber(float64(v), "")
	}
	return out, nil
}

func defaultFormatterFor(dt arrow.DataType) Formatter {
	switch dt.ID() {
	case arrow.DATE32, arrow.DATE64:
		return DateDefault
	case arrow.TIMESTAMP:
		if strings.TrimSpace(dt.(*arrow.TimestampType).TimeZone) != "" {
			return TimestampTZDefault
		}
		return TimestampDefault
	default:
		return NumberDefault
	}
}
