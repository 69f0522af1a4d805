package scene

// The enum channel types the coercion layer's enum targets resolve into
// (spec.md §4.6 "Enum targets ... from strings via an internal ordinal
// scale over the variant set"). Each has a zero value that is its
// documented default.

type StrokeCap int

const (
	StrokeCapButt StrokeCap = iota
	StrokeCapRound
	StrokeCapSquare
)

type StrokeJoin int

const (
	StrokeJoinMiter StrokeJoin = iota
	StrokeJoinRound
	StrokeJoinBevel
)

type ImageAlign int

const (
	ImageAlignLeft ImageAlign = iota
	ImageAlignCenter
	ImageAlignRight
)

type ImageBaseline int

const (
	ImageBaselineTop ImageBaseline = iota
	ImageBaselineMiddle
	ImageBaselineBottom
)

type AreaOrientation int

const (
	AreaOrientationVertical AreaOrientation = iota
	AreaOrientationHorizontal
)

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type TextBaseline int

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineMiddle
	TextBaselineBottom
)

type FontWeight int

const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
)

type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

// enumVariants lists every enum target's string-keyed variant set, in
// declaration order, for the coercion layer's internal ordinal lookup.
var enumVariants = map[string][]string{
	"stroke_cap":       {"butt", "round", "square"},
	"stroke_join":      {"miter", "round", "bevel"},
	"image_align":      {"left", "center", "right"},
	"image_baseline":   {"top", "middle", "bottom"},
	"area_orientation": {"vertical", "horizontal"},
	"text_align":       {"left", "center", "right"},
	"text_baseline":    {"alphabetic", "top", "middle", "bottom"},
	"font_weight":      {"normal", "bold"},
	"font_style":       {"normal", "italic", "oblique"},
}

// EnumVariants returns the ordered variant-name set for a registered
// enum target, or (nil, false) if target is not one of the closed enum
// targets spec.md §4.6 lists.
func EnumVariants(target string) ([]string, bool) {
	v, ok := enumVariants[target]
	return v, ok
}
