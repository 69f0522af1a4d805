package coerce

import "context"

// ImageFetcher is the pluggable fetcher spec.md §4.6 describes for
// resolving an image URL string to raw pixel data; supplying one is the
// caller's responsibility (no networking happens inside this package).
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (Image, error)
}

// Image is the resolved raster form spec.md §4.6 describes: a width,
// height, and a tightly packed RGBA8 byte buffer.
type Image struct {
	Width, Height uint32
	Data          []byte
}

// imageStruct is the alternate struct form spec.md §4.6 accepts
// directly: {width, height, data}.
type imageStruct struct {
	Width, Height uint32
	Data          []byte
}

// ResolveImage resolves v into an Image: either a URL string (via
// fetcher) or an already-decoded {width, height, data} struct (spec.md
// §4.6 "image: from URL strings (using a pluggable fetcher) or from a
// struct").
func ResolveImage(ctx context.Context, v interface{}, fetcher ImageFetcher) (Image, error) {
	switch x := v.(type) {
	case Image:
		return x, nil
	case imageStruct:
		return Image{Width: x.Width, Height: x.Height, Data: x.Data}, nil
	case string:
		return fetcher.Fetch(ctx, x)
	default:
		return Image{}, nil
	}
}
