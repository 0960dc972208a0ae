package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// Codec converts one path segment or query value between its raw string
// form and a typed value. Decode rejects out-of-range or malformed input
// instead of coercing; Encode is the exact inverse for every value Decode
// accepts (up to the codec's declared precision).
type Codec interface {
	Decode(raw string) (any, error)
	Encode(v any) (string, error)
}

// IntCodec decodes base-10 integers with an inclusive lower bound.
// Route object IDs use IntCodec{Min: 1}.
type IntCodec struct {
	Min int64
}

func (c IntCodec) Decode(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}
	if n < c.Min {
		return nil, fmt.Errorf("integer %d below minimum %d", n, c.Min)
	}
	return n, nil
}

func (c IntCodec) Encode(v any) (string, error) {
	n, err := toInt64(v)
	if err != nil {
		return "", err
	}
	if n < c.Min {
		return "", fmt.Errorf("integer %d below minimum %d", n, c.Min)
	}
	return strconv.FormatInt(n, 10), nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return safecast.Conv[int64](n)
	case uint64:
		return safecast.Conv[int64](n)
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

// StringCodec passes non-empty strings through unchanged.
type StringCodec struct{}

func (StringCodec) Decode(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty value")
	}
	return raw, nil
}

func (StringCodec) Encode(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	if s == "" {
		return "", fmt.Errorf("empty value")
	}
	return s, nil
}

// EnumCodec accepts only members of a closed string set.
type EnumCodec struct {
	Values []string
}

func (c EnumCodec) Decode(raw string) (any, error) {
	for _, v := range c.Values {
		if raw == v {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%q is not one of %s", raw, strings.Join(c.Values, "|"))
}

func (c EnumCodec) Encode(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	if _, err := c.Decode(s); err != nil {
		return "", err
	}
	return s, nil
}

// QueryTextCodec normalizes free text query values: trims surrounding
// whitespace and applies Unicode NFC so visually identical queries produce
// identical fetch keys. Empty (after trimming) is rejected.
type QueryTextCodec struct{}

func (QueryTextCodec) Decode(raw string) (any, error) {
	s := norm.NFC.String(strings.TrimSpace(raw))
	if s == "" {
		return nil, fmt.Errorf("empty query text")
	}
	return s, nil
}

func (QueryTextCodec) Encode(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty query text")
	}
	return s, nil
}

// coordPrecision is the number of decimal places carried by encoded
// coordinates. Matches the upstream map hash precision.
const coordPrecision = 5

func quantize(v float64) float64 {
	scale := math.Pow(10, coordPrecision)
	return math.Round(v*scale) / scale
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', coordPrecision, 64)
}

// MapCenter is the shared "map" query value: zoom level plus the viewport
// center, encoded as "zoom/lat/lon".
type MapCenter struct {
	Zoom int
	Lat  float64
	Lon  float64
}

// MapCenterCodec decodes the composite map-center value as one atomic unit:
// a malformed or out-of-range component rejects the whole value.
type MapCenterCodec struct{}

func (MapCenterCodec) Decode(raw string) (any, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("map center %q: want zoom/lat/lon", raw)
	}
	zoom, err := strconv.Atoi(parts[0])
	if err != nil || zoom < 0 {
		return nil, fmt.Errorf("map center %q: bad zoom", raw)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("map center %q: latitude out of range", raw)
	}
	lon, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("map center %q: longitude out of range", raw)
	}
	return MapCenter{Zoom: zoom, Lat: quantize(lat), Lon: quantize(lon)}, nil
}

func (MapCenterCodec) Encode(v any) (string, error) {
	c, ok := v.(MapCenter)
	if !ok {
		return "", fmt.Errorf("expected MapCenter, got %T", v)
	}
	if c.Zoom < 0 || c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return "", fmt.Errorf("map center out of range: %+v", c)
	}
	return fmt.Sprintf("%d/%s/%s", c.Zoom, formatCoord(c.Lat), formatCoord(c.Lon)), nil
}

// BBoxCodec decodes a "minLon,minLat,maxLon,maxLat" viewport rectangle.
type BBoxCodec struct{}

func (BBoxCodec) Decode(raw string) (any, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox %q: want minLon,minLat,maxLon,maxLat", raw)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bbox %q: bad number %q", raw, p)
		}
		vals[i] = quantize(f)
	}
	b := BBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("bbox %q: %w", raw, err)
	}
	return b, nil
}

func (BBoxCodec) Encode(v any) (string, error) {
	b, ok := v.(BBox)
	if !ok {
		return "", fmt.Errorf("expected BBox, got %T", v)
	}
	if err := b.Validate(); err != nil {
		return "", err
	}
	return strings.Join([]string{
		formatCoord(b.MinLon),
		formatCoord(b.MinLat),
		formatCoord(b.MaxLon),
		formatCoord(b.MaxLat),
	}, ","), nil
}
