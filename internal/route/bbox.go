package route

import "fmt"

// BBox is a geographic viewport rectangle in WGS84 degrees.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Validate checks coordinate ranges and corner ordering.
func (b BBox) Validate() error {
	if b.MinLon < -180 || b.MaxLon > 180 {
		return fmt.Errorf("longitude out of [-180,180]")
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("latitude out of [-90,90]")
	}
	if b.MinLon > b.MaxLon || b.MinLat > b.MaxLat {
		return fmt.Errorf("min corner exceeds max corner")
	}
	return nil
}

func (b BBox) area() float64 {
	return (b.MaxLon - b.MinLon) * (b.MaxLat - b.MinLat)
}

func (b BBox) intersect(o BBox) BBox {
	r := BBox{
		MinLon: max(b.MinLon, o.MinLon),
		MinLat: max(b.MinLat, o.MinLat),
		MaxLon: min(b.MaxLon, o.MaxLon),
		MaxLat: min(b.MaxLat, o.MaxLat),
	}
	if r.MinLon > r.MaxLon || r.MinLat > r.MaxLat {
		return BBox{}
	}
	return r
}

// IntersectionOverUnion measures viewport overlap in [0,1]. Panels use it
// to decide whether a pan is small enough to keep paginating the current
// result set instead of reloading; the cut-off comes from configuration.
func (b BBox) IntersectionOverUnion(o BBox) float64 {
	inter := b.intersect(o).area()
	union := b.area() + o.area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
