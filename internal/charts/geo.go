package charts

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/indiaviz-cli/internal/analysis"
	"github.com/KaramelBytes/indiaviz-cli/internal/dataset"
	"github.com/twpayne/go-geom"
)

// Zoom levels match a web map: 4 shows the whole country, 6 a single state.
const (
	ZoomOverall = 4
	ZoomRegion  = 6
)

// Centre of the subcontinent, used when there are no points to frame.
const (
	indiaLon = 82.0
	indiaLat = 22.0
)

// MapPoint is one district marker.
type MapPoint struct {
	District string
	Lon, Lat float64
	Size     float64 // primary parameter, NaN when missing
	Colour   float64 // secondary parameter, NaN when missing
}

// MapZoom returns the zoom level for a region selection.
func MapZoom(region string) int {
	if region == "" || region == analysis.Overall {
		return ZoomOverall
	}
	return ZoomRegion
}

// MapPoints collects markers for every row with coordinates.
func MapPoints(v *analysis.View, primary, secondary string) []MapPoint {
	var pts []MapPoint
	for _, r := range v.Rows {
		lon, okLon := r.Value(dataset.ColLongitude)
		lat, okLat := r.Value(dataset.ColLatitude)
		if !okLon || !okLat {
			continue
		}
		pt := MapPoint{District: r.District, Lon: lon, Lat: lat, Size: math.NaN(), Colour: math.NaN()}
		if x, ok := r.Value(primary); ok {
			pt.Size = x
		}
		if x, ok := r.Value(secondary); ok {
			pt.Colour = x
		}
		pts = append(pts, pt)
	}
	return pts
}

// Viewport frames pts. The visible span never drops below what the zoom
// level shows (360/2^zoom degrees), so a single district still gets context.
func Viewport(pts []MapPoint, zoom int) (*geom.Bounds, error) {
	half := 180 / math.Pow(2, float64(zoom))
	cx, cy := indiaLon, indiaLat
	hx, hy := half, half
	if len(pts) > 0 {
		coords := make([]geom.Coord, len(pts))
		for i, p := range pts {
			coords[i] = geom.Coord{p.Lon, p.Lat}
		}
		mp, err := geom.NewMultiPoint(geom.XY).SetCoords(coords)
		if err != nil {
			return nil, fmt.Errorf("map bounds: %w", err)
		}
		b := mp.Bounds()
		cx = (b.Min(0) + b.Max(0)) / 2
		cy = (b.Min(1) + b.Max(1)) / 2
		hx = math.Max(half, (b.Max(0)-b.Min(0))/2*1.1)
		hy = math.Max(half, (b.Max(1)-b.Min(1))/2*1.1)
	}
	return geom.NewBounds(geom.XY).Set(cx-hx, cy-hy, cx+hx, cy+hy), nil
}
