package spatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/lalit-insnapsys/address-details-api/models"
)

// buildingBuffer is the fallback radius in coordinate degrees (about 1.1 m).
// Points that land exactly on a footprint edge can miss the ray-cast
// containment test, so anything within this distance of a ring still counts.
const buildingBuffer = 0.00001

// LocateBuilding scans the static footprint dataset in file order and returns
// the first feature that contains the point, or whose boundary lies within
// buildingBuffer of it. File order is the tie-break when footprints overlap.
func (d *Datasets) LocateBuilding(point models.GeoPoint) (*geojson.Feature, error) {
	if d == nil || d.Buildings == nil {
		return nil, &models.DataUnavailableError{Msg: "Building data not found."}
	}

	p := orb.Point{point.Longitude, point.Latitude}
	for _, feature := range d.Buildings.Features {
		if feature.Geometry == nil {
			continue
		}
		bound := feature.Geometry.Bound()
		if p[0] < bound.Min[0]-buildingBuffer || p[0] > bound.Max[0]+buildingBuffer ||
			p[1] < bound.Min[1]-buildingBuffer || p[1] > bound.Max[1]+buildingBuffer {
			continue
		}
		if geometryContains(feature.Geometry, p) {
			return feature, nil
		}
		if geometryNear(feature.Geometry, p, buildingBuffer) {
			return feature, nil
		}
	}
	return nil, &models.NotFoundError{Msg: "No matching building found at this location."}
}

func geometryContains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	}
	return false
}

func geometryNear(g orb.Geometry, p orb.Point, radius float64) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return polygonNear(geom, p, radius)
	case orb.MultiPolygon:
		for _, poly := range geom {
			if polygonNear(poly, p, radius) {
				return true
			}
		}
	}
	return false
}

func polygonNear(poly orb.Polygon, p orb.Point, radius float64) bool {
	for _, ring := range poly {
		for i := 1; i < len(ring); i++ {
			if segmentDistance(p, ring[i-1], ring[i]) <= radius {
				return true
			}
		}
	}
	return false
}

// segmentDistance is the planar distance from p to the segment a-b, in
// coordinate degrees.
func segmentDistance(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx == 0 && dy == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}
