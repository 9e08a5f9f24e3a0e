package zone

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// ErrNoGeometry is returned when a zone's points yield no usable polygon.
var ErrNoGeometry = errors.New("no valid geometry")

// Zone is the built geometry for a single zoneid/suffixid combination.
type Zone struct {
	Key        string
	CustomerID string

	// Geometry is an orb.Polygon or orb.MultiPolygon, exterior rings wound
	// counter clockwise, holes clockwise.
	Geometry orb.Geometry

	// Areas is the number of areanumber groups that produced a polygon.
	Areas int

	Report BuildReport
}

// BuildReport accounts for repairs and drops during geometry assembly.
type BuildReport struct {
	RingsClosed  int // rings that needed their first point re-appended
	RingsDropped int // rings with too few distinct vertices
	AreasSkipped int // areanumber groups that produced no exterior
}

// Polygons returns the geometry as a flat polygon slice regardless of
// whether it is a single Polygon or a MultiPolygon.
func (z *Zone) Polygons() []orb.Polygon {
	switch g := z.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return []orb.Polygon(g)
	default:
		return nil
	}
}

// Build constructs the geometry for a single zone. Points are grouped by
// areanumber and sorted by seqno within each group; a (0,0) coordinate acts
// as a ring separator, the first ring being the exterior and the rest holes.
// Areas that yield no valid exterior are skipped rather than failing the
// zone; ErrNoGeometry is returned only when every area was skipped.
func Build(key, customerID string, points []AreaPoint) (*Zone, error) {
	z := &Zone{Key: key, CustomerID: customerID}

	byArea := make(map[int][]AreaPoint)
	for _, p := range points {
		byArea[p.AreaNumber] = append(byArea[p.AreaNumber], p)
	}

	areaNumbers := make([]int, 0, len(byArea))
	for n := range byArea {
		areaNumbers = append(areaNumbers, n)
	}
	sort.Ints(areaNumbers)

	var polygons []orb.Polygon
	for _, n := range areaNumbers {
		group := byArea[n]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SeqNo < group[j].SeqNo
		})

		rings := splitRings(group)
		poly := z.assemblePolygon(rings)
		if poly == nil {
			z.Report.AreasSkipped++
			continue
		}
		polygons = append(polygons, poly)
	}

	z.Areas = len(polygons)

	switch len(polygons) {
	case 0:
		return nil, fmt.Errorf("zone %s: %w", key, ErrNoGeometry)
	case 1:
		z.Geometry = polygons[0]
	default:
		z.Geometry = orb.MultiPolygon(polygons)
	}
	return z, nil
}

// splitRings partitions ordered points into rings at (0,0) separators.
func splitRings(points []AreaPoint) []orb.Ring {
	var rings []orb.Ring
	var current orb.Ring

	for _, p := range points {
		if p.X == 0 && p.Y == 0 {
			if len(current) > 0 {
				rings = append(rings, current)
				current = nil
			}
			continue
		}
		current = append(current, orb.Point{p.X, p.Y})
	}
	if len(current) > 0 {
		rings = append(rings, current)
	}
	return rings
}

// assemblePolygon repairs and orients rings into a polygon. The first ring
// is the exterior; without a valid exterior the whole area is dropped.
// Invalid holes are dropped individually.
func (z *Zone) assemblePolygon(rings []orb.Ring) orb.Polygon {
	if len(rings) == 0 {
		return nil
	}

	exterior := z.repairRing(rings[0])
	if exterior == nil {
		return nil
	}
	orient(exterior, true)

	poly := orb.Polygon{exterior}
	for _, r := range rings[1:] {
		hole := z.repairRing(r)
		if hole == nil {
			continue
		}
		orient(hole, false)
		poly = append(poly, hole)
	}
	return poly
}

// repairRing deduplicates consecutive vertices and closes the ring. Rings
// with fewer than three distinct vertices cannot bound an area and are
// dropped. The input is not modified.
func (z *Zone) repairRing(r orb.Ring) orb.Ring {
	if len(r) == 0 {
		return nil
	}
	wasClosed := len(r) > 1 && r[0] == r[len(r)-1]

	out := make(orb.Ring, 0, len(r)+1)
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}

	// A closed input leaves a trailing duplicate of the first point.
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}

	if len(out) < 3 {
		z.Report.RingsDropped++
		return nil
	}

	out = append(out, out[0])
	if !wasClosed {
		z.Report.RingsClosed++
	}
	return out
}

// orient enforces winding: counter clockwise for exteriors, clockwise for
// holes, matching how the geometry is normalized before shapefile output.
func orient(r orb.Ring, ccw bool) {
	if (signedArea(r) >= 0) == ccw {
		return
	}
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// signedArea is the shoelace sum: positive for counter clockwise rings.
func signedArea(r orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return sum / 2
}
