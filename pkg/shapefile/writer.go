package shapefile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// WGS84WKT is the .prj content written next to every shapefile.
const WGS84WKT = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`

// FileSet describes one written shapefile: the .shp/.shx/.dbf trio plus .prj.
type FileSet struct {
	BaseName string   `json:"base_name"`
	Dir      string   `json:"dir"`
	Paths    []string `json:"paths"`
	Records  int      `json:"records"`
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// BaseName derives the shapefile base name for a customer.
func BaseName(customerID string) string {
	name := unsafeChars.ReplaceAllString(strings.TrimSpace(customerID), "_")
	if name == "" {
		name = "customer"
	}
	return name + "_zones"
}

// WriteCustomer writes all of a customer's zones into a single polygon
// shapefile under dir. Each zone is one record; multipolygon zones become
// multi-part polygon records. Ring order follows the ESRI convention:
// outer rings clockwise, holes counter clockwise.
func WriteCustomer(dir, customerID string, zones []*zone.Zone) (*FileSet, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("customer %s has no zones to write", customerID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := BaseName(customerID)
	shpPath := filepath.Join(dir, base+".shp")

	w, err := shp.Create(shpPath, shp.POLYGON)
	if err != nil {
		return nil, fmt.Errorf("failed to create shapefile: %w", err)
	}

	fields := []shp.Field{
		shp.StringField("CUSTOMER", 32),
		shp.StringField("ZONE", 64),
		shp.NumberField("AREAS", 8),
		shp.NumberField("VERTICES", 8),
	}
	if err := w.SetFields(fields); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to set attribute fields: %w", err)
	}

	for i, z := range zones {
		poly, vertices := toShpPolygon(z)
		w.Write(poly)

		attrs := []interface{}{z.CustomerID, z.Key, z.Areas, vertices}
		for f, v := range attrs {
			if err := w.WriteAttribute(i, f, v); err != nil {
				w.Close()
				return nil, fmt.Errorf("failed to write attributes for zone %s: %w", z.Key, err)
			}
		}
	}
	w.Close()

	prjPath := filepath.Join(dir, base+".prj")
	if err := os.WriteFile(prjPath, []byte(WGS84WKT), 0644); err != nil {
		return nil, fmt.Errorf("failed to write projection file: %w", err)
	}

	return &FileSet{
		BaseName: base,
		Dir:      dir,
		Paths: []string{
			shpPath,
			filepath.Join(dir, base+".shx"),
			filepath.Join(dir, base+".dbf"),
			prjPath,
		},
		Records: len(zones),
	}, nil
}

// toShpPolygon flattens a zone's polygons into one multi-part shapefile
// record and returns it with the total vertex count.
func toShpPolygon(z *zone.Zone) (*shp.Polygon, int) {
	var parts [][]shp.Point
	vertices := 0

	for _, poly := range z.Polygons() {
		for i, ring := range poly {
			pts := ringPoints(ring, i == 0)
			vertices += len(pts)
			parts = append(parts, pts)
		}
	}

	return (*shp.Polygon)(shp.NewPolyLine(parts)), vertices
}

// ringPoints converts a ring to shapefile points, reversing as needed so
// outer rings come out clockwise and holes counter clockwise. Zone geometry
// is normalized the opposite way, so both ring kinds flip here.
func ringPoints(ring orb.Ring, outer bool) []shp.Point {
	ccw := ringIsCCW(ring)
	reverse := (outer && ccw) || (!outer && !ccw)

	pts := make([]shp.Point, len(ring))
	for i := range ring {
		j := i
		if reverse {
			j = len(ring) - 1 - i
		}
		pts[i] = shp.Point{X: ring[j][0], Y: ring[j][1]}
	}
	return pts
}

func ringIsCCW(r orb.Ring) bool {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	return sum >= 0
}
