package zone

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(customerID, zoneID, suffixID string, areaNumber int, coords ...[2]float64) []AreaPoint {
	out := make([]AreaPoint, 0, len(coords))
	for i, c := range coords {
		out = append(out, AreaPoint{
			CustomerID: customerID,
			ZoneID:     zoneID,
			SuffixID:   suffixID,
			AreaNumber: areaNumber,
			SeqNo:      i + 1,
			X:          c[0],
			Y:          c[1],
		})
	}
	return out
}

// TestKey tests zoneid/suffixid combination rules
func TestKey(t *testing.T) {
	tests := []struct {
		zoneID   string
		suffixID string
		want     string
	}{
		{"Z1", "A", "Z1_A"},
		{"Z1", "", "Z1"},
		{"Z1", "NONE", "Z1"},
		{"Z1", "none", "Z1"},
		{"Z1", " NULL ", "Z1"},
		{"Z1", "NaN", "Z1"},
		{"Z1", "b2", "Z1_b2"},
	}

	for _, tt := range tests {
		t.Run(tt.zoneID+"/"+tt.suffixID, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.zoneID, tt.suffixID))
		})
	}
}

// TestBuild_SimplePolygon tests a single open ring
func TestBuild_SimplePolygon(t *testing.T) {
	points := pts("c1", "Z1", "", 1, [2]float64{1, 1}, [2]float64{5, 1}, [2]float64{5, 5}, [2]float64{1, 5})

	z, err := Build("Z1", "c1", points)
	require.NoError(t, err)

	poly, ok := z.Geometry.(orb.Polygon)
	require.True(t, ok, "single area must yield a Polygon")
	require.Len(t, poly, 1)

	ring := poly[0]
	assert.Equal(t, ring[0], ring[len(ring)-1], "exterior must be closed")
	assert.Len(t, ring, 5)
	assert.Positive(t, signedArea(ring), "exterior must be counter clockwise")
	assert.Equal(t, 1, z.Report.RingsClosed)
	assert.Equal(t, 1, z.Areas)
}

// TestBuild_HoleSeparator tests that (0,0) splits exterior from hole
func TestBuild_HoleSeparator(t *testing.T) {
	coords := [][2]float64{
		{0, 0}, // leading separator is harmless
		{0.5, 0.5}, {10, 0.5}, {10, 10}, {0.5, 10},
		{0, 0}, // separator
		{2, 2}, {4, 2}, {4, 4}, {2, 4},
	}
	points := pts("c1", "Z9", "A", 1, coords...)

	z, err := Build("Z9_A", "c1", points)
	require.NoError(t, err)

	poly, ok := z.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 2, "expected exterior plus one hole")

	assert.Positive(t, signedArea(poly[0]))
	assert.Negative(t, signedArea(poly[1]), "hole must be clockwise")
}

// TestBuild_MultipleAreas tests multipolygon assembly across areanumbers
func TestBuild_MultipleAreas(t *testing.T) {
	points := append(
		pts("c1", "Z2", "", 2, [2]float64{10, 10}, [2]float64{20, 10}, [2]float64{20, 20}),
		pts("c1", "Z2", "", 1, [2]float64{1, 1}, [2]float64{5, 1}, [2]float64{5, 5})...,
	)

	z, err := Build("Z2", "c1", points)
	require.NoError(t, err)

	mp, ok := z.Geometry.(orb.MultiPolygon)
	require.True(t, ok, "multiple areas must yield a MultiPolygon")
	require.Len(t, mp, 2)
	assert.Equal(t, 2, z.Areas)

	// areas are assembled in areanumber order
	assert.Equal(t, orb.Point{1, 1}, mp[0][0][0])
	assert.Equal(t, orb.Point{10, 10}, mp[1][0][0])
}

// TestBuild_SeqNoOrdering tests that rows are sorted by seqno before splitting
func TestBuild_SeqNoOrdering(t *testing.T) {
	points := []AreaPoint{
		{ZoneID: "Z3", AreaNumber: 1, SeqNo: 3, X: 5, Y: 5},
		{ZoneID: "Z3", AreaNumber: 1, SeqNo: 1, X: 1, Y: 1},
		{ZoneID: "Z3", AreaNumber: 1, SeqNo: 4, X: 1, Y: 5},
		{ZoneID: "Z3", AreaNumber: 1, SeqNo: 2, X: 5, Y: 1},
	}

	z, err := Build("Z3", "c1", points)
	require.NoError(t, err)

	poly := z.Geometry.(orb.Polygon)
	assert.Equal(t, orb.Point{1, 1}, poly[0][0])
}

// TestBuild_DegenerateRingDropped tests that rings with <3 distinct vertices go away
func TestBuild_DegenerateRingDropped(t *testing.T) {
	// two distinct vertices only
	points := pts("c1", "Z4", "", 1, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{1, 1})

	z, err := Build("Z4", "c1", points)
	assert.ErrorIs(t, err, ErrNoGeometry)
	assert.Nil(t, z)
}

// TestBuild_DegenerateHoleDroppedKeepsExterior tests hole-only failures
func TestBuild_DegenerateHoleDroppedKeepsExterior(t *testing.T) {
	coords := [][2]float64{
		{1, 1}, {9, 1}, {9, 9}, {1, 9},
		{0, 0},
		{3, 3}, {3, 3}, // degenerate hole
	}
	points := pts("c1", "Z5", "", 1, coords...)

	z, err := Build("Z5", "c1", points)
	require.NoError(t, err)

	poly := z.Geometry.(orb.Polygon)
	assert.Len(t, poly, 1, "degenerate hole must be dropped")
	assert.Equal(t, 1, z.Report.RingsDropped)
}

// TestBuild_ClosedInputRing tests that pre-closed rings are not double closed
func TestBuild_ClosedInputRing(t *testing.T) {
	points := pts("c1", "Z6", "", 1,
		[2]float64{1, 1}, [2]float64{5, 1}, [2]float64{5, 5}, [2]float64{1, 1})

	z, err := Build("Z6", "c1", points)
	require.NoError(t, err)

	ring := z.Geometry.(orb.Polygon)[0]
	assert.Len(t, ring, 4)
	assert.Equal(t, 0, z.Report.RingsClosed)
}

// TestBuild_ClockwiseInputReversed tests winding enforcement
func TestBuild_ClockwiseInputReversed(t *testing.T) {
	// clockwise square
	points := pts("c1", "Z7", "", 1,
		[2]float64{1, 5}, [2]float64{5, 5}, [2]float64{5, 1}, [2]float64{1, 1})

	z, err := Build("Z7", "c1", points)
	require.NoError(t, err)

	ring := z.Geometry.(orb.Polygon)[0]
	assert.Positive(t, signedArea(ring))
}

// TestBuild_OnlySeparators tests a group that is all (0,0) rows
func TestBuild_OnlySeparators(t *testing.T) {
	points := pts("c1", "Z8", "", 1, [2]float64{0, 0}, [2]float64{0, 0})

	_, err := Build("Z8", "c1", points)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

// TestBuildAll tests the per-customer batch with mixed outcomes
func TestBuildAll(t *testing.T) {
	points := append(
		pts("c1", "B", "1", 1, [2]float64{1, 1}, [2]float64{2, 1}, [2]float64{2, 2}),
		pts("c1", "A", "", 1, [2]float64{1, 1}, [2]float64{1, 1})..., // degenerate
	)

	zones, summary := BuildAll("c1", points)
	require.Len(t, zones, 1)
	assert.Equal(t, "B_1", zones[0].Key)
	assert.Equal(t, 1, summary.ZonesBuilt)
	assert.Equal(t, 1, summary.ZonesSkipped)
	assert.Equal(t, []string{"A"}, summary.Skipped)
}

// TestZone_Polygons tests the flattening helper
func TestZone_Polygons(t *testing.T) {
	single := &Zone{Geometry: orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}
	assert.Len(t, single.Polygons(), 1)

	multi := &Zone{Geometry: orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{{{2, 2}, {3, 2}, {3, 3}, {2, 2}}},
	}}
	assert.Len(t, multi.Polygons(), 2)

	assert.Nil(t, (&Zone{}).Polygons())
}
