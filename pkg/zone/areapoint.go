package zone

import (
	"strings"
)

// RequiredHeaders lists the columns every areapoint source must provide.
var RequiredHeaders = []string{"customerid", "zoneid", "suffixid", "areanumber", "seqno", "x", "y"}

// AreaPoint is one row of the areapoint table: a single vertex of a routing
// zone boundary. Points are ordered by seqno within an areanumber.
type AreaPoint struct {
	CustomerID string  `json:"customerid"`
	ZoneID     string  `json:"zoneid"`
	SuffixID   string  `json:"suffixid"`
	AreaNumber int     `json:"areanumber"`
	SeqNo      int     `json:"seqno"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Key returns the combined zone key for the point.
func (p AreaPoint) Key() string {
	return Key(p.ZoneID, p.SuffixID)
}

// Key combines a zoneid and suffixid into a single zone key. The suffix is
// appended with an underscore unless it is a null-ish value (NONE, NULL,
// NAN, empty), in which case the zoneid stands alone. The original suffix
// spelling is preserved in the key; only the null check is case-insensitive.
func Key(zoneID, suffixID string) string {
	switch strings.ToUpper(strings.TrimSpace(suffixID)) {
	case "", "NONE", "NULL", "NAN":
		return zoneID
	}
	return zoneID + "_" + suffixID
}

// Group partitions points by zone key, preserving input order within each
// group. Sources return rows ordered by zone, areanumber, seqno, but the
// builder re-sorts per area so grouping order is not load-bearing.
func Group(points []AreaPoint) map[string][]AreaPoint {
	groups := make(map[string][]AreaPoint)
	for _, p := range points {
		key := p.Key()
		groups[key] = append(groups[key], p)
	}
	return groups
}
