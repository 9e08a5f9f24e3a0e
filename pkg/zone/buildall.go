package zone

import (
	"errors"
	"sort"
)

// BuildSummary aggregates the outcome of building every zone for a customer.
type BuildSummary struct {
	ZonesBuilt   int               `json:"zones_built"`
	ZonesSkipped int               `json:"zones_skipped"`
	RingsClosed  int               `json:"rings_closed"`
	RingsDropped int               `json:"rings_dropped"`
	AreasSkipped int               `json:"areas_skipped"`
	Skipped      []string          `json:"skipped,omitempty"` // zone keys with no usable geometry
	Failures     map[string]string `json:"failures,omitempty"`
}

// BuildAll builds geometry for every zone in a customer's points, in key
// order. A zone with no usable geometry is recorded in the summary instead
// of failing the batch.
func BuildAll(customerID string, points []AreaPoint) ([]*Zone, *BuildSummary) {
	groups := Group(points)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summary := &BuildSummary{}
	zones := make([]*Zone, 0, len(keys))

	for _, key := range keys {
		z, err := Build(key, customerID, groups[key])
		if err != nil {
			summary.ZonesSkipped++
			if errors.Is(err, ErrNoGeometry) {
				summary.Skipped = append(summary.Skipped, key)
			} else {
				if summary.Failures == nil {
					summary.Failures = make(map[string]string)
				}
				summary.Failures[key] = err.Error()
			}
			continue
		}

		zones = append(zones, z)
		summary.ZonesBuilt++
		summary.RingsClosed += z.Report.RingsClosed
		summary.RingsDropped += z.Report.RingsDropped
		summary.AreasSkipped += z.Report.AreasSkipped
	}

	return zones, summary
}
