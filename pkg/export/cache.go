package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// GeometryCache holds built zone geometry per customer so repeated
// exports skip the rebuild when the underlying rows have not changed.
// Entries expire after the configured TTL and the least recently used
// customer is evicted when the cache is full.
type GeometryCache struct {
	entries *lru.LRU[string, geometryEntry]
}

type geometryEntry struct {
	fingerprint string
	zones       []*zone.Zone
	summary     *zone.BuildSummary
}

// NewGeometryCache creates a cache holding up to maxCustomers entries,
// each valid for ttl.
func NewGeometryCache(maxCustomers int, ttl time.Duration) *GeometryCache {
	return &GeometryCache{
		entries: lru.NewLRU[string, geometryEntry](maxCustomers, nil, ttl),
	}
}

// Get returns the cached zones for a customer when the fingerprint still
// matches the stored one. A stale fingerprint means the rows changed, so
// the entry is dropped.
func (c *GeometryCache) Get(customerID, fingerprint string) ([]*zone.Zone, *zone.BuildSummary, bool) {
	entry, ok := c.entries.Get(customerID)
	if !ok {
		return nil, nil, false
	}
	if entry.fingerprint != fingerprint {
		c.entries.Remove(customerID)
		return nil, nil, false
	}
	return entry.zones, entry.summary, true
}

// Set stores built zones for a customer under the given fingerprint.
func (c *GeometryCache) Set(customerID, fingerprint string, zones []*zone.Zone, summary *zone.BuildSummary) {
	c.entries.Add(customerID, geometryEntry{
		fingerprint: fingerprint,
		zones:       zones,
		summary:     summary,
	})
}

// Invalidate drops a customer's cached geometry.
func (c *GeometryCache) Invalidate(customerID string) {
	c.entries.Remove(customerID)
}

// Len returns the number of cached customers.
func (c *GeometryCache) Len() int {
	return c.entries.Len()
}

// Fingerprint hashes a customer's areapoint rows. Rows arrive in the
// store's stable order, so equal row sets hash equally.
func Fingerprint(points []zone.AreaPoint) string {
	h := sha256.New()
	for _, p := range points {
		fmt.Fprintf(h, "%s|%s|%s|%d|%d|%g|%g\n",
			p.ZoneID, p.SuffixID, p.CustomerID, p.AreaNumber, p.SeqNo, p.X, p.Y)
	}
	return hex.EncodeToString(h.Sum(nil))
}
