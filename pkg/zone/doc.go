// Package zone turns areapoint rows into routing-zone polygon geometry.
//
// # Overview
//
// The areapoint table stores zone boundaries as ordered vertex rows:
// customerid, zoneid, suffixid, areanumber, seqno, x, y. A zone is the
// combination of zoneid and suffixid; each areanumber within it is one
// polygon, and a (0,0) vertex separates rings, the first ring being the
// polygon exterior and any following rings holes.
//
// Building a zone groups its rows by areanumber, sorts by seqno, splits
// rings at the separators, repairs rings (deduplicates vertices, closes
// open rings, drops degenerate ones), and enforces winding: exteriors
// counter clockwise, holes clockwise. One surviving polygon yields an
// orb.Polygon, several an orb.MultiPolygon, none ErrNoGeometry.
package zone
