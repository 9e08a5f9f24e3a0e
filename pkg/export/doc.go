// Package export runs the areapoint-to-shapefile pipeline.
//
// # Overview
//
// An Exporter fetches a customer's areapoint rows, builds zone polygons,
// writes the shapefile set, and optionally archives it to an artifact
// store. ExportAll fans out over customers with bounded concurrency. A
// GeometryCache keeps built zones per customer keyed by a fingerprint of
// the source rows, a JobManager tracks asynchronous exports started over
// the HTTP API, and Plan describes batch runs loaded from YAML.
package export
