// Package shapefile writes routing-zone geometry as ESRI shapefiles.
//
// One shapefile set (.shp, .shx, .dbf, .prj) is written per customer, with
// one polygon record per zone carrying CUSTOMER, ZONE, AREAS and VERTICES
// attributes. Ring winding follows the ESRI convention (outer rings
// clockwise), flipping the counter clockwise normalization the zone
// builder applies. Archive zips a file set for artifact upload.
package shapefile
