// Package plugins discovers installed QGIS plugin directories and keeps an
// in-memory registry of their metadata descriptors.
//
// A plugin directory is any subdirectory of a configured plugin root that
// contains a metadata.txt file. The loader parses and validates each
// descriptor; the registry serves them to the HTTP API. Plugins are
// described, never executed.
package plugins
