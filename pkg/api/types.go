package api

import (
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/export"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/plugins"
)

// ListPluginsResponse is the payload of GET /plugins.
type ListPluginsResponse struct {
	Plugins []*plugins.Plugin `json:"plugins"`
	Count   int               `json:"count"`
}

// ListCustomersResponse is the payload of GET /customers.
type ListCustomersResponse struct {
	Customers []string `json:"customers"`
	Count     int      `json:"count"`
}

// ListExportsResponse is the payload of GET /exports.
type ListExportsResponse struct {
	Jobs  []*export.Job `json:"jobs"`
	Count int           `json:"count"`
}
