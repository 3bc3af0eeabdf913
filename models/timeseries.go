package models

import "time"

// AttributeSeries is the value history of one attribute.
type AttributeSeries struct {
	AttrName string `json:"attrName"`
	Values   []any  `json:"values"`
}

// EntitySeries is the time series answer for one entity: an index of
// timestamps plus the per-attribute value columns aligned with it.
type EntitySeries struct {
	EntityID   string            `json:"entityId"`
	EntityType string            `json:"entityType,omitempty"`
	Index      []time.Time       `json:"index"`
	Attributes []AttributeSeries `json:"attributes"`
}

// SeriesQuery narrows a time series request.
type SeriesQuery struct {
	// Attrs limits the answer to the named attributes.
	Attrs []string
	// FromDate and ToDate bound the index range.
	FromDate time.Time
	ToDate   time.Time
	// Limit caps the number of index entries; zero uses the server
	// default.
	Limit int
	// LastN returns only the most recent entries.
	LastN int
}
