package models

import (
	"github.com/paulmach/orb"
)

// Feature is a single map point aggregating the addresses attached to
// a cadastral parcel. The rendered dataset owns these values and
// replaces them wholesale on every successful fetch.
type Feature struct {
	ID        string    `json:"id"`
	Point     orb.Point `json:"coordinates"`
	Parcelle  string    `json:"parcelle"`
	Addresses []Address `json:"addresses"`
}

// Lon returns the feature longitude.
func (f Feature) Lon() float64 { return f.Point[0] }

// Lat returns the feature latitude.
func (f Feature) Lat() float64 { return f.Point[1] }

// Mutations flattens the mutation lists of every address on the
// feature, in address order. Duplicates across addresses are kept;
// deduplication is the aggregator's job.
func (f Feature) Mutations() []Mutation {
	var out []Mutation
	for _, addr := range f.Addresses {
		out = append(out, addr.Mutations...)
	}
	return out
}

// ViewportState is the camera state of the map: the visible bounding
// box and the zoom level. It is owned by the map client and read-only
// to the engine.
type ViewportState struct {
	Bounds orb.Bound `json:"bounds"`
	Zoom   float64   `json:"zoom"`
}

// Center returns the midpoint of the viewport bounds.
func (v ViewportState) Center() orb.Point {
	return v.Bounds.Center()
}
